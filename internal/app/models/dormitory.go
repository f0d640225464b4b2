package models

import "time"

// StayStatusValue is a weekend OUT/STAY declaration value
type StayStatusValue string

const (
	StayOut  StayStatusValue = "OUT"
	StayStay StayStatusValue = "STAY"
)

// StayStatus defines one row per (user, selection date) based on the
// 'stay_statuses' table. Submissions upsert: a second submission for the
// same date updates the existing row.
type StayStatus struct {
	UserID    int64           `json:"userId" db:"user_id"`
	StayDate  string          `json:"date" db:"stay_date"`
	Status    StayStatusValue `json:"status" db:"status"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// LeaveStatus is the approval state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest defines the leave request model based on the
// 'leave_requests' table. Only pending requests may transition, and only
// staff decide them.
type LeaveRequest struct {
	ID        int64       `json:"id" db:"id"`
	UserID    int64       `json:"userId" db:"user_id"`
	LeaveDate string      `json:"date" db:"leave_date"`
	Reason    string      `json:"reason" db:"reason"`
	Status    LeaveStatus `json:"status" db:"status"`
	DecidedAt *time.Time  `json:"decidedAt,omitempty" db:"decided_at"`
	DecidedBy *int64      `json:"decidedBy,omitempty" db:"decided_by"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
}

// RoomCheckIn defines an append-only room check-in row based on the
// 'room_checkins' table.
type RoomCheckIn struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	CheckInDate string    `json:"date" db:"checkin_date"`
	CheckInAt   time.Time `json:"time" db:"checkin_at"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// MeritLog defines an append-only merit/demerit award based on the
// 'merit_logs' table. Score is signed: positive for merit, negative for
// demerit.
type MeritLog struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Reason    string    `json:"reason" db:"reason"`
	Score     int       `json:"score" db:"score"`
	Category  string    `json:"category" db:"category"`
	IssuedBy  int64     `json:"issuedBy" db:"issued_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
