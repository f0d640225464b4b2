package models

import (
	"time"
)

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleTeacher RoleType = "teacher"
)

// User defines the user model based on the 'users' table.
// Accounts are created at join time from the external identity provider
// profile; merit totals are denormalized counters maintained by the merit
// service inside a transaction.
type User struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	ExternalID string    `json:"-" db:"external_id"`
	Email      string    `json:"email" db:"email" example:"2210kim@school.hs.kr"`
	Name       string    `json:"name" db:"name" example:"Kim Minsu"`
	RoleType   RoleType  `json:"role" db:"role" example:"student"`
	StuNum     string    `json:"stuNum,omitempty" db:"stu_num" example:"2210"`
	MeritPlus  int       `json:"meritPlus" db:"merit_plus" example:"5"`
	MeritMinus int       `json:"meritMinus" db:"merit_minus" example:"2"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// IsTeacher reports whether the user holds the staff role.
func (u *User) IsTeacher() bool {
	return u.RoleType == RoleTeacher
}
