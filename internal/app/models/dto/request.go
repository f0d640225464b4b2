package dto

// LoginRequest carries the external provider bearer token
type LoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// JoinRequest carries the external provider bearer token for sign-up.
// Name overrides the provider display name when present.
type JoinRequest struct {
	Token string `json:"token" binding:"required"`
	Name  string `json:"name" binding:"omitempty,max=40"`
}

// LoginResponse reports whether the caller has joined; role is only
// present for joined users.
type LoginResponse struct {
	Join bool   `json:"join"`
	Role string `json:"role,omitempty" example:"student"`
}

// CreateNoticeRequest is the staff notice creation payload
type CreateNoticeRequest struct {
	Title   string   `json:"title" binding:"required,max=100"`
	Content string   `json:"content" binding:"required"`
	Target  []string `json:"target" binding:"required,min=1"`
}

// UpdateNoticeRequest is the staff notice update payload
type UpdateNoticeRequest struct {
	Title   string   `json:"title" binding:"required,max=100"`
	Content string   `json:"content" binding:"required"`
	Target  []string `json:"target" binding:"required,min=1"`
}

// CreatePostRequest is the board post creation payload
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
	Visible *bool  `json:"visible" binding:"required"`
}

// UpdatePostRequest is the board post update payload
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
	Visible *bool  `json:"visible" binding:"required"`
}

// CreateInquiryRequest is the inquiry creation payload
type CreateInquiryRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
}

// UpdateInquiryRequest is the inquiry update payload
type UpdateInquiryRequest struct {
	Title   string `json:"title" binding:"required,max=100"`
	Content string `json:"content" binding:"required"`
}

// ReplyInquiryRequest is the staff reply payload
type ReplyInquiryRequest struct {
	Reply string `json:"reply" binding:"required"`
}

// SubmitStayRequest is the weekly OUT/STAY declaration payload
type SubmitStayRequest struct {
	Date   string `json:"date" binding:"required"`
	Status string `json:"status" binding:"required,oneof=OUT STAY"`
}

// CreateLeaveRequest is the leave request creation payload
type CreateLeaveRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"required,max=200"`
}

// DecideLeaveRequest is the staff decision payload
type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ScanCheckInRequest carries the scanned QR token
type ScanCheckInRequest struct {
	Code string `json:"code" binding:"required"`
}

// AwardMeritRequest is the staff merit/demerit award payload
type AwardMeritRequest struct {
	UserID   int64  `json:"userId" binding:"required,gt=0"`
	Reason   string `json:"reason" binding:"required,max=200"`
	Score    int    `json:"score" binding:"required,ne=0"`
	Category string `json:"category" binding:"required,max=40"`
}

// MeritSummaryResponse reports the denormalized plus/minus totals
type MeritSummaryResponse struct {
	UserID     int64 `json:"userId"`
	MeritPlus  int   `json:"meritPlus"`
	MeritMinus int   `json:"meritMinus"`
}

// QRCodeResponse carries a generated check-in token
type QRCodeResponse struct {
	Code string `json:"code"`
}
