package models

import "time"

// Post defines the board post model based on the 'posts' table.
// Hidden posts stay readable by their owner and by staff.
type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Visible   bool      `json:"visible" db:"visible"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Inquiry defines the inquiry model based on the 'inquiries' table.
// The reply field is staff-writable only.
type Inquiry struct {
	ID        int64      `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	AuthorID  int64      `json:"authorId" db:"author_id"`
	Reply     *string    `json:"reply,omitempty" db:"reply"`
	RepliedAt *time.Time `json:"repliedAt,omitempty" db:"replied_at"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}
