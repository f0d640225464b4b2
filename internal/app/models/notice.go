package models

import "time"

// Notice defines the notice model based on the 'notices' table.
// Notices are written by staff and targeted at audience tags (grade or
// dormitory groups).
type Notice struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Target    []string  `json:"target" db:"target"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
