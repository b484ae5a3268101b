package models

import "time"

type Bookmark struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookmarkUpdate lists bookmark fields to change; nil fields are left as they are.
type BookmarkUpdate struct {
	Title       *string
	Description *string
	Link        *string
}

// Empty reports whether the update changes nothing.
func (u BookmarkUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Link == nil
}
