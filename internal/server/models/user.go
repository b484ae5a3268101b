package models

import "time"

// User is a stored account. Hash is the encoded password hash and never
// leaves the server.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Hash      string    `json:"-"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserUpdate lists profile fields to change; nil fields are left as they are.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}
