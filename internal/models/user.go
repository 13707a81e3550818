package models

import "time"

// User represents an account in the store. The password field holds the
// scrypt hash, never the plaintext, and is excluded from JSON output.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username" validate:"required,min=3,max=100"`
	Password  string    `json:"-"`
	Email     string    `json:"email" validate:"required,email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserUpdate carries a partial profile update. Nil fields are retained.
type UserUpdate struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}
