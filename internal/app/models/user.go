package models

import (
	"time"
)

// User defines the account model based on the 'users' table. Accounts are
// created once at registration and are immutable afterwards; the password
// field always holds a bcrypt digest, never the plaintext.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"alice@example.com"` // Unique login identifier
	Password  string    `json:"-" db:"password"`                              // Hashed password (excluded from JSON)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`
}
