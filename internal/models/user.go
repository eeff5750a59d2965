package models

import "time"

// User represents a registered account
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"` // Hidden from JSON responses
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
