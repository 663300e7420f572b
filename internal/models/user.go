package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`           // Primary key
	Username     string    `json:"username" db:"username"`    // Unique username
	Email        string    `json:"email" db:"email"`          // Unique email
	Phone        string    `json:"phone" db:"phone"`          // Unique phone number
	FullName     string    `json:"fullName" db:"full_name"`   // Display name
	Country      string    `json:"country" db:"country"`      // Country of residence
	PasswordHash string    `json:"-" db:"password_hash"`      // Bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"` // Last update timestamp
}
