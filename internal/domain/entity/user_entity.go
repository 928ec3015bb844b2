package entity

import (
	"time"
)

// User is an account holder. The identifier is an email address or an
// Indian mobile number (+91XXXXXXXXXX), stored in Email.
// Passwords are stored as bcrypt hashes in PasswordHash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
