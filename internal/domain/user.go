package domain

import "time"

// User represents a registered account. Accounts are created unapproved and
// may only authenticate once an administrator approves the registration.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Approved     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
