package domain

import "time"

// User is the domain model for registered accounts. Username and email
// are unique across all accounts; email is immutable after creation.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
