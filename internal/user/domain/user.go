package domain

import "time"

type ID string

// User carries the stored hash only; plaintext passwords never reach this
// type and the hash is never logged.
type User struct {
	ID           ID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
