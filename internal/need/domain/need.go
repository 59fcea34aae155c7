package domain

import "time"

type ID string

// Need is a posted request for donated goods. CreatedBy is a weak reference
// to a user: nil for anonymous posts, never enforced by a foreign key.
type Need struct {
	ID          ID
	Title       string
	Description string
	Category    string
	CreatedBy   *string
	CreatedAt   time.Time
}
