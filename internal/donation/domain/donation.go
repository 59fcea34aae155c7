package domain

import "time"

type ID string

// Donation records a pledge of goods. NeedID is a weak reference that may be
// nil or point at a need that no longer exists; no existence check is made.
type Donation struct {
	ID        ID
	DonorName string
	Item      string
	Quantity  int
	Notes     *string
	NeedID    *string
	CreatedAt time.Time
}
