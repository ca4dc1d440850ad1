package domain

import (
	"time"

	"github.com/google/uuid"
)

// PantryItem is one tracked ingredient in a user's pantry.
type PantryItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Quantity  float64
	Unit      string
	Category  string
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the item has passed its expiry relative to now.
// Items without an expiry never expire.
func (i *PantryItem) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && i.ExpiresAt.Before(now)
}

// PantryStats summarizes a user's pantry.
type PantryStats struct {
	TotalItems   int
	ExpiredItems int
	ExpiringSoon int // within the next 7 days
	ByCategory   map[string]int
}
