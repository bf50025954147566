package domain

import (
	"time"

	"github.com/google/uuid"
)

type Package struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Price        float64
	DurationDays int
	Itinerary    []string
	Images       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PackageUpdate carries a partial update: nil fields keep the stored value.
type PackageUpdate struct {
	Title        *string
	Description  *string
	Price        *float64
	DurationDays *int
	Itinerary    []string
	Images       []string
}
