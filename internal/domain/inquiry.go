package domain

import (
	"time"

	"github.com/google/uuid"
)

type Inquiry struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Phone     string
	Message   string
	PackageID uuid.UUID
	// PackageTitle is filled on reads by joining the packages table.
	PackageTitle string
	CreatedAt    time.Time
}
