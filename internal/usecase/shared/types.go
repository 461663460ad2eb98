package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types
type BookSnapshot struct {
	ID                      uuid.UUID
	Title                   string
	Author                  string
	Category                string
	YearPublished           int32
	Description             string
	CoverImageURL           string
	PurchasePriceCents      int64
	RentalPrice2WeeksCents  int64
	RentalPrice1MonthCents  int64
	RentalPrice3MonthsCents int64
	TotalCopies             int32
	AvailableCopies         int32
	IsAvailable             bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// RentalSnapshot is the minimal state needed to drive a transition.
// BookID is nil when the book was deleted after the rental was created.
type RentalSnapshot struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BookID         *uuid.UUID
	Term           string
	StartDate      time.Time
	EndDate        time.Time
	PricePaidCents int64
	Status         string
}
