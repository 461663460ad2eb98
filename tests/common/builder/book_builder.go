//go:build unit || e2e

package builder

import (
	"time"

	dombook "bookstand/internal/domain/book"
	"bookstand/internal/usecase/queries"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookBuilder struct {
	ID                      uuid.UUID
	Title                   string
	Author                  string
	Category                string
	YearPublished           int
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

func NewBookBuilder() *BookBuilder {
	now := time.Now()
	return &BookBuilder{
		ID:                      uuid.New(),
		Title:                   "The Go Programming Language",
		Author:                  "Alan Donovan",
		Category:                "programming",
		YearPublished:           2015,
		Description:             "A comprehensive guide.",
		CoverImageURL:           "https://example.com/gopl.jpg",
		PurchasePriceCents:      4500,
		RentalPrice2WeeksCents:  500,
		RentalPrice1MonthCents:  800,
		RentalPrice3MonthsCents: 1800,
		TotalCopies:             3,
		AvailableCopies:         3,
		IsAvailable:             true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

func (b *BookBuilder) With(mutate func(*BookBuilder)) *BookBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookBuilder) BuildDomain() (*dombook.Book, error) {
	return dombook.ReconstructBook(
		b.ID,
		b.Title,
		b.Author,
		b.Category,
		b.YearPublished,
		b.Description,
		b.CoverImageURL,
		dombook.MustMoney(b.PurchasePriceCents),
		b.tierPrices(),
		b.TotalCopies,
		b.AvailableCopies,
		b.IsAvailable,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *BookBuilder) BuildSnapshot() *shared.BookSnapshot {
	return &shared.BookSnapshot{
		ID:                      b.ID,
		Title:                   b.Title,
		Author:                  b.Author,
		Category:                b.Category,
		YearPublished:           int32(b.YearPublished),
		Description:             b.Description,
		CoverImageURL:           b.CoverImageURL,
		PurchasePriceCents:      b.PurchasePriceCents,
		RentalPrice2WeeksCents:  b.RentalPrice2WeeksCents,
		RentalPrice1MonthCents:  b.RentalPrice1MonthCents,
		RentalPrice3MonthsCents: b.RentalPrice3MonthsCents,
		TotalCopies:             b.TotalCopies,
		AvailableCopies:         b.AvailableCopies,
		IsAvailable:             b.IsAvailable,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}
}

func (b *BookBuilder) BuildView() *queries.BookView {
	return &queries.BookView{
		ID:                      b.ID,
		Title:                   b.Title,
		Author:                  b.Author,
		Category:                b.Category,
		YearPublished:           int32(b.YearPublished),
		Description:             b.Description,
		CoverImageURL:           b.CoverImageURL,
		PurchasePriceCents:      b.PurchasePriceCents,
		RentalPrice2WeeksCents:  b.RentalPrice2WeeksCents,
		RentalPrice1MonthCents:  b.RentalPrice1MonthCents,
		RentalPrice3MonthsCents: b.RentalPrice3MonthsCents,
		TotalCopies:             b.TotalCopies,
		AvailableCopies:         b.AvailableCopies,
		IsAvailable:             b.IsAvailable,
		CreatedAt:               b.CreatedAt,
		UpdatedAt:               b.UpdatedAt,
	}
}

func (b *BookBuilder) tierPrices() dombook.TierPrices {
	return dombook.TierPrices{
		TwoWeeks:    dombook.MustMoney(b.RentalPrice2WeeksCents),
		OneMonth:    dombook.MustMoney(b.RentalPrice1MonthCents),
		ThreeMonths: dombook.MustMoney(b.RentalPrice3MonthsCents),
	}
}

// Fluent builder methods
func (b *BookBuilder) WithAvailableCopies(n int32) *BookBuilder {
	b.AvailableCopies = n
	return b
}

func (b *BookBuilder) WithTotalCopies(n int32) *BookBuilder {
	b.TotalCopies = n
	return b
}

func (b *BookBuilder) AsUnavailable() *BookBuilder {
	b.IsAvailable = false
	return b
}
