//go:build unit || e2e

package builder

import (
	"time"

	dombook "bookstand/internal/domain/book"
	domrental "bookstand/internal/domain/rental"
	"bookstand/internal/usecase/queries"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentalBuilder struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	BookID         uuid.UUID
	BookTitle      string
	BookAuthor     string
	Term           domrental.Term
	StartDate      time.Time
	EndDate        time.Time
	PricePaidCents int64
	Status         domrental.Status
	CreatedAt      time.Time
}

func NewRentalBuilder() *RentalBuilder {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &RentalBuilder{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		BookID:         uuid.New(),
		BookTitle:      "The Go Programming Language",
		BookAuthor:     "Alan Donovan",
		Term:           domrental.TermTwoWeeks,
		StartDate:      start,
		EndDate:        domrental.TermTwoWeeks.EndDate(start),
		PricePaidCents: 500,
		Status:         domrental.StatusActive,
		CreatedAt:      start,
	}
}

func (r *RentalBuilder) With(mutate func(*RentalBuilder)) *RentalBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RentalBuilder) BuildDomain() *domrental.Rental {
	return domrental.ReconstructRental(
		r.ID,
		r.UserID,
		r.BookID,
		r.Term,
		r.StartDate,
		r.EndDate,
		dombook.MustMoney(r.PricePaidCents),
		r.Status,
		r.CreatedAt,
		r.CreatedAt,
	)
}

func (r *RentalBuilder) BuildSnapshot() *shared.RentalSnapshot {
	bookID := r.BookID
	return &shared.RentalSnapshot{
		ID:             r.ID,
		UserID:         r.UserID,
		BookID:         &bookID,
		Term:           r.Term.String(),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		PricePaidCents: r.PricePaidCents,
		Status:         r.Status.String(),
	}
}

func (r *RentalBuilder) BuildView() *queries.RentalView {
	bookID := r.BookID
	title := r.BookTitle
	author := r.BookAuthor
	return &queries.RentalView{
		ID:             r.ID,
		UserID:         r.UserID,
		BookID:         &bookID,
		BookTitle:      &title,
		BookAuthor:     &author,
		Term:           r.Term.String(),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		PricePaidCents: r.PricePaidCents,
		Status:         r.Status.String(),
		CreatedAt:      r.CreatedAt,
	}
}

// Fluent builder methods
func (r *RentalBuilder) WithStatus(status domrental.Status) *RentalBuilder {
	r.Status = status
	return r
}

func (r *RentalBuilder) WithUserID(userID uuid.UUID) *RentalBuilder {
	r.UserID = userID
	return r
}

func (r *RentalBuilder) WithEndDate(end time.Time) *RentalBuilder {
	r.EndDate = end
	return r
}

func (r *RentalBuilder) WithTerm(term domrental.Term) *RentalBuilder {
	r.Term = term
	r.EndDate = term.EndDate(r.StartDate)
	return r
}
