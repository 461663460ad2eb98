package rental

import (
	"time"

	"bookstand/internal/domain/book"

	"github.com/google/uuid"
)

type Rental struct {
	id        uuid.UUID
	userID    uuid.UUID
	bookID    uuid.UUID
	term      Term
	startDate time.Time
	endDate   time.Time
	pricePaid book.Money
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewRental(userID, bookID uuid.UUID, term Term, pricePaid book.Money, start time.Time) (*Rental, error) {
	if !term.IsValid() {
		return nil, ErrInvalidTerm
	}

	return &Rental{
		id:        uuid.New(),
		userID:    userID,
		bookID:    bookID,
		term:      term,
		startDate: start,
		endDate:   term.EndDate(start),
		pricePaid: pricePaid,
		status:    StatusActive,
	}, nil
}

func ReconstructRental(
	id, userID, bookID uuid.UUID,
	term Term,
	startDate, endDate time.Time,
	pricePaid book.Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Rental {
	return &Rental{
		id:        id,
		userID:    userID,
		bookID:    bookID,
		term:      term,
		startDate: startDate,
		endDate:   endDate,
		pricePaid: pricePaid,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Rental) ID() uuid.UUID         { return r.id }
func (r *Rental) UserID() uuid.UUID     { return r.userID }
func (r *Rental) BookID() uuid.UUID     { return r.bookID }
func (r *Rental) Term() Term            { return r.term }
func (r *Rental) StartDate() time.Time  { return r.startDate }
func (r *Rental) EndDate() time.Time    { return r.endDate }
func (r *Rental) PricePaid() book.Money { return r.pricePaid }
func (r *Rental) Status() Status        { return r.status }
func (r *Rental) CreatedAt() time.Time  { return r.createdAt }
func (r *Rental) UpdatedAt() time.Time  { return r.updatedAt }
