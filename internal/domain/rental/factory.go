package rental

import (
	"errors"

	"bookstand/internal/domain/book"
	"bookstand/internal/pkg/clock"

	"github.com/google/uuid"
)

var ErrBookNotRentable = errors.New("book is not available for rental")

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clock clock.Clock) *Factory {
	return &Factory{Clock: clock}
}

// CreateRental builds an Active rental from the book's current tier
// prices. The price is snapshotted here; later price edits on the book
// never touch existing rentals.
func (f *Factory) CreateRental(bookEntity *book.Book, userID uuid.UUID, term Term) (*Rental, error) {
	if !bookEntity.IsAvailable() {
		return nil, ErrBookNotRentable
	}

	price, err := term.PriceFrom(bookEntity.RentalPrices())
	if err != nil {
		return nil, err
	}

	return NewRental(userID, bookEntity.ID(), term, price, f.Clock.Now())
}
