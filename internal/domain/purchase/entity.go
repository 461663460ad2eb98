package purchase

import (
	"time"

	"bookstand/internal/domain/book"

	"github.com/google/uuid"
)

// Purchase is immutable once created; there is no lifecycle beyond creation.
type Purchase struct {
	id        uuid.UUID
	userID    uuid.UUID
	bookID    uuid.UUID
	pricePaid book.Money
	createdAt time.Time
}

func NewPurchase(userID, bookID uuid.UUID, pricePaid book.Money) *Purchase {
	return &Purchase{
		id:        uuid.New(),
		userID:    userID,
		bookID:    bookID,
		pricePaid: pricePaid,
	}
}

func ReconstructPurchase(id, userID, bookID uuid.UUID, pricePaid book.Money, createdAt time.Time) *Purchase {
	return &Purchase{
		id:        id,
		userID:    userID,
		bookID:    bookID,
		pricePaid: pricePaid,
		createdAt: createdAt,
	}
}

func (p *Purchase) ID() uuid.UUID         { return p.id }
func (p *Purchase) UserID() uuid.UUID     { return p.userID }
func (p *Purchase) BookID() uuid.UUID     { return p.bookID }
func (p *Purchase) PricePaid() book.Money { return p.pricePaid }
func (p *Purchase) CreatedAt() time.Time  { return p.createdAt }
