package commands

import (
	"context"

	"bookstand/internal/domain/book"
	"bookstand/internal/domain/purchase"
	"bookstand/internal/domain/rental"
	"bookstand/internal/domain/user"
	"bookstand/internal/infra/db"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
)

// UpdateBookParams is a sparse patch; nil fields are left untouched.
type UpdateBookParams struct {
	Title                   *string
	Author                  *string
	Category                *string
	YearPublished           *int32
	Description             *string
	CoverImageURL           *string
	PurchasePriceCents      *int64
	RentalPrice2WeeksCents  *int64
	RentalPrice1MonthCents  *int64
	RentalPrice3MonthsCents *int64
	TotalCopies             *int32
	IsAvailable             *bool
}

// BookRepository is the write side of the catalog, including the
// inventory ledger. Reserve and Release are single atomic conditional
// updates against the stored copy count, never client-side arithmetic.
type BookRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *book.Book) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params UpdateBookParams) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	FindSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookSnapshot, error)

	// Reserve decrements available_copies by one iff it is positive.
	// A conflict kind means the stock is exhausted.
	Reserve(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// Release increments available_copies by one, capped at total_copies
	// so a double release can never overflow the pool.
	Release(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type RentalRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *rental.Rental) (uuid.UUID, error)
	FindSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.RentalSnapshot, error)
	// UpdateStatus transitions id to the target status only when the
	// persisted status is one of from; returns the affected row count so
	// callers can re-check stale reads.
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, to rental.Status, from ...rental.Status) (int64, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, p *purchase.Purchase) (uuid.UUID, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, title, message, kind string) (uuid.UUID, error)
	MarkRead(ctx context.Context, dbtx db.DBTX, id, userID uuid.UUID) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, u *user.User) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
