package queries

import (
	"context"
	"time"

	"bookstand/internal/domain/rental"
	"bookstand/internal/infra"
	"bookstand/internal/pkg/clock"
	"bookstand/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRentalNotFound = errs.New("rental not found")

type RentalQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*RentalView, error)
	// ListAll serves the admin rental table; statusFilter matches the
	// effective status ("" means no filter).
	ListAll(ctx context.Context, statusFilter string) ([]*RentalView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
}

// RentalStats are the rental aggregates for the dashboard, computed in
// SQL; Overdue follows the same derived rule as reads.
type RentalStats struct {
	Total        int64
	Active       int64
	Overdue      int64
	RevenueCents int64
}

type RentalReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*RentalView, error)
	FindAll(ctx context.Context) ([]*RentalView, error)
	FindRecent(ctx context.Context, limit int) ([]*RentalView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RentalView, error)
	Stats(ctx context.Context, now time.Time) (*RentalStats, error)
}

type rentalQueriesImpl struct {
	readStore RentalReadStore
	clock     clock.Clock
}

func NewRentalQueries(readStore RentalReadStore, clock clock.Clock) RentalQueries {
	return &rentalQueriesImpl{
		readStore: readStore,
		clock:     clock,
	}
}

func (q *rentalQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*RentalView, error) {
	views, err := q.readStore.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return q.deriveAll(views), nil
}

func (q *rentalQueriesImpl) ListAll(ctx context.Context, statusFilter string) ([]*RentalView, error) {
	views, err := q.readStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	views = q.deriveAll(views)

	if statusFilter == "" {
		return views, nil
	}

	filtered := make([]*RentalView, 0, len(views))
	for _, v := range views {
		if v.Status == statusFilter {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

func (q *rentalQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RentalView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	q.derive(view)
	return view, nil
}

// derive replaces the persisted status with the effective one. The
// derivation is read-time only and must never be written back.
func (q *rentalQueriesImpl) derive(v *RentalView) {
	v.Status = rental.Status(v.Status).Effective(v.EndDate, q.clock.Now()).String()
}

func (q *rentalQueriesImpl) deriveAll(views []*RentalView) []*RentalView {
	for _, v := range views {
		q.derive(v)
	}
	return views
}
