package queries

import (
	"context"

	"bookstand/internal/infra"
	"bookstand/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPurchaseNotFound = errs.New("purchase not found")

type PurchaseQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*PurchaseView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
}

// PurchaseStats are the purchase aggregates for the dashboard,
// computed in SQL.
type PurchaseStats struct {
	Total        int64
	RevenueCents int64
}

type PurchaseReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*PurchaseView, error)
	FindRecent(ctx context.Context, limit int) ([]*PurchaseView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error)
	Stats(ctx context.Context) (*PurchaseStats, error)
}

type purchaseQueriesImpl struct {
	readStore PurchaseReadStore
}

func NewPurchaseQueries(readStore PurchaseReadStore) PurchaseQueries {
	return &purchaseQueriesImpl{
		readStore: readStore,
	}
}

func (q *purchaseQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*PurchaseView, error) {
	return q.readStore.FindByUser(ctx, userID)
}

func (q *purchaseQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, err
	}
	return view, nil
}
