package queries

import (
	"context"

	"bookstand/internal/infra"
	"bookstand/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookNotFound = errs.New("book not found")

type BookQueries interface {
	List(ctx context.Context, filter BookListFilter) ([]*BookView, error)
	Get(ctx context.Context, id uuid.UUID) (*BookView, error)
}

type BookReadStore interface {
	FindAll(ctx context.Context, filter BookListFilter) ([]*BookView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	Count(ctx context.Context) (int64, error)
}

type bookQueriesImpl struct {
	readStore BookReadStore
}

func NewBookQueries(readStore BookReadStore) BookQueries {
	return &bookQueriesImpl{
		readStore: readStore,
	}
}

func (q *bookQueriesImpl) List(ctx context.Context, filter BookListFilter) ([]*BookView, error) {
	return q.readStore.FindAll(ctx, filter)
}

func (q *bookQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*BookView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return view, nil
}
