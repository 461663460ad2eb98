package readstore

import (
	"context"

	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
)

var pgDialect = goqu.Dialect("postgres")

var bookColumns = []any{
	"id", "title", "author", "category", "year_published", "description",
	"cover_image_url", "purchase_price_cents", "rental_price_2weeks_cents",
	"rental_price_1month_cents", "rental_price_3months_cents",
	"total_copies", "available_copies", "is_available", "created_at", "updated_at",
}

type BookReadStore struct {
	db db.DBTX
}

func NewBookReadStore(dbtx db.DBTX) *BookReadStore {
	return &BookReadStore{db: dbtx}
}

// FindAll builds the catalog listing query dynamically from the filter.
// Search matches title or author case-insensitively.
func (s *BookReadStore) FindAll(ctx context.Context, filter queries.BookListFilter) ([]*queries.BookView, error) {
	ds := pgDialect.From("books").Select(bookColumns...)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("title").ILike(pattern),
			goqu.I("author").ILike(pattern),
		))
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.I("category").Eq(filter.Category))
	}
	if filter.Author != "" {
		ds = ds.Where(goqu.I("author").Eq(filter.Author))
	}

	switch filter.SortBy {
	case "author":
		ds = ds.Order(goqu.I("author").Asc(), goqu.I("title").Asc())
	case "year":
		ds = ds.Order(goqu.I("year_published").Desc(), goqu.I("title").Asc())
	case "price":
		ds = ds.Order(goqu.I("purchase_price_cents").Asc(), goqu.I("title").Asc())
	default:
		ds = ds.Order(goqu.I("title").Asc())
	}

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book listing query", err)
	}

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list books", err)
	}
	defer rows.Close()

	var views []*queries.BookView
	for rows.Next() {
		view, err := scanBookView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan book row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate book rows", err)
	}
	return views, nil
}

func (s *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	sql, args, err := pgDialect.From("books").Select(bookColumns...).
		Where(goqu.I("id").Eq(id.String())).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build book query", err)
	}

	view, err := scanBookView(s.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}
	return view, nil
}

func (s *BookReadStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM books`).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count books", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookView(row rowScanner) (*queries.BookView, error) {
	var v queries.BookView
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Author,
		&v.Category,
		&v.YearPublished,
		&v.Description,
		&v.CoverImageURL,
		&v.PurchasePriceCents,
		&v.RentalPrice2WeeksCents,
		&v.RentalPrice1MonthCents,
		&v.RentalPrice3MonthsCents,
		&v.TotalCopies,
		&v.AvailableCopies,
		&v.IsAvailable,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
