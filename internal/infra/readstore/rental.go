package readstore

import (
	"context"
	"time"

	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// rentalSelect joins books with a LEFT JOIN: the book may have been
// deleted after the rental was created, in which case the Book* fields
// come back null.
const rentalSelect = `
	SELECT r.id, r.user_id, r.book_id, b.title, b.author, b.cover_image_url,
	       r.term, r.start_date, r.end_date, r.price_paid_cents, r.status, r.created_at
	FROM rentals r
	LEFT JOIN books b ON b.id = r.book_id`

type RentalReadStore struct {
	db db.DBTX
}

func NewRentalReadStore(dbtx db.DBTX) *RentalReadStore {
	return &RentalReadStore{db: dbtx}
}

func (s *RentalReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.RentalView, error) {
	query := rentalSelect + ` WHERE r.user_id = $1 ORDER BY r.created_at DESC`

	rows, err := s.db.Query(ctx, query, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals by user", err)
	}
	defer rows.Close()

	return scanRentalViews(rows)
}

func (s *RentalReadStore) FindAll(ctx context.Context) ([]*queries.RentalView, error) {
	query := rentalSelect + ` ORDER BY r.created_at DESC`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rentals", err)
	}
	defer rows.Close()

	return scanRentalViews(rows)
}

func (s *RentalReadStore) FindRecent(ctx context.Context, limit int) ([]*queries.RentalView, error) {
	query := rentalSelect + ` ORDER BY r.created_at DESC LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recent rentals", err)
	}
	defer rows.Close()

	return scanRentalViews(rows)
}

// Stats aggregates in one statement; the FILTER clauses mirror the
// read-time overdue derivation.
func (s *RentalReadStore) Stats(ctx context.Context, now time.Time) (*queries.RentalStats, error) {
	const query = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'active' AND end_date >= $1),
		       COUNT(*) FILTER (WHERE status = 'overdue' OR (status = 'active' AND end_date < $1)),
		       COALESCE(SUM(price_paid_cents), 0)
		FROM rentals`

	var st queries.RentalStats
	err := s.db.QueryRow(ctx, query, now).Scan(&st.Total, &st.Active, &st.Overdue, &st.RevenueCents)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate rental stats", err)
	}
	return &st, nil
}

func (s *RentalReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RentalView, error) {
	query := rentalSelect + ` WHERE r.id = $1`

	view, err := scanRentalView(s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental", err)
	}
	return view, nil
}

func scanRentalView(row rowScanner) (*queries.RentalView, error) {
	var v queries.RentalView
	var bookID pgtype.UUID
	var bookTitle, bookAuthor, bookCoverURL pgtype.Text

	err := row.Scan(
		&v.ID,
		&v.UserID,
		&bookID,
		&bookTitle,
		&bookAuthor,
		&bookCoverURL,
		&v.Term,
		&v.StartDate,
		&v.EndDate,
		&v.PricePaidCents,
		&v.Status,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.BookID = pgconv.UUIDPtrFromPgtype(bookID)
	v.BookTitle = pgconv.StringPtrFromPgtype(bookTitle)
	v.BookAuthor = pgconv.StringPtrFromPgtype(bookAuthor)
	v.BookCoverURL = pgconv.StringPtrFromPgtype(bookCoverURL)
	return &v, nil
}

func scanRentalViews(rows pgx.Rows) ([]*queries.RentalView, error) {
	var views []*queries.RentalView
	for rows.Next() {
		view, err := scanRentalView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan rental row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rental rows", err)
	}
	return views, nil
}
