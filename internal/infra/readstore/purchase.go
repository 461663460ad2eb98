package readstore

import (
	"context"

	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const purchaseSelect = `
	SELECT p.id, p.user_id, p.book_id, b.title, b.author, b.cover_image_url,
	       p.price_paid_cents, p.created_at
	FROM purchases p
	LEFT JOIN books b ON b.id = p.book_id`

type PurchaseReadStore struct {
	db db.DBTX
}

func NewPurchaseReadStore(dbtx db.DBTX) *PurchaseReadStore {
	return &PurchaseReadStore{db: dbtx}
}

func (s *PurchaseReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.PurchaseView, error) {
	query := purchaseSelect + ` WHERE p.user_id = $1 ORDER BY p.created_at DESC`

	rows, err := s.db.Query(ctx, query, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list purchases by user", err)
	}
	defer rows.Close()

	return scanPurchaseViews(rows)
}

func (s *PurchaseReadStore) FindRecent(ctx context.Context, limit int) ([]*queries.PurchaseView, error) {
	query := purchaseSelect + ` ORDER BY p.created_at DESC LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recent purchases", err)
	}
	defer rows.Close()

	return scanPurchaseViews(rows)
}

func (s *PurchaseReadStore) Stats(ctx context.Context) (*queries.PurchaseStats, error) {
	const query = `SELECT COUNT(*), COALESCE(SUM(price_paid_cents), 0) FROM purchases`

	var st queries.PurchaseStats
	err := s.db.QueryRow(ctx, query).Scan(&st.Total, &st.RevenueCents)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate purchase stats", err)
	}
	return &st, nil
}

func (s *PurchaseReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PurchaseView, error) {
	query := purchaseSelect + ` WHERE p.id = $1`

	view, err := scanPurchaseView(s.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("purchase not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find purchase", err)
	}
	return view, nil
}

func scanPurchaseView(row rowScanner) (*queries.PurchaseView, error) {
	var v queries.PurchaseView
	var bookID pgtype.UUID
	var bookTitle, bookAuthor, bookCoverURL pgtype.Text

	err := row.Scan(
		&v.ID,
		&v.UserID,
		&bookID,
		&bookTitle,
		&bookAuthor,
		&bookCoverURL,
		&v.PricePaidCents,
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

func scanPurchaseViews(rows pgx.Rows) ([]*queries.PurchaseView, error) {
	var views []*queries.PurchaseView
	for rows.Next() {
		view, err := scanPurchaseView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan purchase row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate purchase rows", err)
	}
	return views, nil
}
