package repository

import (
	"context"
	"fmt"
	"strings"

	"bookstand/internal/domain/rental"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RentalRepository struct{}

func NewRentalRepository() *RentalRepository {
	return &RentalRepository{}
}

func (r *RentalRepository) Create(ctx context.Context, dbtx db.DBTX, rentalEntity *rental.Rental) (uuid.UUID, error) {
	const query = `
		INSERT INTO rentals (id, user_id, book_id, term, start_date, end_date, price_paid_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(rentalEntity.ID()),
		pgconv.UUIDToPgtype(rentalEntity.UserID()),
		pgconv.UUIDToPgtype(rentalEntity.BookID()),
		rentalEntity.Term().String(),
		pgconv.TimeToPgtype(rentalEntity.StartDate()),
		pgconv.TimeToPgtype(rentalEntity.EndDate()),
		rentalEntity.PricePaid().Cents(),
		rentalEntity.Status().String(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create rental", err)
	}
	return rentalEntity.ID(), nil
}

func (r *RentalRepository) FindSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.RentalSnapshot, error) {
	const query = `
		SELECT id, user_id, book_id, term, start_date, end_date, price_paid_cents, status
		FROM rentals
		WHERE id = $1`

	var snap shared.RentalSnapshot
	var bookID pgtype.UUID
	err := dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID,
		&snap.UserID,
		&bookID,
		&snap.Term,
		&snap.StartDate,
		&snap.EndDate,
		&snap.PricePaidCents,
		&snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rental not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find rental", err)
	}
	snap.BookID = pgconv.UUIDPtrFromPgtype(bookID)
	return &snap, nil
}

// UpdateStatus transitions the rental only when its persisted status is
// one of from. The conditional WHERE makes the transition safe against
// concurrent returns without an explicit row lock.
func (r *RentalRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, to rental.Status, from ...rental.Status) (int64, error) {
	query := `UPDATE rentals SET status = $2, updated_at = now() WHERE id = $1`
	args := []any{pgconv.UUIDToPgtype(id), to.String()}

	if len(from) > 0 {
		placeholders := make([]string, len(from))
		for i, s := range from {
			placeholders[i] = fmt.Sprintf("$%d", i+3)
			args = append(args, s.String())
		}
		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}

	tag, err := dbtx.Exec(ctx, query, args...)
	if err != nil {
		return 0, wrapWriteErr("failed to update rental status", err)
	}
	return tag.RowsAffected(), nil
}
