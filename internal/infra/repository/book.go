package repository

import (
	"context"

	"bookstand/internal/domain/book"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookRepository struct{}

func NewBookRepository() *BookRepository {
	return &BookRepository{}
}

func (r *BookRepository) Create(ctx context.Context, dbtx db.DBTX, b *book.Book) (uuid.UUID, error) {
	const query = `
		INSERT INTO books (
			id, title, author, category, year_published, description, cover_image_url,
			purchase_price_cents, rental_price_2weeks_cents, rental_price_1month_cents,
			rental_price_3months_cents, total_copies, available_copies, is_available
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(b.ID()),
		b.Title(),
		b.Author(),
		b.Category(),
		int32(b.YearPublished()),
		b.Description(),
		b.CoverImageURL(),
		b.PurchasePrice().Cents(),
		b.RentalPrices().TwoWeeks.Cents(),
		b.RentalPrices().OneMonth.Cents(),
		b.RentalPrices().ThreeMonths.Cents(),
		b.TotalCopies(),
		b.AvailableCopies(),
		b.IsAvailable(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create book", err)
	}
	return b.ID(), nil
}

// Update applies a sparse patch. When total_copies changes, the
// available count shifts by the same delta and is clamped to
// [0, new total] so outstanding checkouts stay accounted for. All SET
// expressions read the pre-update row, which is what makes the delta
// arithmetic safe in a single statement.
func (r *BookRepository) Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, params commands.UpdateBookParams) error {
	const query = `
		UPDATE books SET
			title = COALESCE($2, title),
			author = COALESCE($3, author),
			category = COALESCE($4, category),
			year_published = COALESCE($5, year_published),
			description = COALESCE($6, description),
			cover_image_url = COALESCE($7, cover_image_url),
			purchase_price_cents = COALESCE($8, purchase_price_cents),
			rental_price_2weeks_cents = COALESCE($9, rental_price_2weeks_cents),
			rental_price_1month_cents = COALESCE($10, rental_price_1month_cents),
			rental_price_3months_cents = COALESCE($11, rental_price_3months_cents),
			available_copies = CASE
				WHEN $12::integer IS NULL THEN available_copies
				ELSE GREATEST(0, LEAST($12::integer, available_copies + ($12::integer - total_copies)))
			END,
			total_copies = COALESCE($12, total_copies),
			is_available = COALESCE($13, is_available),
			updated_at = now()
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(id),
		params.Title,
		params.Author,
		params.Category,
		params.YearPublished,
		params.Description,
		params.CoverImageURL,
		params.PurchasePriceCents,
		params.RentalPrice2WeeksCents,
		params.RentalPrice1MonthCents,
		params.RentalPrice3MonthsCents,
		params.TotalCopies,
		params.IsAvailable,
	)
	if err != nil {
		return wrapWriteErr("failed to update book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	// Rentals and purchases reference books with ON DELETE SET NULL, so
	// history survives the delete with a detached reference.
	tag, err := dbtx.Exec(ctx, `DELETE FROM books WHERE id = $1`, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapWriteErr("failed to delete book", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) FindSnapshot(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*shared.BookSnapshot, error) {
	const query = `
		SELECT id, title, author, category, year_published, description, cover_image_url,
		       purchase_price_cents, rental_price_2weeks_cents, rental_price_1month_cents,
		       rental_price_3months_cents, total_copies, available_copies, is_available,
		       created_at, updated_at
		FROM books
		WHERE id = $1`

	var snap shared.BookSnapshot
	err := dbtx.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).Scan(
		&snap.ID,
		&snap.Title,
		&snap.Author,
		&snap.Category,
		&snap.YearPublished,
		&snap.Description,
		&snap.CoverImageURL,
		&snap.PurchasePriceCents,
		&snap.RentalPrice2WeeksCents,
		&snap.RentalPrice1MonthCents,
		&snap.RentalPrice3MonthsCents,
		&snap.TotalCopies,
		&snap.AvailableCopies,
		&snap.IsAvailable,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("book not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find book", err)
	}
	return &snap, nil
}

// Reserve takes one copy out of the available pool. The WHERE clause is
// the whole concurrency story: two simultaneous reservations of the
// last copy serialize on the row lock and the loser matches zero rows.
func (r *BookRepository) Reserve(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `
		UPDATE books
		SET available_copies = available_copies - 1, updated_at = now()
		WHERE id = $1 AND available_copies > 0`

	tag, err := dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapWriteErr("failed to reserve copy", err)
	}
	if tag.RowsAffected() == 0 {
		exists, err := r.exists(ctx, dbtx, id)
		if err != nil {
			return err
		}
		if !exists {
			return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("no copies available", nil, infra.KindConflict)
	}
	return nil
}

// Release returns one copy to the pool, capped at total_copies so a
// duplicate release can never push availability past the owned stock.
func (r *BookRepository) Release(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `
		UPDATE books
		SET available_copies = LEAST(available_copies + 1, total_copies), updated_at = now()
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id))
	if err != nil {
		return wrapWriteErr("failed to release copy", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("book not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookRepository) exists(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, pgconv.UUIDToPgtype(id)).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check book existence", err)
	}
	return exists, nil
}
