package repository

import (
	"context"

	"bookstand/internal/domain/purchase"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PurchaseRepository struct{}

func NewPurchaseRepository() *PurchaseRepository {
	return &PurchaseRepository{}
}

func (r *PurchaseRepository) Create(ctx context.Context, dbtx db.DBTX, p *purchase.Purchase) (uuid.UUID, error) {
	const query = `
		INSERT INTO purchases (id, user_id, book_id, price_paid_cents)
		VALUES ($1, $2, $3, $4)`

	_, err := dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(p.ID()),
		pgconv.UUIDToPgtype(p.UserID()),
		pgconv.UUIDToPgtype(p.BookID()),
		p.PricePaid().Cents(),
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create purchase", err)
	}
	return p.ID(), nil
}
