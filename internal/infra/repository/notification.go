package repository

import (
	"context"

	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Create(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, title, message, kind string) (uuid.UUID, error) {
	const query = `
		INSERT INTO notifications (id, user_id, title, message, kind)
		VALUES ($1, $2, $3, $4, $5)`

	id := uuid.New()
	_, err := dbtx.Exec(ctx, query,
		pgconv.UUIDToPgtype(id),
		pgconv.UUIDToPgtype(userID),
		title,
		message,
		kind,
	)
	if err != nil {
		return uuid.Nil, wrapWriteErr("failed to create notification", err)
	}
	return id, nil
}

// MarkRead is scoped by owner; marking someone else's notification
// matches zero rows.
func (r *NotificationRepository) MarkRead(ctx context.Context, dbtx db.DBTX, id, userID uuid.UUID) (int64, error) {
	const query = `UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`

	tag, err := dbtx.Exec(ctx, query, pgconv.UUIDToPgtype(id), pgconv.UUIDToPgtype(userID))
	if err != nil {
		return 0, wrapWriteErr("failed to mark notification read", err)
	}
	return tag.RowsAffected(), nil
}
