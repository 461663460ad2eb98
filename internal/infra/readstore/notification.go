package readstore

import (
	"context"

	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/pgconv"
	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
)

type NotificationReadStore struct {
	db db.DBTX
}

func NewNotificationReadStore(dbtx db.DBTX) *NotificationReadStore {
	return &NotificationReadStore{db: dbtx}
}

func (s *NotificationReadStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*queries.NotificationView, error) {
	const query = `
		SELECT id, user_id, title, message, kind, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.Query(ctx, query, pgconv.UUIDToPgtype(userID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notifications", err)
	}
	defer rows.Close()

	var views []*queries.NotificationView
	for rows.Next() {
		var v queries.NotificationView
		if err := rows.Scan(&v.ID, &v.UserID, &v.Title, &v.Message, &v.Kind, &v.IsRead, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification rows", err)
	}
	return views, nil
}
