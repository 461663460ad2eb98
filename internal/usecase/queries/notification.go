package queries

import (
	"context"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error)
}

type NotificationReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error)
}

type notificationQueriesImpl struct {
	readStore NotificationReadStore
}

func NewNotificationQueries(readStore NotificationReadStore) NotificationQueries {
	return &notificationQueriesImpl{
		readStore: readStore,
	}
}

func (q *notificationQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*NotificationView, error) {
	return q.readStore.FindByUser(ctx, userID)
}
