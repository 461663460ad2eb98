package commands

import (
	"context"

	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNotificationNotFound = errs.New("notification not found")

type NotificationCommands interface {
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationCommandsImpl struct {
	notificationRepo NotificationRepository
	db               db.DBTX
}

func NewNotificationCommands(notificationRepo NotificationRepository, dbtx db.DBTX) NotificationCommands {
	return &notificationCommandsImpl{
		notificationRepo: notificationRepo,
		db:               dbtx,
	}
}

// MarkRead is scoped to the owning user; a foreign notification reads as
// not found rather than forbidden.
func (u *notificationCommandsImpl) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	rows, err := u.notificationRepo.MarkRead(ctx, u.db, notificationID, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if rows == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
