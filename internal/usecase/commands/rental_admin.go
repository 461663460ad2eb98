package commands

import (
	"context"
	"fmt"

	"bookstand/internal/domain/rental"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/clock"
	"bookstand/internal/pkg/errs"
	"bookstand/internal/pkg/patch"
	"bookstand/internal/usecase/queries"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrRentalNotOverdue = errs.New("rental is not overdue")

// RentalAdminCommands covers administrative overrides of the rental
// state machine. Overrides that re-activate a returned rental take a
// copy back out of the ledger, so the whole override runs in a single
// database transaction instead of the compensation scheme used by
// member checkouts.
type RentalAdminCommands interface {
	SetRentalStatus(ctx context.Context, rentalID uuid.UUID, to rental.Status) (*queries.RentalView, error)
	SendReminder(ctx context.Context, rentalID uuid.UUID, message *string) error
}

type rentalAdminCommandsImpl struct {
	pool             *pgxpool.Pool
	rentalRepo       RentalRepository
	bookRepo         BookRepository
	notificationRepo NotificationRepository
	rentalQueries    queries.RentalQueries
	clock            clock.Clock
	db               db.DBTX
}

func NewRentalAdminCommands(
	pool *pgxpool.Pool,
	rentalRepo RentalRepository,
	bookRepo BookRepository,
	notificationRepo NotificationRepository,
	rentalQueries queries.RentalQueries,
	clk clock.Clock,
	dbtx db.DBTX,
) RentalAdminCommands {
	return &rentalAdminCommandsImpl{
		pool:             pool,
		rentalRepo:       rentalRepo,
		bookRepo:         bookRepo,
		notificationRepo: notificationRepo,
		rentalQueries:    rentalQueries,
		clock:            clk,
		db:               dbtx,
	}
}

func (u *rentalAdminCommandsImpl) SetRentalStatus(ctx context.Context, rentalID uuid.UUID, to rental.Status) (*queries.RentalView, error) {
	if !to.IsValid() {
		return nil, errs.Mark(rental.ErrInvalidStatus, ErrDomainValidation)
	}

	_, err := shared.WithDefaultRetry(ctx, u.pool, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, u.overrideStatus(ctx, tx, rentalID, to)
	})
	if err != nil {
		return nil, err
	}

	view, err := u.rentalQueries.GetByID(ctx, rentalID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *rentalAdminCommandsImpl) overrideStatus(ctx context.Context, tx db.DBTX, rentalID uuid.UUID, to rental.Status) error {
	snap, err := u.rentalRepo.FindSnapshot(ctx, tx, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRentalNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	from, err := rental.NewStatus(snap.Status)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if from == to {
		return nil
	}

	// Reactivating a returned rental checks a copy back out, so the
	// ledger must agree before the status flips.
	if from == rental.StatusReturned && snap.BookID != nil {
		if err := u.bookRepo.Reserve(ctx, tx, *snap.BookID); err != nil {
			switch {
			case infra.IsKind(err, infra.KindConflict):
				return ErrInsufficientCopies
			case infra.IsKind(err, infra.KindNotFound):
				return ErrBookNotFound
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
	}
	if to == rental.StatusReturned && snap.BookID != nil {
		if err := u.bookRepo.Release(ctx, tx, *snap.BookID); err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	rows, err := u.rentalRepo.UpdateStatus(ctx, tx, rentalID, to, from)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if rows == 0 {
		// Concurrent transition between read and update; the tx rolls
		// back any ledger adjustment made above.
		return ErrInvalidStateTransition
	}
	return nil
}

// SendReminder notifies the renter of an overdue rental. Overdue here
// means effectively overdue: either the persisted override or an active
// rental past its end date. A nil message falls back to the stock
// reminder text.
func (u *rentalAdminCommandsImpl) SendReminder(ctx context.Context, rentalID uuid.UUID, message *string) error {
	snap, err := u.rentalRepo.FindSnapshot(ctx, u.db, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRentalNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	effective := rental.Status(snap.Status).Effective(snap.EndDate, u.clock.Now())
	if effective != rental.StatusOverdue {
		return ErrRentalNotOverdue
	}

	title := "Return reminder"
	body := patch.Coalesce(message, fmt.Sprintf(
		"Your rental was due on %s. Please return it as soon as possible.",
		snap.EndDate.Format("2006-01-02")))

	if _, err := u.notificationRepo.Create(ctx, u.db, snap.UserID, title, body, "overdue_reminder"); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
