package commands

import (
	"context"
	"fmt"
	"log/slog"

	"bookstand/internal/domain/book"
	"bookstand/internal/domain/purchase"
	"bookstand/internal/domain/rental"
	"bookstand/internal/domain/user"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/errs"
	"bookstand/internal/usecase/queries"
	"bookstand/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookNotFound            = errs.New("book not found")
	ErrBookUnavailable         = errs.New("book unavailable")
	ErrInsufficientCopies      = errs.New("insufficient copies")
	ErrRentalNotFound          = errs.New("rental not found")
	ErrInvalidRentalTerm       = errs.New("invalid rental term")
	ErrInvalidStateTransition  = errs.New("invalid state transition")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// releaseRetries bounds the compensation loop; past it the copy count
// needs manual reconciliation and we log loudly instead of spinning.
const releaseRetries = 3

// Actor identifies the caller of a checkout operation.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

// CheckoutCommands coordinates a purchase, rental, or return as one
// logical unit spanning the inventory ledger and record creation, and
// compensates the ledger on partial failure.
type CheckoutCommands interface {
	PurchaseBook(ctx context.Context, userID, bookID uuid.UUID) (*queries.PurchaseView, error)
	RentBook(ctx context.Context, userID, bookID uuid.UUID, term rental.Term) (*queries.RentalView, error)
	ReturnRental(ctx context.Context, actor Actor, rentalID uuid.UUID) error
}

type checkoutCommandsImpl struct {
	bookRepo         BookRepository
	rentalRepo       RentalRepository
	purchaseRepo     PurchaseRepository
	notificationRepo NotificationRepository
	rentalFactory    *rental.Factory
	rentalQueries    queries.RentalQueries
	purchaseQueries  queries.PurchaseQueries
	tx               shared.TxRunner
	db               db.DBTX
}

func NewCheckoutCommands(
	bookRepo BookRepository,
	rentalRepo RentalRepository,
	purchaseRepo PurchaseRepository,
	notificationRepo NotificationRepository,
	rentalFactory *rental.Factory,
	rentalQueries queries.RentalQueries,
	purchaseQueries queries.PurchaseQueries,
	txRunner shared.TxRunner,
	dbtx db.DBTX,
) CheckoutCommands {
	return &checkoutCommandsImpl{
		bookRepo:         bookRepo,
		rentalRepo:       rentalRepo,
		purchaseRepo:     purchaseRepo,
		notificationRepo: notificationRepo,
		rentalFactory:    rentalFactory,
		rentalQueries:    rentalQueries,
		purchaseQueries:  purchaseQueries,
		tx:               txRunner,
		db:               dbtx,
	}
}

func (u *checkoutCommandsImpl) PurchaseBook(ctx context.Context, userID, bookID uuid.UUID) (*queries.PurchaseView, error) {
	bookEntity, err := u.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !bookEntity.IsAvailable() {
		return nil, ErrBookUnavailable
	}

	if err := u.reserve(ctx, bookID); err != nil {
		return nil, err
	}

	purchaseEntity := purchase.NewPurchase(userID, bookID, bookEntity.PurchasePrice())

	purchaseID, err := u.purchaseRepo.Create(ctx, u.db, purchaseEntity)
	if err != nil {
		// The copy was already reserved; give it back so the decrement
		// is not silently lost.
		u.compensateReserve(ctx, bookID)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.purchaseQueries.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *checkoutCommandsImpl) RentBook(ctx context.Context, userID, bookID uuid.UUID, term rental.Term) (*queries.RentalView, error) {
	if !term.IsValid() {
		return nil, ErrInvalidRentalTerm
	}

	bookEntity, err := u.loadBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// End date and price snapshot are fixed before any write.
	rentalEntity, err := u.rentalFactory.CreateRental(bookEntity, userID, term)
	if err != nil {
		if errs.Is(err, rental.ErrBookNotRentable) {
			return nil, ErrBookUnavailable
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.reserve(ctx, bookID); err != nil {
		return nil, err
	}

	rentalID, err := u.rentalRepo.Create(ctx, u.db, rentalEntity)
	if err != nil {
		u.compensateReserve(ctx, bookID)
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.notifyRentalCreated(ctx, rentalEntity)

	view, err := u.rentalQueries.GetByID(ctx, rentalID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *checkoutCommandsImpl) ReturnRental(ctx context.Context, actor Actor, rentalID uuid.UUID) error {
	snap, err := u.rentalRepo.FindSnapshot(ctx, u.db, rentalID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrRentalNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Members may only return their own rentals; hide others entirely.
	if snap.UserID != actor.UserID && !actor.Role.IsAdmin() {
		return ErrRentalNotFound
	}

	currentStatus, err := rental.NewStatus(snap.Status)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !currentStatus.IsReturnable() {
		return ErrInvalidStateTransition
	}

	// Status flip and release commit or roll back together.
	return u.tx.WithTx(ctx, func(dbtx db.DBTX) error {
		// Conditional update re-validates the persisted status; a stale
		// snapshot loses the race here instead of double-releasing.
		rows, err := u.rentalRepo.UpdateStatus(ctx, dbtx, rentalID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if rows == 0 {
			return ErrInvalidStateTransition
		}

		if snap.BookID == nil {
			// Book deleted since the rental was created; nothing to release.
			return nil
		}

		if err := u.bookRepo.Release(ctx, dbtx, *snap.BookID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.Warn("book gone before release; rental returned without inventory adjustment",
					"rental_id", rentalID, "book_id", *snap.BookID)
				return nil
			}
			// Rolling back the transaction also undoes the status flip.
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (u *checkoutCommandsImpl) loadBook(ctx context.Context, bookID uuid.UUID) (*book.Book, error) {
	snap, err := u.bookRepo.FindSnapshot(ctx, u.db, bookID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookFromSnapshot(snap)
}

func (u *checkoutCommandsImpl) reserve(ctx context.Context, bookID uuid.UUID) error {
	if err := u.bookRepo.Reserve(ctx, u.db, bookID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return ErrInsufficientCopies
		case infra.IsKind(err, infra.KindNotFound):
			return ErrBookNotFound
		default:
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return nil
}

// compensateReserve releases a copy reserved by a checkout whose record
// creation failed. Best effort with a bounded retry; the caller already
// reports the original failure.
func (u *checkoutCommandsImpl) compensateReserve(ctx context.Context, bookID uuid.UUID) {
	var lastErr error
	for attempt := 0; attempt < releaseRetries; attempt++ {
		if lastErr = u.bookRepo.Release(ctx, u.db, bookID); lastErr == nil {
			return
		}
	}
	slog.Error("failed to roll back reservation; copy count requires manual reconciliation",
		"book_id", bookID, "error", lastErr.Error())
}

func (u *checkoutCommandsImpl) notifyRentalCreated(ctx context.Context, r *rental.Rental) {
	title := "Rental confirmed"
	message := fmt.Sprintf("Your rental is due back on %s.", r.EndDate().Format("2006-01-02"))

	// Fire and forget: notification failures never block the rental flow.
	if _, err := u.notificationRepo.Create(ctx, u.db, r.UserID(), title, message, "rental_reminder"); err != nil {
		slog.Warn("failed to create rental notification", "rental_id", r.ID(), "error", err.Error())
	}
}

func bookFromSnapshot(snap *shared.BookSnapshot) (*book.Book, error) {
	prices := book.TierPrices{
		TwoWeeks:    book.MustMoney(snap.RentalPrice2WeeksCents),
		OneMonth:    book.MustMoney(snap.RentalPrice1MonthCents),
		ThreeMonths: book.MustMoney(snap.RentalPrice3MonthsCents),
	}

	b, err := book.ReconstructBook(
		snap.ID,
		snap.Title,
		snap.Author,
		snap.Category,
		int(snap.YearPublished),
		snap.Description,
		snap.CoverImageURL,
		book.MustMoney(snap.PurchasePriceCents),
		prices,
		snap.TotalCopies,
		snap.AvailableCopies,
		snap.IsAvailable,
		snap.CreatedAt,
		snap.UpdatedAt,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return b, nil
}
