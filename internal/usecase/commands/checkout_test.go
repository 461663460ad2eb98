//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"bookstand/internal/domain/rental"
	"bookstand/internal/domain/user"
	"bookstand/internal/infra"
	"bookstand/internal/infra/db"
	"bookstand/internal/pkg/clock"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/queries"
	"bookstand/tests/common/builder"
	commandsmock "bookstand/tests/mock/commands"
	queriesmock "bookstand/tests/mock/queries"
	sharedmock "bookstand/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutCommandsTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	bookRepo         *commandsmock.MockBookRepository
	rentalRepo       *commandsmock.MockRentalRepository
	purchaseRepo     *commandsmock.MockPurchaseRepository
	notificationRepo *commandsmock.MockNotificationRepository
	rentalQueries    *queriesmock.MockRentalQueries
	purchaseQueries  *queriesmock.MockPurchaseQueries
	txRunner         *sharedmock.MockTxRunner
	clock            *clock.MockClock
	uc               commands.CheckoutCommands
}

func (s *CheckoutCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.bookRepo = commandsmock.NewMockBookRepository(s.ctrl)
	s.rentalRepo = commandsmock.NewMockRentalRepository(s.ctrl)
	s.purchaseRepo = commandsmock.NewMockPurchaseRepository(s.ctrl)
	s.notificationRepo = commandsmock.NewMockNotificationRepository(s.ctrl)
	s.rentalQueries = queriesmock.NewMockRentalQueries(s.ctrl)
	s.purchaseQueries = queriesmock.NewMockPurchaseQueries(s.ctrl)
	s.txRunner = sharedmock.NewMockTxRunner(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))

	// Run transactional closures inline; rollback behavior is asserted
	// through the error the closure returns.
	s.txRunner.EXPECT().WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(db.DBTX) error) error {
			return fn(nil)
		}).AnyTimes()

	s.uc = commands.NewCheckoutCommands(
		s.bookRepo,
		s.rentalRepo,
		s.purchaseRepo,
		s.notificationRepo,
		rental.NewFactory(s.clock),
		s.rentalQueries,
		s.purchaseQueries,
		s.txRunner,
		nil,
	)
}

func (s *CheckoutCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCheckoutCommandsSuite(t *testing.T) {
	suite.Run(t, new(CheckoutCommandsTestSuite))
}

// trackingTxRunner marks the span of the transactional closure so tests
// can assert which calls happen inside it.
type trackingTxRunner struct {
	active *bool
}

func (r trackingTxRunner) WithTx(_ context.Context, fn func(db.DBTX) error) error {
	*r.active = true
	defer func() { *r.active = false }()
	return fn(nil)
}

func (s *CheckoutCommandsTestSuite) TestPurchaseBook() {
	ctx := context.Background()
	userID := uuid.New()

	s.Run("success: reserves a copy and creates the purchase", func() {
		bookBuilder := builder.NewBookBuilder()
		snap := bookBuilder.BuildSnapshot()
		purchaseID := uuid.New()

		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).Return(nil)
		s.purchaseRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(purchaseID, nil)
		bookID := snap.ID
		s.purchaseQueries.EXPECT().GetByID(gomock.Any(), purchaseID).
			Return(&queries.PurchaseView{
				ID:             purchaseID,
				UserID:         userID,
				BookID:         &bookID,
				PricePaidCents: snap.PurchasePriceCents,
			}, nil)

		view, err := s.uc.PurchaseBook(ctx, userID, snap.ID)
		s.NoError(err)
		s.Equal(purchaseID, view.ID)
		s.Equal(snap.PurchasePriceCents, view.PricePaidCents)
	})

	s.Run("error: unknown book", func() {
		bookID := uuid.New()
		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), bookID).
			Return(nil, infra.WrapRepoErr("book not found", nil, infra.KindNotFound))

		_, err := s.uc.PurchaseBook(ctx, userID, bookID)
		s.ErrorIs(err, commands.ErrBookNotFound)
	})

	s.Run("error: delisted book never reaches the ledger", func() {
		snap := builder.NewBookBuilder().AsUnavailable().BuildSnapshot()
		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)

		_, err := s.uc.PurchaseBook(ctx, userID, snap.ID)
		s.ErrorIs(err, commands.ErrBookUnavailable)
	})

	s.Run("error: exhausted stock maps reserve conflict", func() {
		snap := builder.NewBookBuilder().WithAvailableCopies(0).BuildSnapshot()
		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).
			Return(infra.WrapRepoErr("no copies available", nil, infra.KindConflict))

		_, err := s.uc.PurchaseBook(ctx, userID, snap.ID)
		s.ErrorIs(err, commands.ErrInsufficientCopies)
	})

	s.Run("error: failed record creation releases the reserved copy", func() {
		snap := builder.NewBookBuilder().BuildSnapshot()
		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).Return(nil)
		s.purchaseRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", nil))
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), snap.ID).Return(nil)

		_, err := s.uc.PurchaseBook(ctx, userID, snap.ID)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	})

	s.Run("error: compensation retries the release a bounded number of times", func() {
		snap := builder.NewBookBuilder().BuildSnapshot()
		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).Return(nil)
		s.purchaseRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", nil))
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), snap.ID).
			Return(infra.WrapRepoErr("release failed", nil)).Times(3)

		_, err := s.uc.PurchaseBook(ctx, userID, snap.ID)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	})
}

func (s *CheckoutCommandsTestSuite) TestRentBook() {
	ctx := context.Background()
	userID := uuid.New()

	s.Run("success: snapshots price and end date before any write", func() {
		bookBuilder := builder.NewBookBuilder()
		snap := bookBuilder.BuildSnapshot()
		rentalID := uuid.New()
		now := s.clock.Now()

		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).Return(nil)
		s.rentalRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, r *rental.Rental) (uuid.UUID, error) {
				s.Equal(userID, r.UserID())
				s.Equal(snap.ID, r.BookID())
				s.Equal(snap.RentalPrice1MonthCents, r.PricePaid().Cents())
				s.Equal(rental.TermOneMonth.EndDate(now), r.EndDate())
				return rentalID, nil
			})
		s.notificationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), userID,
			gomock.Any(), gomock.Any(), "rental_reminder").Return(uuid.New(), nil)
		expectedView := builder.NewRentalBuilder().WithUserID(userID).BuildView()
		expectedView.ID = rentalID
		s.rentalQueries.EXPECT().GetByID(gomock.Any(), rentalID).Return(expectedView, nil)

		view, err := s.uc.RentBook(ctx, userID, snap.ID, rental.TermOneMonth)
		s.NoError(err)
		s.Equal(rentalID, view.ID)
	})

	s.Run("error: invalid term short-circuits", func() {
		_, err := s.uc.RentBook(ctx, userID, uuid.New(), rental.Term("forever"))
		s.ErrorIs(err, commands.ErrInvalidRentalTerm)
	})

	s.Run("error: failed rental insert releases the reserved copy", func() {
		snap := builder.NewBookBuilder().BuildSnapshot()
		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).Return(nil)
		s.rentalRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", nil))
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), snap.ID).Return(nil)

		_, err := s.uc.RentBook(ctx, userID, snap.ID, rental.TermTwoWeeks)
		s.ErrorIs(err, commands.ErrDatabaseOperationFailed)
	})

	s.Run("error: notification failure never blocks the rental", func() {
		snap := builder.NewBookBuilder().BuildSnapshot()
		rentalID := uuid.New()

		s.bookRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.bookRepo.EXPECT().Reserve(gomock.Any(), gomock.Any(), snap.ID).Return(nil)
		s.rentalRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(rentalID, nil)
		s.notificationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), userID,
			gomock.Any(), gomock.Any(), "rental_reminder").
			Return(uuid.Nil, infra.WrapRepoErr("insert failed", nil))
		s.rentalQueries.EXPECT().GetByID(gomock.Any(), rentalID).
			Return(builder.NewRentalBuilder().BuildView(), nil)

		_, err := s.uc.RentBook(ctx, userID, snap.ID, rental.TermTwoWeeks)
		s.NoError(err)
	})
}

func (s *CheckoutCommandsTestSuite) TestReturnRental() {
	ctx := context.Background()

	s.Run("success: member returns own rental and the copy is released", func() {
		rb := builder.NewRentalBuilder()
		snap := rb.BuildSnapshot()
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue).Return(int64(1), nil)
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), *snap.BookID).Return(nil)

		s.NoError(s.uc.ReturnRental(ctx, actor, snap.ID))
	})

	s.Run("success: admin returns another member's rental", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		actor := commands.Actor{UserID: uuid.New(), Role: user.RoleAdmin}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue).Return(int64(1), nil)
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), *snap.BookID).Return(nil)

		s.NoError(s.uc.ReturnRental(ctx, actor, snap.ID))
	})

	s.Run("success: deleted book skips the release", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		snap.BookID = nil
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue).Return(int64(1), nil)

		s.NoError(s.uc.ReturnRental(ctx, actor, snap.ID))
	})

	s.Run("error: another member's rental is hidden as not found", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		actor := commands.Actor{UserID: uuid.New(), Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)

		s.ErrorIs(s.uc.ReturnRental(ctx, actor, snap.ID), commands.ErrRentalNotFound)
	})

	s.Run("error: already returned", func() {
		snap := builder.NewRentalBuilder().WithStatus(rental.StatusReturned).BuildSnapshot()
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)

		s.ErrorIs(s.uc.ReturnRental(ctx, actor, snap.ID), commands.ErrInvalidStateTransition)
	})

	s.Run("error: concurrent return loses the conditional update race", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue).Return(int64(0), nil)

		s.ErrorIs(s.uc.ReturnRental(ctx, actor, snap.ID), commands.ErrInvalidStateTransition)
	})

	s.Run("error: failed release fails the transaction and the status flip with it", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue).Return(int64(1), nil)
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), *snap.BookID).
			Return(infra.WrapRepoErr("release failed", nil))

		// No compensating UpdateStatus: the closure error rolls the
		// whole transaction back, status flip included.
		s.ErrorIs(s.uc.ReturnRental(ctx, actor, snap.ID), commands.ErrDatabaseOperationFailed)
	})

	s.Run("success: flip and release run inside one transaction boundary", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		var inTx bool
		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
				rental.StatusActive, rental.StatusOverdue).
			DoAndReturn(func(context.Context, db.DBTX, uuid.UUID, rental.Status, ...rental.Status) (int64, error) {
				s.True(inTx, "status flip must happen inside the transaction")
				return int64(1), nil
			})
		s.bookRepo.EXPECT().
			Release(gomock.Any(), gomock.Any(), *snap.BookID).
			DoAndReturn(func(context.Context, db.DBTX, uuid.UUID) error {
				s.True(inTx, "release must happen inside the transaction")
				return nil
			})

		uc := commands.NewCheckoutCommands(
			s.bookRepo, s.rentalRepo, s.purchaseRepo, s.notificationRepo,
			rental.NewFactory(s.clock), s.rentalQueries, s.purchaseQueries,
			trackingTxRunner{active: &inTx}, nil,
		)
		s.NoError(uc.ReturnRental(ctx, actor, snap.ID))
		s.False(inTx)
	})

	s.Run("success: release against a just-deleted book is tolerated", func() {
		snap := builder.NewRentalBuilder().BuildSnapshot()
		actor := commands.Actor{UserID: snap.UserID, Role: user.RoleMember}

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.rentalRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), snap.ID, rental.StatusReturned,
			rental.StatusActive, rental.StatusOverdue).Return(int64(1), nil)
		s.bookRepo.EXPECT().Release(gomock.Any(), gomock.Any(), *snap.BookID).
			Return(infra.WrapRepoErr("book not found", nil, infra.KindNotFound))

		s.NoError(s.uc.ReturnRental(ctx, actor, snap.ID))
	})
}
