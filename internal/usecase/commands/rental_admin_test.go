//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"bookstand/internal/domain/rental"
	"bookstand/internal/pkg/clock"
	"bookstand/internal/usecase/commands"
	"bookstand/tests/common/builder"
	commandsmock "bookstand/tests/mock/commands"
	queriesmock "bookstand/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RentalAdminCommandsTestSuite struct {
	suite.Suite
	ctrl             *gomock.Controller
	rentalRepo       *commandsmock.MockRentalRepository
	bookRepo         *commandsmock.MockBookRepository
	notificationRepo *commandsmock.MockNotificationRepository
	rentalQueries    *queriesmock.MockRentalQueries
	clock            *clock.MockClock
	uc               commands.RentalAdminCommands
}

func (s *RentalAdminCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.rentalRepo = commandsmock.NewMockRentalRepository(s.ctrl)
	s.bookRepo = commandsmock.NewMockBookRepository(s.ctrl)
	s.notificationRepo = commandsmock.NewMockNotificationRepository(s.ctrl)
	s.rentalQueries = queriesmock.NewMockRentalQueries(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))

	s.uc = commands.NewRentalAdminCommands(
		nil,
		s.rentalRepo,
		s.bookRepo,
		s.notificationRepo,
		s.rentalQueries,
		s.clock,
		nil,
	)
}

func (s *RentalAdminCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRentalAdminCommandsSuite(t *testing.T) {
	suite.Run(t, new(RentalAdminCommandsTestSuite))
}

func (s *RentalAdminCommandsTestSuite) TestSendReminder() {
	ctx := context.Background()
	now := s.clock.Now()

	s.Run("success: active rental past its end date", func() {
		rb := builder.NewRentalBuilder().WithEndDate(now.Add(-48 * time.Hour))
		snap := rb.BuildSnapshot()

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.notificationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), snap.UserID,
			gomock.Any(), gomock.Any(), "overdue_reminder").Return(uuid.New(), nil)

		s.NoError(s.uc.SendReminder(ctx, snap.ID, nil))
	})

	s.Run("success: custom message replaces the stock text", func() {
		rb := builder.NewRentalBuilder().WithEndDate(now.Add(-48 * time.Hour))
		snap := rb.BuildSnapshot()
		msg := "Library closes Friday; please return before then."

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.notificationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), snap.UserID,
			gomock.Any(), msg, "overdue_reminder").Return(uuid.New(), nil)

		s.NoError(s.uc.SendReminder(ctx, snap.ID, &msg))
	})

	s.Run("success: persisted overdue override regardless of date", func() {
		snap := builder.NewRentalBuilder().
			WithStatus(rental.StatusOverdue).
			WithEndDate(now.Add(24 * time.Hour)).BuildSnapshot()

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)
		s.notificationRepo.EXPECT().Create(gomock.Any(), gomock.Any(), snap.UserID,
			gomock.Any(), gomock.Any(), "overdue_reminder").Return(uuid.New(), nil)

		s.NoError(s.uc.SendReminder(ctx, snap.ID, nil))
	})

	s.Run("error: active rental within its term", func() {
		snap := builder.NewRentalBuilder().
			WithEndDate(now.Add(24 * time.Hour)).BuildSnapshot()

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)

		s.ErrorIs(s.uc.SendReminder(ctx, snap.ID, nil), commands.ErrRentalNotOverdue)
	})

	s.Run("error: returned rental is never overdue", func() {
		snap := builder.NewRentalBuilder().
			WithStatus(rental.StatusReturned).
			WithEndDate(now.Add(-24 * time.Hour)).BuildSnapshot()

		s.rentalRepo.EXPECT().FindSnapshot(gomock.Any(), gomock.Any(), snap.ID).Return(snap, nil)

		s.ErrorIs(s.uc.SendReminder(ctx, snap.ID, nil), commands.ErrRentalNotOverdue)
	})
}

func (s *RentalAdminCommandsTestSuite) TestSetRentalStatus() {
	ctx := context.Background()

	s.Run("error: unknown status is rejected before any write", func() {
		_, err := s.uc.SetRentalStatus(ctx, uuid.New(), rental.Status("lost"))
		s.ErrorIs(err, commands.ErrDomainValidation)
	})
}
