//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"bookstand/internal/domain/rental"
	"bookstand/internal/infra"
	"bookstand/internal/pkg/clock"
	"bookstand/internal/usecase/queries"
	"bookstand/tests/common/builder"
	queriesmock "bookstand/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RentalQueriesTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	readStore *queriesmock.MockRentalReadStore
	clock     *clock.MockClock
	q         queries.RentalQueries
}

func (s *RentalQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.readStore = queriesmock.NewMockRentalReadStore(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	s.q = queries.NewRentalQueries(s.readStore, s.clock)
}

func (s *RentalQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRentalQueriesSuite(t *testing.T) {
	suite.Run(t, new(RentalQueriesTestSuite))
}

func (s *RentalQueriesTestSuite) TestListByUser() {
	ctx := context.Background()
	userID := uuid.New()
	now := s.clock.Now()

	s.Run("derives overdue for active rentals past their end date", func() {
		pastDue := builder.NewRentalBuilder().WithUserID(userID).
			WithEndDate(now.Add(-24 * time.Hour)).BuildView()
		current := builder.NewRentalBuilder().WithUserID(userID).
			WithEndDate(now.Add(24 * time.Hour)).BuildView()
		returned := builder.NewRentalBuilder().WithUserID(userID).
			WithStatus(rental.StatusReturned).
			WithEndDate(now.Add(-24 * time.Hour)).BuildView()

		s.readStore.EXPECT().FindByUser(gomock.Any(), userID).
			Return([]*queries.RentalView{pastDue, current, returned}, nil)

		views, err := s.q.ListByUser(ctx, userID)
		s.NoError(err)
		s.Len(views, 3)
		s.Equal("overdue", views[0].Status)
		s.Equal("active", views[1].Status)
		s.Equal("returned", views[2].Status)
	})
}

func (s *RentalQueriesTestSuite) TestListAll() {
	ctx := context.Background()
	now := s.clock.Now()

	s.Run("status filter matches the effective status", func() {
		derivedOverdue := builder.NewRentalBuilder().
			WithEndDate(now.Add(-time.Hour)).BuildView()
		persistedOverdue := builder.NewRentalBuilder().
			WithStatus(rental.StatusOverdue).
			WithEndDate(now.Add(time.Hour)).BuildView()
		active := builder.NewRentalBuilder().
			WithEndDate(now.Add(time.Hour)).BuildView()

		s.readStore.EXPECT().FindAll(gomock.Any()).
			Return([]*queries.RentalView{derivedOverdue, persistedOverdue, active}, nil)

		views, err := s.q.ListAll(ctx, "overdue")
		s.NoError(err)
		s.Len(views, 2)
	})

	s.Run("empty filter returns everything", func() {
		s.readStore.EXPECT().FindAll(gomock.Any()).
			Return([]*queries.RentalView{builder.NewRentalBuilder().BuildView()}, nil)

		views, err := s.q.ListAll(ctx, "")
		s.NoError(err)
		s.Len(views, 1)
	})
}

func (s *RentalQueriesTestSuite) TestGetByID() {
	ctx := context.Background()
	now := s.clock.Now()

	s.Run("derives overdue on a single read", func() {
		view := builder.NewRentalBuilder().WithEndDate(now.Add(-time.Minute)).BuildView()
		s.readStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := s.q.GetByID(ctx, view.ID)
		s.NoError(err)
		s.Equal("overdue", actual.Status)
	})

	s.Run("maps missing rental to the sentinel", func() {
		id := uuid.New()
		s.readStore.EXPECT().FindByID(gomock.Any(), id).
			Return(nil, infra.WrapRepoErr("rental not found", nil, infra.KindNotFound))

		_, err := s.q.GetByID(ctx, id)
		s.ErrorIs(err, queries.ErrRentalNotFound)
	})
}
