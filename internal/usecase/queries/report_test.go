//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"bookstand/internal/pkg/clock"
	"bookstand/internal/usecase/queries"
	"bookstand/tests/common/builder"
	queriesmock "bookstand/tests/mock/queries"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReportQueriesTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	books     *queriesmock.MockBookReadStore
	rentals   *queriesmock.MockRentalReadStore
	purchases *queriesmock.MockPurchaseReadStore
	clock     *clock.MockClock
	q         queries.ReportQueries
}

func (s *ReportQueriesTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.books = queriesmock.NewMockBookReadStore(s.ctrl)
	s.rentals = queriesmock.NewMockRentalReadStore(s.ctrl)
	s.purchases = queriesmock.NewMockPurchaseReadStore(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC))
	s.q = queries.NewReportQueries(s.books, s.rentals, s.purchases, s.clock)
}

func (s *ReportQueriesTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReportQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReportQueriesTestSuite))
}

func (s *ReportQueriesTestSuite) TestDashboard() {
	ctx := context.Background()
	now := s.clock.Now()

	s.Run("combines SQL aggregates and sums revenue across sources", func() {
		recentRental := builder.NewRentalBuilder().BuildView()
		purchaseView := &queries.PurchaseView{
			PricePaidCents: 4500,
			CreatedAt:      now.Add(-time.Minute),
		}

		s.books.EXPECT().Count(gomock.Any()).Return(int64(12), nil)
		s.rentals.EXPECT().Stats(gomock.Any(), now).
			Return(&queries.RentalStats{Total: 4, Active: 1, Overdue: 2, RevenueCents: 2000}, nil)
		s.purchases.EXPECT().Stats(gomock.Any()).
			Return(&queries.PurchaseStats{Total: 1, RevenueCents: 4500}, nil)
		s.rentals.EXPECT().FindRecent(gomock.Any(), 10).
			Return([]*queries.RentalView{recentRental}, nil)
		s.purchases.EXPECT().FindRecent(gomock.Any(), 10).
			Return([]*queries.PurchaseView{purchaseView}, nil)

		view, err := s.q.Dashboard(ctx)
		s.NoError(err)

		s.Equal(int64(12), view.Stats.TotalBooks)
		s.Equal(int64(4), view.Stats.TotalRentals)
		s.Equal(int64(1), view.Stats.TotalPurchases)
		s.Equal(int64(1), view.Stats.ActiveRentals)
		s.Equal(int64(2), view.Stats.OverdueRentals)
		s.Equal(int64(2000+4500), view.Stats.TotalRevenueCents)
		s.Len(view.RecentActivity, 2)
	})

	s.Run("activity is merged newest first and truncated", func() {
		rentals := make([]*queries.RentalView, 0, 8)
		for i := 0; i < 8; i++ {
			v := builder.NewRentalBuilder().BuildView()
			v.CreatedAt = now.Add(-time.Duration(i) * time.Hour)
			rentals = append(rentals, v)
		}
		purchases := make([]*queries.PurchaseView, 0, 5)
		for i := 0; i < 5; i++ {
			purchases = append(purchases, &queries.PurchaseView{
				PricePaidCents: 100,
				CreatedAt:      now.Add(-time.Duration(i)*time.Hour - 30*time.Minute),
			})
		}

		s.books.EXPECT().Count(gomock.Any()).Return(int64(0), nil)
		s.rentals.EXPECT().Stats(gomock.Any(), now).
			Return(&queries.RentalStats{Total: 8, Active: 8, RevenueCents: 4000}, nil)
		s.purchases.EXPECT().Stats(gomock.Any()).
			Return(&queries.PurchaseStats{Total: 5, RevenueCents: 500}, nil)
		s.rentals.EXPECT().FindRecent(gomock.Any(), 10).Return(rentals, nil)
		s.purchases.EXPECT().FindRecent(gomock.Any(), 10).Return(purchases, nil)

		view, err := s.q.Dashboard(ctx)
		s.NoError(err)

		s.Len(view.RecentActivity, 10)
		for i := 1; i < len(view.RecentActivity); i++ {
			s.False(view.RecentActivity[i].OccurredAt.After(view.RecentActivity[i-1].OccurredAt))
		}
		s.Equal("rental", view.RecentActivity[0].Kind)
		s.Equal("purchase", view.RecentActivity[1].Kind)
	})
}
