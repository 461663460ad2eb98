package queries

import (
	"context"
	"sort"

	"bookstand/internal/pkg/clock"
)

const recentActivityLimit = 10

type DashboardView struct {
	Stats          DashboardStats  `json:"stats"`
	RecentActivity []*ActivityItem `json:"recent_activity"`
}

// ReportQueries is pure read-side aggregation. It never persists the
// overdue derivation or triggers any state transition.
type ReportQueries interface {
	Dashboard(ctx context.Context) (*DashboardView, error)
}

type reportQueriesImpl struct {
	books     BookReadStore
	rentals   RentalReadStore
	purchases PurchaseReadStore
	clock     clock.Clock
}

func NewReportQueries(books BookReadStore, rentals RentalReadStore, purchases PurchaseReadStore, clock clock.Clock) ReportQueries {
	return &reportQueriesImpl{
		books:     books,
		rentals:   rentals,
		purchases: purchases,
		clock:     clock,
	}
}

func (q *reportQueriesImpl) Dashboard(ctx context.Context) (*DashboardView, error) {
	bookCount, err := q.books.Count(ctx)
	if err != nil {
		return nil, err
	}

	rentalStats, err := q.rentals.Stats(ctx, q.clock.Now())
	if err != nil {
		return nil, err
	}
	purchaseStats, err := q.purchases.Stats(ctx)
	if err != nil {
		return nil, err
	}

	// Each source is already capped; the merge only decides the
	// interleaving of the final page.
	recentRentals, err := q.rentals.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	recentPurchases, err := q.purchases.FindRecent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	activity := make([]*ActivityItem, 0, len(recentRentals)+len(recentPurchases))
	for _, r := range recentRentals {
		activity = append(activity, &ActivityItem{
			Kind:        "rental",
			BookTitle:   r.BookTitle,
			AmountCents: r.PricePaidCents,
			OccurredAt:  r.CreatedAt,
		})
	}
	for _, p := range recentPurchases {
		activity = append(activity, &ActivityItem{
			Kind:        "purchase",
			BookTitle:   p.BookTitle,
			AmountCents: p.PricePaidCents,
			OccurredAt:  p.CreatedAt,
		})
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].OccurredAt.After(activity[j].OccurredAt)
	})
	if len(activity) > recentActivityLimit {
		activity = activity[:recentActivityLimit]
	}

	return &DashboardView{
		Stats: DashboardStats{
			TotalBooks:        bookCount,
			TotalRentals:      rentalStats.Total,
			TotalPurchases:    purchaseStats.Total,
			TotalRevenueCents: rentalStats.RevenueCents + purchaseStats.RevenueCents,
			ActiveRentals:     rentalStats.Active,
			OverdueRentals:    rentalStats.Overdue,
		},
		RecentActivity: activity,
	}, nil
}
