package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookView struct {
	ID                      uuid.UUID `json:"id"`
	Title                   string    `json:"title"`
	Author                  string    `json:"author"`
	Category                string    `json:"category"`
	YearPublished           int32     `json:"year_published"`
	Description             string    `json:"description"`
	CoverImageURL           string    `json:"cover_image_url"`
	PurchasePriceCents      int64     `json:"purchase_price_cents"`
	RentalPrice2WeeksCents  int64     `json:"rental_price_2weeks_cents"`
	RentalPrice1MonthCents  int64     `json:"rental_price_1month_cents"`
	RentalPrice3MonthsCents int64     `json:"rental_price_3months_cents"`
	TotalCopies             int32     `json:"total_copies"`
	AvailableCopies         int32     `json:"available_copies"`
	IsAvailable             bool      `json:"is_available"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// BookListFilter narrows and orders the catalog listing. Search matches
// title or author, case-insensitively.
type BookListFilter struct {
	Search   string
	Category string
	Author   string
	SortBy   string // title | author | year | price
}

// RentalView carries the effective status: an active rental past its end
// date reads as overdue without any write. Book fields are optional
// because rentals keep only a weak reference to the book.
type RentalView struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	BookID         *uuid.UUID `json:"book_id,omitempty"`
	BookTitle      *string    `json:"book_title,omitempty"`
	BookAuthor     *string    `json:"book_author,omitempty"`
	BookCoverURL   *string    `json:"book_cover_url,omitempty"`
	Term           string     `json:"term"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	PricePaidCents int64      `json:"price_paid_cents"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}

type PurchaseView struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	BookID         *uuid.UUID `json:"book_id,omitempty"`
	BookTitle      *string    `json:"book_title,omitempty"`
	BookAuthor     *string    `json:"book_author,omitempty"`
	BookCoverURL   *string    `json:"book_cover_url,omitempty"`
	PricePaidCents int64      `json:"price_paid_cents"`
	CreatedAt      time.Time  `json:"created_at"`
}

type NotificationView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type DashboardStats struct {
	TotalBooks        int64 `json:"total_books"`
	TotalRentals      int64 `json:"total_rentals"`
	TotalPurchases    int64 `json:"total_purchases"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
	ActiveRentals     int64 `json:"active_rentals"`
	OverdueRentals    int64 `json:"overdue_rentals"`
}

// ActivityItem is one row of the admin recent-activity feed: rentals and
// purchases merged, newest first.
type ActivityItem struct {
	Kind        string    `json:"kind"` // rental | purchase
	BookTitle   *string   `json:"book_title,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
}
