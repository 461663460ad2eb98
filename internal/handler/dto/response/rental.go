package response

import (
	"time"

	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
)

type RentalResponse struct {
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

func FromRentalView(view *queries.RentalView) *RentalResponse {
	return &RentalResponse{
		ID:             view.ID,
		UserID:         view.UserID,
		BookID:         view.BookID,
		BookTitle:      view.BookTitle,
		BookAuthor:     view.BookAuthor,
		BookCoverURL:   view.BookCoverURL,
		Term:           view.Term,
		StartDate:      view.StartDate,
		EndDate:        view.EndDate,
		PricePaidCents: view.PricePaidCents,
		Status:         view.Status,
		CreatedAt:      view.CreatedAt,
	}
}

func FromRentalViews(views []*queries.RentalView) []*RentalResponse {
	resps := make([]*RentalResponse, len(views))
	for i, v := range views {
		resps[i] = FromRentalView(v)
	}
	return resps
}
