package response

import (
	"time"

	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	BookID         *uuid.UUID `json:"book_id,omitempty"`
	BookTitle      *string    `json:"book_title,omitempty"`
	BookAuthor     *string    `json:"book_author,omitempty"`
	BookCoverURL   *string    `json:"book_cover_url,omitempty"`
	PricePaidCents int64      `json:"price_paid_cents"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromPurchaseView(view *queries.PurchaseView) *PurchaseResponse {
	return &PurchaseResponse{
		ID:             view.ID,
		UserID:         view.UserID,
		BookID:         view.BookID,
		BookTitle:      view.BookTitle,
		BookAuthor:     view.BookAuthor,
		BookCoverURL:   view.BookCoverURL,
		PricePaidCents: view.PricePaidCents,
		CreatedAt:      view.CreatedAt,
	}
}

func FromPurchaseViews(views []*queries.PurchaseView) []*PurchaseResponse {
	resps := make([]*PurchaseResponse, len(views))
	for i, v := range views {
		resps[i] = FromPurchaseView(v)
	}
	return resps
}
