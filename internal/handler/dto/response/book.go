package response

import (
	"time"

	"bookstand/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookResponse struct {
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

func FromBookView(view *queries.BookView) (*BookResponse, error) {
	var resp BookResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

func FromBookViews(views []*queries.BookView) ([]*BookResponse, error) {
	resps := make([]*BookResponse, len(views))
	for i, v := range views {
		resp, err := FromBookView(v)
		if err != nil {
			return nil, err
		}
		resps[i] = resp
	}
	return resps, nil
}
