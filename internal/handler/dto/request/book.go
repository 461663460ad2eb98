package request

import (
	"bookstand/internal/usecase/commands"
)

type CreateBookRequest struct {
	Title                   string `json:"title" binding:"required"`
	Author                  string `json:"author" binding:"required"`
	Category                string `json:"category"`
	YearPublished           int    `json:"year_published"`
	Description             string `json:"description"`
	CoverImageURL           string `json:"cover_image_url"`
	PurchasePriceCents      int64  `json:"purchase_price_cents" binding:"min=0"`
	RentalPrice2WeeksCents  int64  `json:"rental_price_2weeks_cents" binding:"min=0"`
	RentalPrice1MonthCents  int64  `json:"rental_price_1month_cents" binding:"min=0"`
	RentalPrice3MonthsCents int64  `json:"rental_price_3months_cents" binding:"min=0"`
	TotalCopies             int32  `json:"total_copies" binding:"required,min=1"`
}

func (r CreateBookRequest) ToParams() commands.CreateBookParams {
	return commands.CreateBookParams{
		Title:                   r.Title,
		Author:                  r.Author,
		Category:                r.Category,
		YearPublished:           r.YearPublished,
		Description:             r.Description,
		CoverImageURL:           r.CoverImageURL,
		PurchasePriceCents:      r.PurchasePriceCents,
		RentalPrice2WeeksCents:  r.RentalPrice2WeeksCents,
		RentalPrice1MonthCents:  r.RentalPrice1MonthCents,
		RentalPrice3MonthsCents: r.RentalPrice3MonthsCents,
		TotalCopies:             r.TotalCopies,
	}
}

// UpdateBookRequest is a sparse patch; omitted fields keep their value.
type UpdateBookRequest struct {
	Title                   *string `json:"title,omitempty"`
	Author                  *string `json:"author,omitempty"`
	Category                *string `json:"category,omitempty"`
	YearPublished           *int32  `json:"year_published,omitempty"`
	Description             *string `json:"description,omitempty"`
	CoverImageURL           *string `json:"cover_image_url,omitempty"`
	PurchasePriceCents      *int64  `json:"purchase_price_cents,omitempty"`
	RentalPrice2WeeksCents  *int64  `json:"rental_price_2weeks_cents,omitempty"`
	RentalPrice1MonthCents  *int64  `json:"rental_price_1month_cents,omitempty"`
	RentalPrice3MonthsCents *int64  `json:"rental_price_3months_cents,omitempty"`
	TotalCopies             *int32  `json:"total_copies,omitempty"`
	IsAvailable             *bool   `json:"is_available,omitempty"`
}

func (r UpdateBookRequest) ToParams() commands.UpdateBookParams {
	return commands.UpdateBookParams{
		Title:                   r.Title,
		Author:                  r.Author,
		Category:                r.Category,
		YearPublished:           r.YearPublished,
		Description:             r.Description,
		CoverImageURL:           r.CoverImageURL,
		PurchasePriceCents:      r.PurchasePriceCents,
		RentalPrice2WeeksCents:  r.RentalPrice2WeeksCents,
		RentalPrice1MonthCents:  r.RentalPrice1MonthCents,
		RentalPrice3MonthsCents: r.RentalPrice3MonthsCents,
		TotalCopies:             r.TotalCopies,
		IsAvailable:             r.IsAvailable,
	}
}
