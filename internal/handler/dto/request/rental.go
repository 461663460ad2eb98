package request

import (
	"bookstand/internal/domain/rental"

	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
	Term   string    `json:"term" binding:"required"`
}

func (r CreateRentalRequest) ToTerm() (rental.Term, error) {
	return rental.NewTerm(r.Term)
}

type CreatePurchaseRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

// SendReminderRequest is optional; without a body the reminder uses
// the stock text.
type SendReminderRequest struct {
	Message *string `json:"message,omitempty"`
}

type UpdateRentalStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateRentalStatusRequest) ToStatus() (rental.Status, error) {
	return rental.NewStatus(r.Status)
}
