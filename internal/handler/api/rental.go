package api

import (
	"errors"
	"net/http"

	reqdto "bookstand/internal/handler/dto/request"
	resdto "bookstand/internal/handler/dto/response"
	"bookstand/internal/handler/middleware"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	checkoutCommands commands.CheckoutCommands
	rentalQueries    queries.RentalQueries
}

func NewRentalHandler(checkoutCommands commands.CheckoutCommands, rentalQueries queries.RentalQueries) *RentalHandler {
	return &RentalHandler{
		checkoutCommands: checkoutCommands,
		rentalQueries:    rentalQueries,
	}
}

// @Summary Rent a book
// @Description Rent a book for a fixed term, reserving one copy
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRentalRequest true "Rental request"
// @Success 201 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	term, err := req.ToTerm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental term",
		})
		return
	}

	view, err := h.checkoutCommands.RentBook(c.Request.Context(), userID, req.BookID, term)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrBookUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Book is not available",
			})
		case errors.Is(err, commands.ErrInsufficientCopies):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No copies available",
			})
		case errors.Is(err, commands.ErrInvalidRentalTerm):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid rental term",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRentalView(view))
}

// @Summary List own rentals
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RentalResponse
// @Router /rentals [get]
func (h *RentalHandler) GetUserRentals(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.rentalQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalViews(views))
}

// @Summary Get rental
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental ID format",
		})
		return
	}

	view, err := h.rentalQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	// Members see only their own rentals.
	role, _ := middleware.GetUserRole(c)
	if view.UserID != userID && !role.IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Rental not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary Return a rental
// @Description Mark a rental returned and release the copy
// @Tags rentals
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rentals/{id}/return [post]
func (h *RentalHandler) ReturnRental(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental ID format",
		})
		return
	}

	role, _ := middleware.GetUserRole(c)
	actor := commands.Actor{UserID: userID, Role: role}

	if err := h.checkoutCommands.ReturnRental(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, commands.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
			})
		case errors.Is(err, commands.ErrInvalidStateTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Rental is already returned",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
