package api

import (
	"errors"
	"net/http"

	reqdto "bookstand/internal/handler/dto/request"
	resdto "bookstand/internal/handler/dto/response"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	catalogCommands     commands.CatalogCommands
	rentalAdminCommands commands.RentalAdminCommands
	rentalQueries       queries.RentalQueries
	reportQueries       queries.ReportQueries
}

func NewAdminHandler(
	catalogCommands commands.CatalogCommands,
	rentalAdminCommands commands.RentalAdminCommands,
	rentalQueries queries.RentalQueries,
	reportQueries queries.ReportQueries,
) *AdminHandler {
	return &AdminHandler{
		catalogCommands:     catalogCommands,
		rentalAdminCommands: rentalAdminCommands,
		rentalQueries:       rentalQueries,
		reportQueries:       reportQueries,
	}
}

// @Summary Create book
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookRequest true "Book"
// @Success 201 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Router /admin/books [post]
func (h *AdminHandler) CreateBook(c *gin.Context) {
	var req reqdto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.catalogCommands.CreateBook(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid book data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response, err := resdto.FromBookView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusCreated, response)
}

// @Summary Update book
// @Description Sparse update; changing total copies shifts availability by the same delta
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Param request body reqdto.UpdateBookRequest true "Patch"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/books/{id} [patch]
func (h *AdminHandler) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	var req reqdto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.catalogCommands.UpdateBook(c.Request.Context(), id, req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid book data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response, err := resdto.FromBookView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Delete book
// @Description Rental and purchase history keeps a detached reference
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Book ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/books/{id} [delete]
func (h *AdminHandler) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	if err := h.catalogCommands.DeleteBook(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
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

// @Summary List all rentals
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by effective status: active | returned | overdue"
// @Success 200 {array} resdto.RentalResponse
// @Router /admin/rentals [get]
func (h *AdminHandler) ListRentals(c *gin.Context) {
	views, err := h.rentalQueries.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalViews(views))
}

// @Summary Override rental status
// @Description Force a rental into a status; reactivation takes a copy back out of the pool
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.UpdateRentalStatusRequest true "Target status"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rentals/{id}/status [put]
func (h *AdminHandler) SetRentalStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental ID format",
		})
		return
	}

	var req reqdto.UpdateRentalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	status, err := req.ToStatus()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental status",
		})
		return
	}

	view, err := h.rentalAdminCommands.SetRentalStatus(c.Request.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
			})
		case errors.Is(err, commands.ErrInsufficientCopies):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No copies available to reactivate rental",
			})
		case errors.Is(err, commands.ErrInvalidStateTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Rental status changed concurrently",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary Send overdue reminder
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.SendReminderRequest false "Custom reminder message"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/rentals/{id}/remind [post]
func (h *AdminHandler) SendReminder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental ID format",
		})
		return
	}

	var req reqdto.SendReminderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	if err := h.rentalAdminCommands.SendReminder(c.Request.Context(), id, req.Message); err != nil {
		switch {
		case errors.Is(err, commands.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
			})
		case errors.Is(err, commands.ErrRentalNotOverdue):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Rental is not overdue",
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

// @Summary Dashboard
// @Description Aggregate stats and recent activity for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.DashboardView
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	view, err := h.reportQueries.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
