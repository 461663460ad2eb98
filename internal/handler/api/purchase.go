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

type PurchaseHandler struct {
	checkoutCommands commands.CheckoutCommands
	purchaseQueries  queries.PurchaseQueries
}

func NewPurchaseHandler(checkoutCommands commands.CheckoutCommands, purchaseQueries queries.PurchaseQueries) *PurchaseHandler {
	return &PurchaseHandler{
		checkoutCommands: checkoutCommands,
		purchaseQueries:  purchaseQueries,
	}
}

// @Summary Purchase a book
// @Description Buy one copy at the current purchase price
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePurchaseRequest true "Purchase request"
// @Success 201 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.checkoutCommands.PurchaseBook(c.Request.Context(), userID, req.BookID)
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
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPurchaseView(view))
}

// @Summary List own purchases
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.PurchaseResponse
// @Router /purchases [get]
func (h *PurchaseHandler) GetUserPurchases(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	views, err := h.purchaseQueries.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPurchaseViews(views))
}

// @Summary Get purchase
// @Tags purchases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Purchase ID"
// @Success 200 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
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
			"error": "Invalid purchase ID format",
		})
		return
	}

	view, err := h.purchaseQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrPurchaseNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Purchase not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	role, _ := middleware.GetUserRole(c)
	if view.UserID != userID && !role.IsAdmin() {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Purchase not found",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromPurchaseView(view))
}
