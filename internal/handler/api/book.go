package api

import (
	"errors"
	"net/http"

	resdto "bookstand/internal/handler/dto/response"
	"bookstand/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookHandler struct {
	bookQueries queries.BookQueries
}

func NewBookHandler(bookQueries queries.BookQueries) *BookHandler {
	return &BookHandler{
		bookQueries: bookQueries,
	}
}

// @Summary List books
// @Description Browse the catalog with optional search, filters and sort
// @Tags books
// @Produce json
// @Param search query string false "Match title or author"
// @Param category query string false "Filter by category"
// @Param author query string false "Filter by author"
// @Param sort_by query string false "title | author | year | price"
// @Success 200 {array} resdto.BookResponse
// @Router /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	filter := queries.BookListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Author:   c.Query("author"),
		SortBy:   c.Query("sort_by"),
	}

	views, err := h.bookQueries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response, err := resdto.FromBookViews(views)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Get book
// @Tags books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} resdto.BookResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid book ID format",
		})
		return
	}

	view, err := h.bookQueries.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookNotFound):
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

	response, err := resdto.FromBookView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, response)
}
