//go:build e2e

package rental_test

import (
	"context"
	"net/http"
	"testing"

	"bookstand/internal/domain/user"
	"bookstand/internal/handler/dto/response"
	"bookstand/tests/common/authtest"
	"bookstand/tests/common/dbtest"
	"bookstand/tests/common/httptest"
	"bookstand/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const rentalsURL = "/api/rentals"

type RentalSuite struct {
	e2e.SharedSuite
}

func TestRentalSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RentalSuite))
}

func (s *RentalSuite) availableCopies(bookID uuid.UUID) int32 {
	var n int32
	err := s.DB.QueryRow(context.Background(),
		"SELECT available_copies FROM books WHERE id = $1", bookID).Scan(&n)
	require.NoError(s.T(), err)
	return n
}

func (s *RentalSuite) TestRentalLifecycle() {
	s.Run("renting a book reserves one copy", func() {
		t := s.T()

		bookID := dbtest.CreateTestBook(t, s.DB, "Rentable Book", 2)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "renter@example.com", string(user.RoleMember))

		reqBody := map[string]any{"book_id": bookID, "term": "2weeks"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.RentalResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "active", created.Status)
		require.Equal(t, int64(500), created.PricePaidCents)
		require.Equal(t, created.StartDate.AddDate(0, 0, 14), created.EndDate)

		require.Equal(t, int32(1), s.availableCopies(bookID))
	})

	s.Run("returning a rental releases the copy", func() {
		t := s.T()

		bookID := dbtest.CreateTestBook(t, s.DB, "Returnable Book", 1)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "returner@example.com", string(user.RoleMember))

		reqBody := map[string]any{"book_id": bookID, "term": "1month"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.RentalResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, int32(0), s.availableCopies(bookID))

		returnURL := rentalsURL + "/" + created.ID.String() + "/return"
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, returnURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, int32(1), s.availableCopies(bookID))

		// A second return must not release another copy.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, returnURL, nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, int32(1), s.availableCopies(bookID))
	})

	s.Run("exhausted stock rejects further rentals", func() {
		t := s.T()

		bookID := dbtest.CreateTestBook(t, s.DB, "Scarce Book", 1)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "first@example.com", string(user.RoleMember))
		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "second@example.com", string(user.RoleMember))

		reqBody := map[string]any{"book_id": bookID, "term": "2weeks"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, reqBody, otherToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, int32(0), s.availableCopies(bookID))
	})

	s.Run("members cannot see or return each other's rentals", func() {
		t := s.T()

		bookID := dbtest.CreateTestBook(t, s.DB, "Private Book", 3)
		ownerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "owner@example.com", string(user.RoleMember))
		strangerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "stranger@example.com", string(user.RoleMember))

		reqBody := map[string]any{"book_id": bookID, "term": "3months"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, reqBody, ownerToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.RentalResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, rentalsURL+"/"+created.ID.String(), nil, strangerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL+"/"+created.ID.String()+"/return", nil, strangerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
