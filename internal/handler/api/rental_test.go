//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"bookstand/internal/domain/user"
	"bookstand/internal/handler/api"
	resdto "bookstand/internal/handler/dto/response"
	"bookstand/internal/usecase/commands"
	"bookstand/internal/usecase/queries"
	"bookstand/tests/common/builder"
	"bookstand/tests/common/httptest"
	commandsmock "bookstand/tests/mock/commands"
	queriesmock "bookstand/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RentalHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockRentalQueries
	handler      *api.RentalHandler
	userID       uuid.UUID
	role         user.Role
}

func (s *RentalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRentalQueries(s.mockCtrl)
	s.handler = api.NewRentalHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()
	s.role = user.RoleMember

	// Mock middleware behavior: an authenticated member by default.
	authed := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
	}
	s.router.POST("/rentals", authed, s.handler.CreateRental)
	s.router.GET("/rentals", authed, s.handler.GetUserRentals)
	s.router.GET("/rentals/:id", authed, s.handler.GetRental)
	s.router.POST("/rentals/:id/return", authed, s.handler.ReturnRental)
}

func (s *RentalHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRentalHandlerSuite(t *testing.T) {
	suite.Run(t, new(RentalHandlerTestSuite))
}

func (s *RentalHandlerTestSuite) TestCreateRental() {
	url := "/rentals"
	bookID := uuid.New()
	reqBody := map[string]any{"book_id": bookID, "term": "2weeks"}

	s.Run("success: returns 201 Created with the rental", func() {
		view := builder.NewRentalBuilder().WithUserID(s.userID).BuildView()
		s.mockCommands.EXPECT().RentBook(gomock.Any(), s.userID, bookID, gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.ID, response.ID)
		s.Equal("active", response.Status)
	})

	s.Run("error: 400 Bad Request on unknown term", func() {
		body := map[string]any{"book_id": bookID, "term": "6months"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rental term")
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "book not found",
				commandsError:  commands.ErrBookNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Book not found",
			},
			{
				name:           "book unavailable",
				commandsError:  commands.ErrBookUnavailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Book is not available",
			},
			{
				name:           "no copies left",
				commandsError:  commands.ErrInsufficientCopies,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "No copies available",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RentBook(gomock.Any(), s.userID, bookID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *RentalHandlerTestSuite) TestGetUserRentals() {
	url := "/rentals"

	s.Run("success: returns the caller's rentals", func() {
		views := []*queries.RentalView{
			builder.NewRentalBuilder().WithUserID(s.userID).BuildView(),
			builder.NewRentalBuilder().WithUserID(s.userID).BuildView(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: empty list serializes as an array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return([]*queries.RentalView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})
}

func (s *RentalHandlerTestSuite) TestGetRental() {
	s.Run("success: member reads own rental", func() {
		view := builder.NewRentalBuilder().WithUserID(s.userID).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals/"+view.ID.String(), nil, "")

		var response resdto.RentalResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
	})

	s.Run("error: another member's rental is hidden as 404", func() {
		view := builder.NewRentalBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals/"+view.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Rental not found")
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid rental ID format")
	})

	s.Run("error: 404 when the rental does not exist", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, queries.ErrRentalNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/rentals/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Rental not found")
	})
}

func (s *RentalHandlerTestSuite) TestReturnRental() {
	s.Run("success: returns 204 No Content", func() {
		id := uuid.New()
		s.mockCommands.EXPECT().
			ReturnRental(gomock.Any(), commands.Actor{UserID: s.userID, Role: user.RoleMember}, id).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals/"+id.String()+"/return", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "rental not found",
				commandsError:  commands.ErrRentalNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Rental not found",
			},
			{
				name:           "already returned",
				commandsError:  commands.ErrInvalidStateTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Rental is already returned",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				id := uuid.New()
				s.mockCommands.EXPECT().ReturnRental(gomock.Any(), gomock.Any(), id).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/rentals/"+id.String()+"/return", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
