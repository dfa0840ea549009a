//go:build unit

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/handler/api"
	resdto "studyroom-booking/internal/handler/dto/response"
	"studyroom-booking/internal/pkg/errs"
	"studyroom-booking/internal/usecase/commands"
	"studyroom-booking/internal/usecase/queries"
	"studyroom-booking/internal/usecase/shared"
	"studyroom-booking/tests/common/builder"
	"studyroom-booking/tests/common/httptest"
	"studyroom-booking/tests/common/testutil"
	commandsmock "studyroom-booking/tests/mock/commands"
	queriesmock "studyroom-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries, time.UTC)

	s.router.POST("/reservations", s.handler.Create)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.PUT("/reservations/:id/cancel", s.handler.Cancel)
	s.router.DELETE("/reservations/:id", s.handler.Delete)
	s.router.GET("/rooms/:id/reservations", s.handler.ListByRoom)
	s.router.GET("/users/:username/reservations", s.handler.ListByUser)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func createResult(b *builder.ReservationBuilder) *commands.CreateReservationResult {
	return &commands.CreateReservationResult{
		Reservation: b.BuildStored(),
		Room: &shared.RoomSnapshot{
			ID:              b.RoomID,
			Name:            "Sala 101",
			Capacity:        4,
			CreatorUsername: "admin",
			Type:            "group",
		},
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"

	b := builder.NewReservationBuilder()
	reqBody := b.BuildCreateRequestDTO()
	result := createResult(b)

	s.Run("success: returns 201 Created with reservation and room", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BuildCreateInput()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "alice")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.Reservation.ID(), body.ID)
		s.Equal(b.RoomID, body.RoomID)
		s.Equal("alice", body.Username)
		s.Equal("confirmed", body.Status)
		s.True(b.StartTime.Equal(body.StartTime))
		s.Require().NotNil(body.Room)
		s.Equal("Sala 101", body.Room.Name)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Location": "/api/reservations/" + result.Reservation.ID().String(),
		})
	})

	s.Run("success: username is trimmed before reaching the command", func() {
		padded := testutil.DtoMap(s.T(), reqBody, testutil.Field("username", "  alice  "))
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BuildCreateInput()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, padded, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	missing := []testCaseReservation{
		{name: "missing field: roomId", mutate: testutil.Field("roomId", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: username", mutate: testutil.Field("username", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: startTime", mutate: testutil.Field("startTime", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: endTime", mutate: testutil.Field("endTime", nil), expectCode: http.StatusBadRequest},
	}
	malformed := []testCaseReservation{
		{name: "roomId is not a uuid", mutate: testutil.Field("roomId", "room-1"), expectCode: http.StatusBadRequest},
		{name: "startTime is not RFC3339", mutate: testutil.Field("startTime", "tomorrow 10am"), expectCode: http.StatusBadRequest},
		{name: "empty username", mutate: testutil.Field("username", ""), expectCode: http.StatusBadRequest},
		{name: "username over 100 chars", mutate: testutil.Field("username", strings.Repeat("a", 101)), expectCode: http.StatusBadRequest},
	}
	bound := []testCaseReservation{
		{name: "username exactly 100 chars", mutate: testutil.Field("username", strings.Repeat("a", 100)), expectCode: http.StatusCreated},
	}

	s.Run("error: 400 Bad Request on binding errors", func() {
		for _, group := range [][]testCaseReservation{missing, malformed, bound} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
							Return(result, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
			expectedKind   string
		}{
			{"invalid interval", commands.ErrInvalidInterval, http.StatusBadRequest, "Invalid interval", "INVALID_INTERVAL"},
			{"start in the past", commands.ErrReservationInPast, http.StatusBadRequest, "past", "RESERVATION_IN_PAST"},
			{"domain validation", errs.Mark(reservation.ErrEmptyUsername, commands.ErrDomainValidation), http.StatusBadRequest, "Invalid request", "VALIDATION_FAILED"},
			{"room not found", errs.Wrap(commands.ErrRoomNotFound, "lookup"), http.StatusNotFound, "Room not found", "ROOM_NOT_FOUND"},
			{"slot unavailable", commands.ErrSlotUnavailable, http.StatusConflict, "Slot unavailable", "SLOT_UNAVAILABLE"},
			{"concurrency conflict", errs.Mark(errors.New("40001"), commands.ErrConcurrencyConflict), http.StatusConflict, "retry", "CONCURRENCY_CONFLICT"},
			{"storage unavailable", errs.Mark(errors.New("dial tcp"), commands.ErrStorageUnavailable), http.StatusServiceUnavailable, "Storage unavailable", "STORAGE_UNAVAILABLE"},
			{"unknown error", errors.New("boom"), http.StatusInternalServerError, "Internal error", ""},
			{"context canceled", context.Canceled, http.StatusInternalServerError, "Internal error", ""},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				httptest.AssertErrorKind(s.T(), rec, tc.expectedKind)
			})
		}
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := fmt.Sprintf("/reservations/%s/cancel", id)

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "alice")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/reservations/not-a-uuid/cancel", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: maps lifecycle guards", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{"not found", commands.ErrReservationNotFound, http.StatusNotFound},
			{"already cancelled", commands.ErrAlreadyCancelled, http.StatusUnprocessableEntity},
			{"already completed", commands.ErrAlreadyCompleted, http.StatusUnprocessableEntity},
			{"too late", commands.ErrTooLateToCancel, http.StatusUnprocessableEntity},
			{"storage", errs.Mark(errors.New("conn reset"), commands.ErrStorageUnavailable), http.StatusServiceUnavailable},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), id).Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestDelete() {
	id := uuid.New()
	url := "/reservations/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "admin")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown id", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), id).Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "admin")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

// ================================================================================
// TestGet / TestList
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	view := builder.NewReservationBuilder().BuildView()
	url := "/reservations/" + view.ID.String()

	s.Run("success: returns reservation with room", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Require().NotNil(body.Room)
		s.Equal(view.Room.Name, body.Room.Name)
	})

	s.Run("error: 404 Not Found", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(nil, commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})
}

func (s *ReservationHandlerTestSuite) TestListByRoom() {
	roomID := uuid.New()
	url := fmt.Sprintf("/rooms/%s/reservations", roomID)

	s.Run("success: keeps store order", func() {
		first := builder.NewReservationBuilder().WithRoomID(roomID).BuildView()
		second := builder.NewReservationBuilder().WithRoomID(roomID).
			WithSlot(builder.BaseTime.Add(4*time.Hour), builder.BaseTime.Add(5*time.Hour)).BuildView()
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), roomID).
			Return([]*queries.ReservationView{first, second}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal(first.ID, body[0].ID)
		s.Equal(second.ID, body[1].ID)
	})

	s.Run("success: empty list renders as []", func() {
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), roomID).
			Return([]*queries.ReservationView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})

	s.Run("error: 503 when storage is down", func() {
		s.mockQueries.EXPECT().ListByRoom(gomock.Any(), roomID).
			Return(nil, errs.Mark(errors.New("timeout"), commands.ErrStorageUnavailable)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "")
	})
}

func (s *ReservationHandlerTestSuite) TestListByUser() {
	s.Run("success: returns reservations of the username", func() {
		view := builder.NewReservationBuilder().WithUsername("bob").BuildView()
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), "bob").
			Return([]*queries.ReservationView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/bob/reservations", nil, "")

		var body []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("bob", body[0].Username)
	})

	s.Run("error: 400 on blank username", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/users/%20/reservations", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid username")
	})
}
