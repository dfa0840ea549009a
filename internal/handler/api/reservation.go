package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	reqdto "studyroom-booking/internal/handler/dto/request"
	resdto "studyroom-booking/internal/handler/dto/response"
	"studyroom-booking/internal/handler/httperr"
	"studyroom-booking/internal/handler/middleware"
	"studyroom-booking/internal/usecase/commands"
	"studyroom-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
	loc  *time.Location
}

// NewReservationHandler renders response instants in loc.
func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries, loc *time.Location) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, loc: loc}
}

// @Summary Create reservation
// @Description Book a room for a half-open interval [startTime, endTime)
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Create reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Header("Location", "/api/reservations/"+result.Reservation.ID().String())
	c.JSON(http.StatusCreated, resdto.FromCreateResult(result, h.loc))
}

// @Summary Cancel reservation
// @Description Cancel a confirmed reservation that has not ended yet
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations/{id}/cancel [put]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Cancel(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete reservation
// @Description Administrative hard delete, regardless of status
// @Tags reservations
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	slog.Info("reservation deleted via api", "reservation_id", id, "requester", middleware.GetRequester(c))
	c.Status(http.StatusNoContent)
}

// @Summary Get reservation
// @Description Get a reservation with its room
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view, h.loc))
}

// @Summary List room reservations
// @Description Reservations of a room ordered by start time ascending
// @Tags reservations
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /rooms/{id}/reservations [get]
func (h *ReservationHandler) ListByRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	views, err := h.q.ListByRoom(c.Request.Context(), roomID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views, h.loc))
}

// @Summary List user reservations
// @Description Reservations made by a username ordered by start time ascending
// @Tags reservations
// @Produce json
// @Param username path string true "Username"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /users/{username}/reservations [get]
func (h *ReservationHandler) ListByUser(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, commands.ErrDomainValidation, "Invalid username", nil)
		return
	}
	views, err := h.q.ListByUser(c.Request.Context(), username)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views, h.loc))
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
