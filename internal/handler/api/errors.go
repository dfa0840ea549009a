package api

import (
	"net/http"

	"studyroom-booking/internal/handler/httperr"
	"studyroom-booking/internal/pkg/errs"
	"studyroom-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target error
	status int
	kind   string
	msg    string
}

// Ordered: the first matching sentinel wins.
var usecaseErrorMappings = []errorMapping{
	{commands.ErrInvalidInterval, http.StatusBadRequest, "INVALID_INTERVAL", "Invalid interval"},
	{commands.ErrReservationInPast, http.StatusBadRequest, "RESERVATION_IN_PAST", "Reservation starts in the past"},
	{commands.ErrDomainValidation, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid request"},
	{commands.ErrRoomNotFound, http.StatusNotFound, "ROOM_NOT_FOUND", "Room not found"},
	{commands.ErrReservationNotFound, http.StatusNotFound, "NOT_FOUND", "Reservation not found"},
	{commands.ErrSlotUnavailable, http.StatusConflict, "SLOT_UNAVAILABLE", "Slot unavailable"},
	{commands.ErrConcurrencyConflict, http.StatusConflict, "CONCURRENCY_CONFLICT", "Concurrent booking in progress, retry"},
	{commands.ErrAlreadyCancelled, http.StatusUnprocessableEntity, "ALREADY_CANCELLED", "Reservation already cancelled"},
	{commands.ErrAlreadyCompleted, http.StatusUnprocessableEntity, "ALREADY_COMPLETED", "Reservation already completed"},
	{commands.ErrTooLateToCancel, http.StatusUnprocessableEntity, "TOO_LATE_TO_CANCEL", "Reservation has already ended"},
	{commands.ErrStorageUnavailable, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Storage unavailable"},
}

func abortWithUsecaseError(c *gin.Context, err error) {
	for _, m := range usecaseErrorMappings {
		if errs.Is(err, m.target) {
			httperr.AbortWithKind(c, m.status, m.kind, err, m.msg, nil)
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}
