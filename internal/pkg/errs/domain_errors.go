package errs

import "errors"

// Sentinel errors shared by the usecase layers and mapped to HTTP statuses by handlers
var (
	// Room errors
	ErrRoomNotFound = errors.New("room not found")

	// Reservation errors
	ErrReservationNotFound = errors.New("reservation not found")
	ErrSlotUnavailable     = errors.New("room is already reserved for the requested slot")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrConcurrencyConflict = errors.New("concurrent booking conflict, retry the request")
	ErrStorageUnavailable  = errors.New("storage unavailable")
)
