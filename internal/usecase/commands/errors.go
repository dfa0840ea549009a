package commands

import (
	"context"
	"errors"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/pkg/errs"
	"studyroom-booking/internal/usecase/shared"
)

// Handlers depend on this package alone for every error a command can return.
var (
	ErrRoomNotFound        = errs.ErrRoomNotFound
	ErrReservationNotFound = errs.ErrReservationNotFound
	ErrSlotUnavailable     = errs.ErrSlotUnavailable
	ErrConcurrencyConflict = errs.ErrConcurrencyConflict
	ErrStorageUnavailable  = errs.ErrStorageUnavailable
	ErrDomainValidation    = errs.ErrDomainValidation

	ErrInvalidInterval   = reservation.ErrInvalidInterval
	ErrReservationInPast = reservation.ErrReservationInPast
	ErrAlreadyCancelled  = reservation.ErrAlreadyCancelled
	ErrAlreadyCompleted  = reservation.ErrAlreadyCompleted
	ErrTooLateToCancel   = reservation.ErrTooLateToCancel
)

var businessErrors = []error{
	ErrRoomNotFound,
	ErrReservationNotFound,
	ErrSlotUnavailable,
	ErrConcurrencyConflict,
	ErrDomainValidation,
	ErrInvalidInterval,
	ErrReservationInPast,
	ErrAlreadyCancelled,
	ErrAlreadyCompleted,
	ErrTooLateToCancel,
	reservation.ErrInvalidStatus,
}

// translateStoreErr keeps business errors intact and folds everything else into
// ErrConcurrencyConflict or ErrStorageUnavailable.
func translateStoreErr(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range businessErrors {
		if errs.Is(err, known) {
			return err
		}
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errs.Is(err, shared.ErrTxConflict),
		errs.Is(err, shared.ErrLockNotAcquired),
		infra.IsKind(err, infra.KindSerializationFailure):
		return errs.Mark(err, ErrConcurrencyConflict)
	case infra.IsKind(err, infra.KindExclusionViolated):
		return errs.Mark(err, ErrSlotUnavailable)
	default:
		return errs.Mark(err, ErrStorageUnavailable)
	}
}

const (
	outcomeSuccess    = "success"
	outcomeConflict   = "conflict"
	outcomeRejected   = "rejected"
	outcomeNotFound   = "not_found"
	outcomeLockFailed = "lock_failed"
	outcomeError      = "error"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errs.Is(err, ErrSlotUnavailable):
		return outcomeConflict
	case errs.Is(err, ErrConcurrencyConflict):
		return outcomeLockFailed
	case errs.Is(err, ErrRoomNotFound), errs.Is(err, ErrReservationNotFound):
		return outcomeNotFound
	case errs.Is(err, ErrStorageUnavailable):
		return outcomeError
	default:
		return outcomeRejected
	}
}
