package shared

import (
	"context"
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrTxConflict marks a transaction that kept losing to concurrent writers until retries ran out.
	ErrTxConflict = errs.New("transaction conflict persisted after retries")
	// ErrLockNotAcquired marks a room lock that could not be taken in time.
	ErrLockNotAcquired = errs.New("room lock not acquired")
	// ErrLockUnavailable marks a lock backend that could not be reached at all.
	ErrLockUnavailable = errs.New("room lock backend unavailable")
)

type UnitOfWork interface {
	// WithinRoom: write transaction serialized against every other WithinRoom call for the same room
	WithinRoom(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context, tx Tx) error) error
	// Within: write transaction for single-row mutations
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Rooms() RoomReader
	Reservations() ReservationRepository
}

type RoomReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
}

type ReservationRepository interface {
	Insert(ctx context.Context, res *reservation.Reservation) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListActiveByRoom returns the room's reservations that still block new bookings.
	ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error)
	// CompleteElapsed marks confirmed reservations ending at or before now as completed.
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}
