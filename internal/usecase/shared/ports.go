package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoomLocker guards a room across processes. The returned unlock is safe to call once.
type RoomLocker interface {
	Lock(ctx context.Context, roomID uuid.UUID) (unlock func(), err error)
}

type NoopRoomLocker struct{}

func (NoopRoomLocker) Lock(context.Context, uuid.UUID) (func(), error) {
	return func() {}, nil
}

type EventPublisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

type BookingRecorder interface {
	RecordReservation(operation, outcome string)
	ObserveRoomLock(status string, elapsed time.Duration)
	RecordCompleted(n int64)
}

type NoopRecorder struct{}

func (NoopRecorder) RecordReservation(string, string)      {}
func (NoopRecorder) ObserveRoomLock(string, time.Duration) {}
func (NoopRecorder) RecordCompleted(int64)                 {}
