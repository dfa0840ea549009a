package commands

import (
	"context"
	"log/slog"
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/pkg/clock"
	"studyroom-booking/internal/pkg/errs"
	"studyroom-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	opCreate = "create"
	opCancel = "cancel"
	opDelete = "delete"
)

type CreateReservationInput struct {
	RoomID    uuid.UUID
	Username  string
	StartTime time.Time
	EndTime   time.Time
}

type CreateReservationResult struct {
	Reservation *reservation.Reservation
	Room        *shared.RoomSnapshot
}

type ReservationCommands interface {
	Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	// Delete removes the reservation regardless of its status.
	Delete(ctx context.Context, id uuid.UUID) error
	// CompleteElapsed marks every confirmed reservation whose end has passed as completed.
	CompleteElapsed(ctx context.Context) (int64, error)
}

type reservationCommandsImpl struct {
	uow       shared.UnitOfWork
	locker    shared.RoomLocker
	publisher shared.EventPublisher
	recorder  shared.BookingRecorder
	checker   *ConflictChecker
	clock     clock.Clock
	policy    reservation.Policy
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	locker shared.RoomLocker,
	publisher shared.EventPublisher,
	recorder shared.BookingRecorder,
	clock clock.Clock,
	policy reservation.Policy,
) ReservationCommands {
	if locker == nil {
		locker = shared.NoopRoomLocker{}
	}
	if recorder == nil {
		recorder = shared.NoopRecorder{}
	}
	return &reservationCommandsImpl{
		uow:       uow,
		locker:    locker,
		publisher: publisher,
		recorder:  recorder,
		checker:   NewConflictChecker(),
		clock:     clock,
		policy:    policy,
	}
}

func (u *reservationCommandsImpl) Create(ctx context.Context, in CreateReservationInput) (*CreateReservationResult, error) {
	res, room, err := u.create(ctx, in)
	u.recorder.RecordReservation(opCreate, outcomeOf(err))
	if err != nil {
		return nil, err
	}

	u.publish(ctx, shared.EventReservationCreated, res)
	return &CreateReservationResult{Reservation: res, Room: room}, nil
}

func (u *reservationCommandsImpl) create(
	ctx context.Context,
	in CreateReservationInput,
) (*reservation.Reservation, *shared.RoomSnapshot, error) {
	now := u.clock.Now()

	res, err := reservation.NewReservation(u.policy, in.RoomID, in.Username, in.StartTime, in.EndTime, now)
	if err != nil {
		if errs.Is(err, ErrInvalidInterval) || errs.Is(err, ErrReservationInPast) {
			return nil, nil, err
		}
		return nil, nil, errs.Mark(err, ErrDomainValidation)
	}

	unlock, err := u.lockRoom(ctx, in.RoomID)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	var room *shared.RoomSnapshot
	err = u.uow.WithinRoom(ctx, in.RoomID, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Rooms().FindByID(ctx, in.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		conflict, err := u.checker.HasConflict(ctx, tx.Reservations(), in.RoomID, res.Interval(), uuid.Nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrSlotUnavailable
		}

		if err := tx.Reservations().Insert(ctx, res); err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, ErrRoomNotFound)
			}
			return err
		}
		room = found
		return nil
	})
	if err != nil {
		return nil, nil, translateStoreErr(err)
	}

	slog.Info("reservation created",
		"reservation_id", res.ID(),
		"room_id", res.RoomID(),
		"username", res.Username(),
		"slot", res.Interval().String())
	return res, room, nil
}

func (u *reservationCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	now := u.clock.Now()

	var cancelled *reservation.Reservation
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := u.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := res.Cancel(now); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, res); err != nil {
			return err
		}
		cancelled = res
		return nil
	})
	err = translateStoreErr(err)
	u.recorder.RecordReservation(opCancel, outcomeOf(err))
	if err != nil {
		return err
	}

	slog.Info("reservation cancelled", "reservation_id", id)
	u.publish(ctx, shared.EventReservationCancelled, cancelled)
	return nil
}

func (u *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	var deleted *reservation.Reservation
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := u.findForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := tx.Reservations().Delete(ctx, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		deleted = res
		return nil
	})
	err = translateStoreErr(err)
	u.recorder.RecordReservation(opDelete, outcomeOf(err))
	if err != nil {
		return err
	}

	slog.Warn("reservation deleted without lifecycle checks",
		"reservation_id", id,
		"status", deleted.Status().String())
	u.publish(ctx, shared.EventReservationDeleted, deleted)
	return nil
}

func (u *reservationCommandsImpl) CompleteElapsed(ctx context.Context) (int64, error) {
	now := u.clock.Now()

	var n int64
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Reservations().CompleteElapsed(ctx, now)
		return err
	})
	if err != nil {
		return 0, translateStoreErr(err)
	}

	u.recorder.RecordCompleted(n)
	return n, nil
}

func (u *reservationCommandsImpl) findForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := tx.Reservations().FindByIDForUpdate(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

func (u *reservationCommandsImpl) lockRoom(ctx context.Context, roomID uuid.UUID) (func(), error) {
	started := time.Now()
	unlock, err := u.locker.Lock(ctx, roomID)
	if err != nil && errs.Is(err, shared.ErrLockUnavailable) && ctx.Err() == nil {
		// WithinRoom still serializes the room; the shared lock only spreads contention.
		u.recorder.ObserveRoomLock("unavailable", time.Since(started))
		slog.Warn("room lock backend unavailable, relying on store serialization",
			"room_id", roomID, "error", err.Error())
		return func() {}, nil
	}
	if err != nil {
		u.recorder.ObserveRoomLock("failed", time.Since(started))
		slog.Warn("room lock not acquired", "room_id", roomID, "error", err.Error())
		return nil, translateStoreErr(err)
	}
	u.recorder.ObserveRoomLock("acquired", time.Since(started))
	return unlock, nil
}

// publish never fails the operation; the reservation is already committed.
func (u *reservationCommandsImpl) publish(ctx context.Context, eventType shared.EventType, res *reservation.Reservation) {
	if u.publisher == nil || res == nil {
		return
	}
	event := shared.ReservationEvent{
		Type:       eventType,
		ID:         res.ID(),
		RoomID:     res.RoomID(),
		Username:   res.Username(),
		StartTime:  res.StartTime(),
		EndTime:    res.EndTime(),
		Status:     res.Status().String(),
		OccurredAt: u.clock.Now(),
	}
	if err := u.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish reservation event",
			"event", string(eventType),
			"reservation_id", res.ID(),
			"error", err.Error())
	}
}
