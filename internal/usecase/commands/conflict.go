package commands

import (
	"context"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ActiveReservationLister interface {
	ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error)
}

// ConflictChecker decides whether a candidate interval may be admitted to a room.
// It is only as consistent as the snapshot the lister reads, so callers run it
// inside the room's serialization point.
type ConflictChecker struct{}

func NewConflictChecker() *ConflictChecker {
	return &ConflictChecker{}
}

// HasConflict reports whether any active reservation of roomID other than exclude
// overlaps candidate. Pass uuid.Nil to exclude nothing.
func (c *ConflictChecker) HasConflict(
	ctx context.Context,
	lister ActiveReservationLister,
	roomID uuid.UUID,
	candidate reservation.Interval,
	exclude uuid.UUID,
) (bool, error) {
	existing, err := lister.ListActiveByRoom(ctx, roomID)
	if err != nil {
		return false, errs.Wrap(err, "list active reservations")
	}

	for _, res := range existing {
		if exclude != uuid.Nil && res.ID() == exclude {
			continue
		}
		// Terminal rows may still be returned by a lister; they never block.
		if res.ConflictsWith(candidate) {
			return true, nil
		}
	}
	return false, nil
}
