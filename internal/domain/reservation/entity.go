package reservation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInterval   = errors.New("start time must be before end time")
	ErrReservationInPast = errors.New("reservation starts in the past")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrUsernameTooLong   = errors.New("username is too long (max 100 characters)")
	ErrAlreadyCancelled  = errors.New("reservation is already cancelled")
	ErrAlreadyCompleted  = errors.New("reservation is already completed")
	ErrTooLateToCancel   = errors.New("reservation has already ended")
	ErrInvalidStatus     = errors.New("invalid reservation status")
)

const MaxUsernameLength = 100

// Policy holds the admission rules that are configuration rather than law.
type Policy struct {
	// GracePeriod lets a start instant lie slightly before now to absorb
	// client/server clock skew and submission latency.
	GracePeriod time.Duration
}

type Reservation struct {
	id        uuid.UUID
	roomID    uuid.UUID
	username  string
	interval  Interval
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation validates a booking request evaluated at now and returns a
// Confirmed reservation with a fresh id. It performs no conflict check.
func NewReservation(
	policy Policy,
	roomID uuid.UUID,
	username string,
	start, end time.Time,
	now time.Time,
) (*Reservation, error) {
	interval, err := NewInterval(start, end)
	if err != nil {
		return nil, err
	}

	grace := policy.GracePeriod
	if grace < 0 {
		grace = 0
	}
	if interval.Start().Before(now.Add(-grace)) {
		return nil, ErrReservationInPast
	}

	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	return &Reservation{
		id:        uuid.New(),
		roomID:    roomID,
		username:  username,
		interval:  interval,
		status:    StatusConfirmed,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id, roomID uuid.UUID,
	username string,
	interval Interval,
	status Status,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		roomID:    roomID,
		username:  username,
		interval:  interval,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Cancel is the only status transition the booking core performs.
func (r *Reservation) Cancel(now time.Time) error {
	switch r.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	case StatusConfirmed:
	default:
		return ErrInvalidStatus
	}

	if r.interval.EndsBefore(now) {
		return ErrTooLateToCancel
	}

	r.status = StatusCancelled
	r.updatedAt = now
	return nil
}

// IsActive reports whether the reservation still blocks its slot.
func (r *Reservation) IsActive() bool {
	return !r.status.IsTerminal()
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

func (r *Reservation) ConflictsWith(candidate Interval) bool {
	return r.IsActive() && r.interval.Overlaps(candidate)
}

func (r *Reservation) EndsAtOrBefore(now time.Time) bool {
	return r.interval.EndsAtOrBefore(now)
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	return nil
}

func (r *Reservation) ID() uuid.UUID        { return r.id }
func (r *Reservation) RoomID() uuid.UUID    { return r.roomID }
func (r *Reservation) Username() string     { return r.username }
func (r *Reservation) Interval() Interval   { return r.interval }
func (r *Reservation) StartTime() time.Time { return r.interval.Start() }
func (r *Reservation) EndTime() time.Time   { return r.interval.End() }
func (r *Reservation) Status() Status       { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
