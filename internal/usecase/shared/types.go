package shared

import (
	"time"

	"github.com/google/uuid"
)

// RoomSnapshot is the write-side view of a room; the booking core never mutates rooms.
type RoomSnapshot struct {
	ID              uuid.UUID
	Name            string
	Capacity        int
	Description     *string
	CreatorUsername string
	Type            string
}

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationDeleted   EventType = "reservation.deleted"
)

type ReservationEvent struct {
	Type       EventType `json:"type"`
	ID         uuid.UUID `json:"id"`
	RoomID     uuid.UUID `json:"roomId"`
	Username   string    `json:"username"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}
