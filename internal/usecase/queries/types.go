package queries

import (
	"time"

	"github.com/google/uuid"
)

// RoomView represents read-optimized room data
type RoomView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Capacity        int       `json:"capacity"`
	Description     *string   `json:"description,omitempty"`
	CreatorUsername string    `json:"creatorUsername"`
	Type            string    `json:"type"`
}

// ReservationView represents a reservation joined with its room
type ReservationView struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"roomId"`
	Room      RoomView  `json:"room"`
	Username  string    `json:"username"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
