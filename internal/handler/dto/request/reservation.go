package request

import (
	"strings"
	"time"

	"studyroom-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RoomID    uuid.UUID `json:"roomId" binding:"required"`
	Username  string    `json:"username" binding:"required,max=100"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

func (r CreateReservationRequest) ToInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RoomID:    r.RoomID,
		Username:  strings.TrimSpace(r.Username),
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
