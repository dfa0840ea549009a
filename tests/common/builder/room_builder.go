//go:build unit || e2e

package builder

import (
	"time"

	"studyroom-booking/internal/domain/room"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID              uuid.UUID
	Name            string
	Capacity        int
	Description     *string
	CreatorUsername string
	Type            room.Type
}

func NewRoomBuilder() *RoomBuilder {
	description := "Quiet room with whiteboard"
	return &RoomBuilder{
		ID:              uuid.New(),
		Name:            "Sala 101",
		Capacity:        4,
		Description:     &description,
		CreatorUsername: "admin",
		Type:            room.TypeGroup,
	}
}

func (b *RoomBuilder) With(mutate func(*RoomBuilder)) *RoomBuilder {
	mutate(b)
	return b
}

func (b *RoomBuilder) WithName(name string) *RoomBuilder {
	b.Name = name
	return b
}

func (b *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	b.Capacity = capacity
	return b
}

func (b *RoomBuilder) BuildDomain() (*room.Room, error) {
	return room.NewRoom(b.ID, b.Name, b.Capacity, b.Description, b.CreatorUsername, b.Type, time.Now())
}

func (b *RoomBuilder) MustBuildDomain() *room.Room {
	r, err := b.BuildDomain()
	if err != nil {
		panic("MustBuildDomain: " + err.Error())
	}
	return r
}
