package memory

import (
	"time"

	"studyroom-booking/internal/domain/room"

	"github.com/google/uuid"
)

// DefaultRooms mirrors the rooms seeded by the SQL migrations.
func DefaultRooms(now time.Time) ([]*room.Room, error) {
	description1 := "Quiet room with whiteboard"
	description2 := "Projector and conference table"

	specs := []struct {
		id          string
		name        string
		capacity    int
		description *string
		roomType    room.Type
	}{
		{"0b8f6c4e-1f3a-4c1e-9a51-3c2d8e7f1a01", "Sala 101", 4, &description1, room.TypeGroup},
		{"0b8f6c4e-1f3a-4c1e-9a51-3c2d8e7f1a02", "Sala 102", 8, &description2, room.TypeGroup},
		{"0b8f6c4e-1f3a-4c1e-9a51-3c2d8e7f1a03", "Cabine 1", 1, nil, room.TypeIndividual},
	}

	rooms := make([]*room.Room, 0, len(specs))
	for _, s := range specs {
		r, err := room.NewRoom(uuid.MustParse(s.id), s.name, s.capacity, s.description, "admin", s.roomType, now)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}
