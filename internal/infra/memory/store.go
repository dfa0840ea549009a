package memory

import (
	"sync"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/domain/room"

	"github.com/google/uuid"
)

// Store keeps rooms and reservations in process memory.
// Reservations are cloned on the way in and out so callers never share state with the store.
type Store struct {
	mu           sync.RWMutex
	rooms        map[uuid.UUID]*room.Room
	reservations map[uuid.UUID]*reservation.Reservation

	locksMu   sync.Mutex
	roomLocks map[uuid.UUID]*sync.Mutex

	// serializes single-row and bulk mutations
	writeMu sync.Mutex
}

func NewStore() *Store {
	return &Store{
		rooms:        make(map[uuid.UUID]*room.Room),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
		roomLocks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *Store) SeedRooms(rooms ...*room.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rooms {
		s.rooms[r.ID()] = r
	}
}

func (s *Store) roomLock(roomID uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.roomLocks[roomID]
	if !ok {
		l = &sync.Mutex{}
		s.roomLocks[roomID] = l
	}
	return l
}

func clone(r *reservation.Reservation) *reservation.Reservation {
	return reservation.ReconstructReservation(
		r.ID(), r.RoomID(), r.Username(), r.Interval(), r.Status(), r.CreatedAt(), r.UpdatedAt(),
	)
}
