package memory

import (
	"context"
	"sort"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/domain/room"
	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	store *Store
}

func NewReservationReadStore(store *Store) *ReservationReadStore {
	return &ReservationReadStore{store: store}
}

func (r *ReservationReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	res, ok := r.store.reservations[id]
	if !ok {
		return nil, infra.NewNotFound("reservation not found")
	}
	return r.viewLocked(res), nil
}

func (r *ReservationReadStore) FindByRoomID(_ context.Context, roomID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.filter(func(res *reservation.Reservation) bool { return res.RoomID() == roomID }), nil
}

func (r *ReservationReadStore) FindByUsername(_ context.Context, username string) ([]*queries.ReservationView, error) {
	return r.filter(func(res *reservation.Reservation) bool { return res.Username() == username }), nil
}

func (r *ReservationReadStore) filter(keep func(*reservation.Reservation) bool) []*queries.ReservationView {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	matched := make([]*reservation.Reservation, 0)
	for _, res := range r.store.reservations {
		if keep(res) {
			matched = append(matched, res)
		}
	}
	sortByStart(matched)

	views := make([]*queries.ReservationView, 0, len(matched))
	for _, res := range matched {
		views = append(views, r.viewLocked(res))
	}
	return views
}

// viewLocked requires r.store.mu to be held.
func (r *ReservationReadStore) viewLocked(res *reservation.Reservation) *queries.ReservationView {
	view := &queries.ReservationView{
		ID:        res.ID(),
		RoomID:    res.RoomID(),
		Username:  res.Username(),
		StartTime: res.StartTime(),
		EndTime:   res.EndTime(),
		Status:    res.Status().String(),
		CreatedAt: res.CreatedAt(),
		UpdatedAt: res.UpdatedAt(),
	}
	if rm, ok := r.store.rooms[res.RoomID()]; ok {
		view.Room = toRoomView(rm)
	}
	return view
}

type RoomReadStore struct {
	store *Store
}

func NewRoomReadStore(store *Store) *RoomReadStore {
	return &RoomReadStore{store: store}
}

func (r *RoomReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.RoomView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rm, ok := r.store.rooms[id]
	if !ok {
		return nil, infra.NewNotFound("room not found")
	}
	view := toRoomView(rm)
	return &view, nil
}

func (r *RoomReadStore) FindAll(_ context.Context) ([]*queries.RoomView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	views := make([]*queries.RoomView, 0, len(r.store.rooms))
	for _, rm := range r.store.rooms {
		view := toRoomView(rm)
		views = append(views, &view)
	}
	sort.Slice(views, func(i, j int) bool {
		if views[i].Name != views[j].Name {
			return views[i].Name < views[j].Name
		}
		return views[i].ID.String() < views[j].ID.String()
	})
	return views, nil
}

func toRoomView(rm *room.Room) queries.RoomView {
	return queries.RoomView{
		ID:              rm.ID(),
		Name:            rm.Name(),
		Capacity:        rm.Capacity(),
		Description:     rm.Description(),
		CreatorUsername: rm.CreatorUsername(),
		Type:            rm.Type().String(),
	}
}
