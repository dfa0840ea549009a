package memory

import (
	"context"
	"sort"
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UoW struct {
	store *Store
}

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

// WithinRoom holds the room's mutex across fn, which makes check-then-insert atomic per room.
func (u *UoW) WithinRoom(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	l := u.store.roomLock(roomID)
	l.Lock()
	defer l.Unlock()

	return u.run(ctx, fn)
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.writeMu.Lock()
	defer u.store.writeMu.Unlock()

	return u.run(ctx, fn)
}

func (u *UoW) run(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := newMemTx(u.store)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// memTx buffers writes and applies them only on commit.
type memTx struct {
	store   *Store
	written map[uuid.UUID]*reservation.Reservation
	deleted map[uuid.UUID]bool
}

func newMemTx(store *Store) *memTx {
	return &memTx{
		store:   store,
		written: make(map[uuid.UUID]*reservation.Reservation),
		deleted: make(map[uuid.UUID]bool),
	}
}

func (t *memTx) Rooms() shared.RoomReader {
	return roomReader{store: t.store}
}

func (t *memTx) Reservations() shared.ReservationRepository {
	return t
}

func (t *memTx) Insert(_ context.Context, res *reservation.Reservation) error {
	if _, err := t.lookup(res.ID()); err == nil {
		return infra.WrapRepoErr("reservation already exists", nil, infra.KindDuplicateKey)
	}
	t.store.mu.RLock()
	_, roomExists := t.store.rooms[res.RoomID()]
	t.store.mu.RUnlock()
	if !roomExists {
		return infra.WrapRepoErr("room does not exist", nil, infra.KindForeignKeyViolated)
	}

	t.written[res.ID()] = clone(res)
	delete(t.deleted, res.ID())
	return nil
}

func (t *memTx) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, err := t.lookup(id)
	if err != nil {
		return nil, err
	}
	return clone(res), nil
}

func (t *memTx) Update(_ context.Context, res *reservation.Reservation) error {
	if _, err := t.lookup(res.ID()); err != nil {
		return err
	}
	t.written[res.ID()] = clone(res)
	return nil
}

func (t *memTx) Delete(_ context.Context, id uuid.UUID) error {
	if _, err := t.lookup(id); err != nil {
		return err
	}
	delete(t.written, id)
	t.deleted[id] = true
	return nil
}

func (t *memTx) ListActiveByRoom(_ context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	var result []*reservation.Reservation
	for _, res := range t.snapshot() {
		if res.RoomID() == roomID && res.Status() == reservation.StatusConfirmed {
			result = append(result, clone(res))
		}
	}
	sortByStart(result)
	return result, nil
}

func (t *memTx) CompleteElapsed(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, res := range t.snapshot() {
		if res.Status() == reservation.StatusConfirmed && res.EndsAtOrBefore(now) {
			t.written[res.ID()] = reservation.ReconstructReservation(
				res.ID(), res.RoomID(), res.Username(), res.Interval(), reservation.StatusCompleted, res.CreatedAt(), now,
			)
			n++
		}
	}
	return n, nil
}

func (t *memTx) lookup(id uuid.UUID) (*reservation.Reservation, error) {
	if t.deleted[id] {
		return nil, infra.NewNotFound("reservation not found")
	}
	if res, ok := t.written[id]; ok {
		return res, nil
	}
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	if res, ok := t.store.reservations[id]; ok {
		return res, nil
	}
	return nil, infra.NewNotFound("reservation not found")
}

// snapshot merges committed rows with this transaction's pending writes.
func (t *memTx) snapshot() []*reservation.Reservation {
	t.store.mu.RLock()
	merged := make(map[uuid.UUID]*reservation.Reservation, len(t.store.reservations)+len(t.written))
	for id, res := range t.store.reservations {
		merged[id] = res
	}
	t.store.mu.RUnlock()

	for id, res := range t.written {
		merged[id] = res
	}
	for id := range t.deleted {
		delete(merged, id)
	}

	out := make([]*reservation.Reservation, 0, len(merged))
	for _, res := range merged {
		out = append(out, res)
	}
	return out
}

func (t *memTx) commit() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for id, res := range t.written {
		t.store.reservations[id] = res
	}
	for id := range t.deleted {
		delete(t.store.reservations, id)
	}
}

type roomReader struct {
	store *Store
}

func (r roomReader) FindByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rm, ok := r.store.rooms[id]
	if !ok {
		return nil, infra.NewNotFound("room not found")
	}
	return &shared.RoomSnapshot{
		ID:              rm.ID(),
		Name:            rm.Name(),
		Capacity:        rm.Capacity(),
		Description:     rm.Description(),
		CreatorUsername: rm.CreatorUsername(),
		Type:            rm.Type().String(),
	}, nil
}

func sortByStart(items []*reservation.Reservation) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartTime().Equal(items[j].StartTime()) {
			return items[i].StartTime().Before(items[j].StartTime())
		}
		return items[i].ID().String() < items[j].ID().String()
	})
}
