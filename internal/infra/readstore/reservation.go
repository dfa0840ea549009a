package readstore

import (
	"context"

	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/infra/db"
	"studyroom-booking/internal/pkg/pgconv"
	"studyroom-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationViewSelect = `
SELECT r.id, r.room_id, r.username, r.start_time, r.end_time, r.status, r.created_at, r.updated_at,
       rm.id, rm.name, rm.capacity, rm.description, rm.creator_username, rm.type
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id`

const (
	getReservationByIDSQL = reservationViewSelect + `
WHERE r.id = $1`

	listReservationsByRoomSQL = reservationViewSelect + `
WHERE r.room_id = $1
ORDER BY r.start_time, r.id`

	listReservationsByUsernameSQL = reservationViewSelect + `
WHERE r.username = $1
ORDER BY r.start_time, r.id`
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	view, err := scanReservationView(r.db.QueryRow(ctx, getReservationByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*queries.ReservationView, error) {
	return r.list(ctx, listReservationsByRoomSQL, roomID)
}

func (r *ReservationReadStore) FindByUsername(ctx context.Context, username string) ([]*queries.ReservationView, error) {
	return r.list(ctx, listReservationsByUsernameSQL, username)
}

func (r *ReservationReadStore) list(ctx context.Context, sql string, arg any) ([]*queries.ReservationView, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()

	result := make([]*queries.ReservationView, 0)
	for rows.Next() {
		view, err := scanReservationView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

func scanReservationView(row pgx.Row) (*queries.ReservationView, error) {
	var (
		v                                queries.ReservationView
		start, end, createdAt, updatedAt pgtype.Timestamptz
		capacity                         int32
		description                      pgtype.Text
	)
	err := row.Scan(
		&v.ID, &v.RoomID, &v.Username, &start, &end, &v.Status, &createdAt, &updatedAt,
		&v.Room.ID, &v.Room.Name, &capacity, &description, &v.Room.CreatorUsername, &v.Room.Type,
	)
	if err != nil {
		return nil, err
	}

	v.StartTime = pgconv.TimeFromPgtype(start)
	v.EndTime = pgconv.TimeFromPgtype(end)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	v.Room.Capacity = int(capacity)
	v.Room.Description = pgconv.StringPtrFromPgtype(description)
	return &v, nil
}
