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

const (
	roomViewSelect = `
SELECT id, name, capacity, description, creator_username, type
FROM rooms`

	getRoomByIDSQL = roomViewSelect + `
WHERE id = $1`

	listRoomsSQL = roomViewSelect + `
ORDER BY name, id`
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(db db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: db}
}

func (r *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	view, err := scanRoomView(r.db.QueryRow(ctx, getRoomByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return view, nil
}

func (r *RoomReadStore) FindAll(ctx context.Context) ([]*queries.RoomView, error) {
	rows, err := r.db.Query(ctx, listRoomsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	result := make([]*queries.RoomView, 0)
	for rows.Next() {
		view, err := scanRoomView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan room", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rooms", err)
	}
	return result, nil
}

func scanRoomView(row pgx.Row) (*queries.RoomView, error) {
	var (
		v           queries.RoomView
		capacity    int32
		description pgtype.Text
	)
	if err := row.Scan(&v.ID, &v.Name, &capacity, &description, &v.CreatorUsername, &v.Type); err != nil {
		return nil, err
	}
	v.Capacity = int(capacity)
	v.Description = pgconv.StringPtrFromPgtype(description)
	return &v, nil
}
