package repository

import (
	"context"

	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/infra/db"
	"studyroom-booking/internal/pkg/pgconv"
	"studyroom-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const selectRoomSnapshotSQL = `
SELECT id, name, capacity, description, creator_username, type
FROM rooms
WHERE id = $1`

type RoomRepository struct {
	db db.DBTX
}

func NewRoomRepository(db db.DBTX) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	var (
		snap        shared.RoomSnapshot
		capacity    int32
		description pgtype.Text
	)
	err := r.db.QueryRow(ctx, selectRoomSnapshotSQL, id).
		Scan(&snap.ID, &snap.Name, &capacity, &description, &snap.CreatorUsername, &snap.Type)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	snap.Capacity = int(capacity)
	snap.Description = pgconv.StringPtrFromPgtype(description)
	return &snap, nil
}
