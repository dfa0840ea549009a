package repository

import (
	"context"
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/infra/db"
	"studyroom-booking/internal/infra/repository/converter"
	"studyroom-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertReservationSQL = `
INSERT INTO reservations (` + converter.ReservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	selectReservationForUpdateSQL = `
SELECT ` + converter.ReservationColumns + `
FROM reservations
WHERE id = $1
FOR UPDATE`

	updateReservationStatusSQL = `
UPDATE reservations
SET status = $2, updated_at = $3
WHERE id = $1`

	deleteReservationSQL = `DELETE FROM reservations WHERE id = $1`

	listActiveByRoomSQL = `
SELECT ` + converter.ReservationColumns + `
FROM reservations
WHERE room_id = $1 AND status = 'confirmed'
ORDER BY start_time, id`

	completeElapsedSQL = `
UPDATE reservations
SET status = 'completed', updated_at = $1
WHERE status = 'confirmed' AND end_time <= $1`
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Insert(ctx context.Context, res *reservation.Reservation) error {
	row := converter.ReservationToRow(res)
	_, err := r.db.Exec(ctx, insertReservationSQL,
		row.ID, row.RoomID, row.Username, row.StartTime, row.EndTime, row.Status, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to insert reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var row converter.ReservationRow
	if err := r.db.QueryRow(ctx, selectReservationForUpdateSQL, id).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	tag, err := r.db.Exec(ctx, updateReservationStatusSQL, res.ID(), res.Status().String(), pgconv.TimeToPgtype(res.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("reservation not found")
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteReservationSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewNotFound("reservation not found")
	}
	return nil
}

func (r *ReservationRepository) ListActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx, listActiveByRoomSQL, roomID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		var row converter.ReservationRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		res, err := converter.ReservationToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservations", err)
	}
	return result, nil
}

func (r *ReservationRepository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, completeElapsedSQL, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to complete elapsed reservations", err)
	}
	return tag.RowsAffected(), nil
}
