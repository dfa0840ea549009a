package converter

import (
	"fmt"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ReservationRow mirrors one row of the reservations table.
type ReservationRow struct {
	ID        uuid.UUID
	RoomID    uuid.UUID
	Username  string
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
	Status    string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// ReservationColumns matches the order of ScanTargets.
const ReservationColumns = "id, room_id, username, start_time, end_time, status, created_at, updated_at"

func (r *ReservationRow) ScanTargets() []any {
	return []any{&r.ID, &r.RoomID, &r.Username, &r.StartTime, &r.EndTime, &r.Status, &r.CreatedAt, &r.UpdatedAt}
}

func ReservationToRow(res *reservation.Reservation) ReservationRow {
	return ReservationRow{
		ID:        res.ID(),
		RoomID:    res.RoomID(),
		Username:  res.Username(),
		StartTime: pgconv.TimeToPgtype(res.StartTime()),
		EndTime:   pgconv.TimeToPgtype(res.EndTime()),
		Status:    res.Status().String(),
		CreatedAt: pgconv.TimeToPgtype(res.CreatedAt()),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationToDomain(row ReservationRow) (*reservation.Reservation, error) {
	interval, err := reservation.NewInterval(pgconv.TimeFromPgtype(row.StartTime), pgconv.TimeFromPgtype(row.EndTime))
	if err != nil {
		return nil, fmt.Errorf("stored reservation %s: %w", row.ID, err)
	}

	status, err := reservation.NewStatus(row.Status)
	if err != nil {
		return nil, fmt.Errorf("stored reservation %s: %w", row.ID, err)
	}

	return reservation.ReconstructReservation(
		row.ID,
		row.RoomID,
		row.Username,
		interval,
		status,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
