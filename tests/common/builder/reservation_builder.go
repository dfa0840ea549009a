//go:build unit || e2e

package builder

import (
	"time"

	"studyroom-booking/internal/domain/reservation"
	reqdto "studyroom-booking/internal/handler/dto/request"
	"studyroom-booking/internal/usecase/commands"
	"studyroom-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

// BaseTime is the fixed "now" used by reservation fixtures.
var BaseTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type ReservationBuilder struct {
	RoomID      uuid.UUID
	Username    string
	StartTime   time.Time
	EndTime     time.Time
	Now         time.Time
	GracePeriod time.Duration
	Status      reservation.Status
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		RoomID:      uuid.New(),
		Username:    "alice",
		StartTime:   BaseTime.Add(2 * time.Hour),
		EndTime:     BaseTime.Add(3 * time.Hour),
		Now:         BaseTime,
		GracePeriod: time.Minute,
		Status:      reservation.StatusConfirmed,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithRoomID(id uuid.UUID) *ReservationBuilder {
	b.RoomID = id
	return b
}

func (b *ReservationBuilder) WithUsername(username string) *ReservationBuilder {
	b.Username = username
	return b
}

func (b *ReservationBuilder) WithSlot(start, end time.Time) *ReservationBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *ReservationBuilder) WithNow(now time.Time) *ReservationBuilder {
	b.Now = now
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.Status = status
	return b
}

func (b *ReservationBuilder) Policy() reservation.Policy {
	return reservation.Policy{GracePeriod: b.GracePeriod}
}

// Build methods
func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	return reservation.NewReservation(b.Policy(), b.RoomID, b.Username, b.StartTime, b.EndTime, b.Now)
}

// BuildStored skips admission checks, for seeding stores with any status or past slots.
func (b *ReservationBuilder) BuildStored() *reservation.Reservation {
	interval, err := reservation.NewInterval(b.StartTime, b.EndTime)
	if err != nil {
		panic("BuildStored: " + err.Error())
	}
	return reservation.ReconstructReservation(uuid.New(), b.RoomID, b.Username, interval, b.Status, b.Now, b.Now)
}

func (b *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RoomID:    b.RoomID,
		Username:  b.Username,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		RoomID:    b.RoomID,
		Username:  b.Username,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:     uuid.New(),
		RoomID: b.RoomID,
		Room: queries.RoomView{
			ID:              b.RoomID,
			Name:            "Sala 101",
			Capacity:        4,
			CreatorUsername: "admin",
			Type:            "group",
		},
		Username:  b.Username,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status.String(),
		CreatedAt: b.Now,
		UpdatedAt: b.Now,
	}
}
