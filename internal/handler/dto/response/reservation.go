package response

import (
	"time"

	"studyroom-booking/internal/usecase/commands"
	"studyroom-booking/internal/usecase/queries"
	"studyroom-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID     `json:"id"`
	RoomID    uuid.UUID     `json:"roomId"`
	Room      *RoomResponse `json:"room,omitempty"`
	Username  string        `json:"username"`
	StartTime time.Time     `json:"startTime"`
	EndTime   time.Time     `json:"endTime"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// FromCreateResult renders instants in loc; a nil loc keeps them as stored.
func FromCreateResult(result *commands.CreateReservationResult, loc *time.Location) *ReservationResponse {
	res := result.Reservation
	resp := &ReservationResponse{
		ID:        res.ID(),
		RoomID:    res.RoomID(),
		Username:  res.Username(),
		StartTime: inLocation(res.StartTime(), loc),
		EndTime:   inLocation(res.EndTime(), loc),
		Status:    res.Status().String(),
		CreatedAt: inLocation(res.CreatedAt(), loc),
		UpdatedAt: inLocation(res.UpdatedAt(), loc),
	}
	if result.Room != nil {
		resp.Room = fromRoomSnapshot(result.Room)
	}
	return resp
}

func FromReservationView(v *queries.ReservationView, loc *time.Location) *ReservationResponse {
	room := FromRoomView(&v.Room)
	return &ReservationResponse{
		ID:        v.ID,
		RoomID:    v.RoomID,
		Room:      room,
		Username:  v.Username,
		StartTime: inLocation(v.StartTime, loc),
		EndTime:   inLocation(v.EndTime, loc),
		Status:    v.Status,
		CreatedAt: inLocation(v.CreatedAt, loc),
		UpdatedAt: inLocation(v.UpdatedAt, loc),
	}
}

func FromReservationViews(views []*queries.ReservationView, loc *time.Location) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromReservationView(v, loc))
	}
	return out
}

func fromRoomSnapshot(s *shared.RoomSnapshot) *RoomResponse {
	return &RoomResponse{
		ID:              s.ID,
		Name:            s.Name,
		Capacity:        s.Capacity,
		Description:     s.Description,
		CreatorUsername: s.CreatorUsername,
		Type:            s.Type,
	}
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}
