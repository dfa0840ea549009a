package response

import (
	"studyroom-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Capacity        int       `json:"capacity"`
	Description     *string   `json:"description,omitempty"`
	CreatorUsername string    `json:"creatorUsername"`
	Type            string    `json:"type"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:              v.ID,
		Name:            v.Name,
		Capacity:        v.Capacity,
		Description:     v.Description,
		CreatorUsername: v.CreatorUsername,
		Type:            v.Type,
	}
}

func FromRoomViews(views []*queries.RoomView) []*RoomResponse {
	out := make([]*RoomResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromRoomView(v))
	}
	return out
}
