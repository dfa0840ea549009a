package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName      = errors.New("room name cannot be empty")
	ErrRoomNameTooLong    = errors.New("room name is too long (max 100 characters)")
	ErrInvalidCapacity    = errors.New("room capacity must be between 1 and 100")
	ErrDescriptionTooLong = errors.New("room description is too long (max 500 characters)")
	ErrEmptyCreator       = errors.New("room creator cannot be empty")
	ErrInvalidRoomType    = errors.New("invalid room type")
)

const (
	MaxRoomNameLength    = 100
	MaxDescriptionLength = 500
	MinCapacity          = 1
	MaxCapacity          = 100
)

type Type string

const (
	TypeGroup      Type = "group"
	TypeIndividual Type = "individual"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeGroup, TypeIndividual:
		return true
	default:
		return false
	}
}

type Room struct {
	id              uuid.UUID
	name            string
	capacity        int
	description     *string
	creatorUsername string
	roomType        Type
	createdAt       time.Time
	updatedAt       time.Time
}

func NewRoom(
	id uuid.UUID,
	name string,
	capacity int,
	description *string,
	creatorUsername string,
	roomType Type,
	now time.Time,
) (*Room, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if capacity < MinCapacity || capacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		if len(trimmed) > MaxDescriptionLength {
			return nil, ErrDescriptionTooLong
		}
		if trimmed == "" {
			description = nil
		} else {
			description = &trimmed
		}
	}
	creatorUsername = strings.TrimSpace(creatorUsername)
	if creatorUsername == "" {
		return nil, ErrEmptyCreator
	}
	if !roomType.IsValid() {
		return nil, ErrInvalidRoomType
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Room{
		id:              id,
		name:            name,
		capacity:        capacity,
		description:     description,
		creatorUsername: creatorUsername,
		roomType:        roomType,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	return nil
}

func (r *Room) ID() uuid.UUID           { return r.id }
func (r *Room) Name() string            { return r.name }
func (r *Room) Capacity() int           { return r.capacity }
func (r *Room) Description() *string    { return r.description }
func (r *Room) CreatorUsername() string { return r.creatorUsername }
func (r *Room) Type() Type              { return r.roomType }
func (r *Room) CreatedAt() time.Time    { return r.createdAt }
func (r *Room) UpdatedAt() time.Time    { return r.updatedAt }
