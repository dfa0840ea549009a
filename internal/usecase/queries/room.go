package queries

import (
	"context"

	"studyroom-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type RoomQueries interface {
	// List returns all rooms ordered by name.
	List(ctx context.Context) ([]*RoomView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
}

type RoomViewRepo interface {
	FindAll(ctx context.Context) ([]*RoomView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
}

type roomQueriesImpl struct {
	repo RoomViewRepo
}

func NewRoomQueries(repo RoomViewRepo) RoomQueries {
	return &roomQueriesImpl{repo: repo}
}

func (q *roomQueriesImpl) List(ctx context.Context) ([]*RoomView, error) {
	rooms, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, translateReadErr(err, errs.ErrRoomNotFound)
	}
	return nonNil(rooms), nil
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	room, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateReadErr(err, errs.ErrRoomNotFound)
	}
	return room, nil
}
