package queries

import (
	"context"

	"studyroom-booking/internal/infra"
	"studyroom-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// ListByRoom returns the room's reservations ordered by start ascending; an unknown room yields none.
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*ReservationView, error)
	ListByUser(ctx context.Context, username string) ([]*ReservationView, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*ReservationView, error)
	FindByUsername(ctx context.Context, username string) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateReadErr(err, errs.ErrReservationNotFound)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*ReservationView, error) {
	views, err := q.repo.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, translateReadErr(err, errs.ErrRoomNotFound)
	}
	return nonNil(views), nil
}

func (q *reservationQueriesImpl) ListByUser(ctx context.Context, username string) ([]*ReservationView, error) {
	views, err := q.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, translateReadErr(err, errs.ErrReservationNotFound)
	}
	return nonNil(views), nil
}

func translateReadErr(err error, notFound error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFound
	}
	return errs.Mark(err, errs.ErrStorageUnavailable)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
