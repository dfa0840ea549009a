//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/infra"
	"studyroom-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

func TestReservationRepositoryInsert(t *testing.T) {
	tests := []struct {
		name     string
		execErr  error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "overlap rejected by exclusion constraint", execErr: &pgconn.PgError{Code: "23P01"}, wantKind: infra.KindExclusionViolated},
		{name: "unknown room", execErr: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "database error", execErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, insertReservationSQL, mock.Anything).
				Return(pgconn.NewCommandTag("INSERT 0 1"), tt.execErr)

			err := NewReservationRepository(db).Insert(context.Background(), builder.NewReservationBuilder().BuildStored())

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			}
			db.AssertExpectations(t)
		})
	}
}

func TestReservationRepositoryFindByIDForUpdate(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, selectReservationForUpdateSQL, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

		_, err := NewReservationRepository(db).FindByIDForUpdate(context.Background(), uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("lock timeout is a failure", func(t *testing.T) {
		db := new(MockDBTX)
		db.On("QueryRow", mock.Anything, selectReservationForUpdateSQL, mock.Anything).
			Return(errRow{err: &pgconn.PgError{Code: "55P03"}})

		_, err := NewReservationRepository(db).FindByIDForUpdate(context.Background(), uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepositoryUpdate(t *testing.T) {
	res := builder.NewReservationBuilder().BuildStored()
	require.NoError(t, res.Cancel(builder.BaseTime))

	tests := []struct {
		name     string
		tag      string
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success", tag: "UPDATE 1"},
		{name: "row vanished", tag: "UPDATE 0", wantKind: infra.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(MockDBTX)
			db.On("Exec", mock.Anything, updateReservationStatusSQL, mock.MatchedBy(func(args []any) bool {
				return len(args) == 3 && args[0] == res.ID() && args[1] == reservation.StatusCancelled.String()
			})).Return(pgconn.NewCommandTag(tt.tag), nil)

			err := NewReservationRepository(db).Update(context.Background(), res)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, infra.IsKind(err, tt.wantKind))
			}
		})
	}
}

func TestReservationRepositoryDelete(t *testing.T) {
	id := uuid.New()

	db := new(MockDBTX)
	db.On("Exec", mock.Anything, deleteReservationSQL, []any{id}).Return(pgconn.NewCommandTag("DELETE 0"), nil).Once()
	db.On("Exec", mock.Anything, deleteReservationSQL, []any{id}).Return(pgconn.NewCommandTag("DELETE 1"), nil).Once()

	repo := NewReservationRepository(db)
	assert.True(t, infra.IsKind(repo.Delete(context.Background(), id), infra.KindNotFound))
	assert.NoError(t, repo.Delete(context.Background(), id))
}

func TestReservationRepositoryCompleteElapsed(t *testing.T) {
	db := new(MockDBTX)
	db.On("Exec", mock.Anything, completeElapsedSQL, mock.Anything).Return(pgconn.NewCommandTag("UPDATE 3"), nil)

	n, err := NewReservationRepository(db).CompleteElapsed(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestReservationRepositoryListActiveByRoomError(t *testing.T) {
	db := new(MockDBTX)
	db.On("Query", mock.Anything, listActiveByRoomSQL, mock.Anything).Return(nil, assert.AnError)

	_, err := NewReservationRepository(db).ListActiveByRoom(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindDBFailure))
}

func TestRoomRepositoryFindByIDNotFound(t *testing.T) {
	db := new(MockDBTX)
	db.On("QueryRow", mock.Anything, selectRoomSnapshotSQL, mock.Anything).Return(errRow{err: pgx.ErrNoRows})

	_, err := NewRoomRepository(db).FindByID(context.Background(), uuid.New())
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
