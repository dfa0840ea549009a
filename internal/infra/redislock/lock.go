package redislock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studyroom-booking/internal/pkg/errs"
	"studyroom-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotOwned = errors.New("lock is not owned by this holder")

// Deletes the key only while it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

type Options struct {
	TTL        time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// RoomLocker takes lock:room:<id> with SET NX PX so only one instance books a room at a time.
type RoomLocker struct {
	client redis.UniversalClient
	opts   Options
}

func NewRoomLocker(client redis.UniversalClient, opts Options) *RoomLocker {
	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 1
	}
	return &RoomLocker{client: client, opts: opts}
}

func Key(roomID uuid.UUID) string {
	return "lock:room:" + roomID.String()
}

func (l *RoomLocker) Lock(ctx context.Context, roomID uuid.UUID) (func(), error) {
	key := Key(roomID)
	token := uuid.NewString()

	for attempt := 0; attempt < l.opts.MaxRetries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.opts.TTL).Result()
		if err != nil {
			return nil, errs.Mark(errs.Wrap(err, "acquire room lock"), shared.ErrLockUnavailable)
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		if attempt == l.opts.MaxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.opts.RetryDelay):
		}
	}

	return nil, errs.Mark(errs.New("room "+roomID.String()+" is locked by another request"), shared.ErrLockNotAcquired)
}

// release uses its own context so a cancelled request still frees the lock.
func (l *RoomLocker) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.unlock(ctx, key, token); err != nil {
		slog.Warn("failed to release room lock", "key", key, "error", err.Error())
	}
}

func (l *RoomLocker) unlock(ctx context.Context, key, token string) error {
	result, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		return errs.Wrap(err, "release room lock")
	}
	if result == 0 {
		return ErrLockNotOwned
	}
	return nil
}
