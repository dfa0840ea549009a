package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"studyroom-booking/internal/infra/redislock"
	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRoomLocker,
	),
)

// NewRoomLocker returns a no-op locker unless REDIS_ADDR is set.
func NewRoomLocker(lc fx.Lifecycle, cfg config.Config) (shared.RoomLocker, error) {
	if cfg.Redis.Addr == "" {
		slog.Info("redis room lock disabled")
		return shared.NoopRoomLocker{}, nil
	}

	client := redislock.NewClient(cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redislock.Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	slog.Info("redis room lock enabled", "addr", cfg.Redis.Addr)
	return redislock.NewRoomLocker(client, redislock.Options{
		TTL:        cfg.Booking.LockTTL,
		MaxRetries: cfg.Booking.LockRetries,
		RetryDelay: cfg.Booking.LockRetryDelay,
	}), nil
}
