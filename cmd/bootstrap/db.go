package bootstrap

import (
	"context"
	"sync"

	"studyroom-booking/internal/infra/db"
	"studyroom-booking/internal/infra/migrations"
	"studyroom-booking/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewPoolFactory,
	),
)

// NewPoolFactory connects once, applies pending migrations and closes the pool on stop.
func NewPoolFactory(lc fx.Lifecycle, cfg config.Config) db.PoolFactory {
	var (
		once sync.Once
		pool *pgxpool.Pool
		err  error
	)
	return func(ctx context.Context) (*pgxpool.Pool, error) {
		once.Do(func() {
			var cleanup func()
			pool, cleanup, err = db.Connect(ctx, cfg.DB)
			if err != nil {
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					cleanup()
					return nil
				},
			})
			if err = migrations.Up(pool); err != nil {
				cleanup()
				pool = nil
			}
		})
		return pool, err
	}
}
