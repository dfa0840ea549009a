package components

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"studyroom-booking/internal/infra/db"
	"studyroom-booking/internal/infra/memory"
	"studyroom-booking/internal/infra/readstore"
	"studyroom-booking/internal/infra/uow"
	"studyroom-booking/internal/pkg/clock"
	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/usecase/queries"
	"studyroom-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

// Persistence bundles the write and read sides of one storage backend.
type Persistence struct {
	UoW              shared.UnitOfWork
	ReservationViews queries.ReservationViewRepo
	RoomViews        queries.RoomViewRepo
}

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewPersistence,
		func(p Persistence) shared.UnitOfWork { return p.UoW },
		func(p Persistence) queries.ReservationViewRepo { return p.ReservationViews },
		func(p Persistence) queries.RoomViewRepo { return p.RoomViews },
	),
)

type persistenceParams struct {
	fx.In

	Config config.Config
	Clock  clock.Clock
	Pools  db.PoolFactory `optional:"true"`
}

func NewPersistence(p persistenceParams) (Persistence, error) {
	switch p.Config.Store.Driver {
	case config.StoreDriverMemory:
		return newMemoryPersistence(p.Clock.Now())
	case config.StoreDriverPostgres:
		if p.Pools == nil {
			return Persistence{}, fmt.Errorf("postgres store selected but no database is configured")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		pool, err := p.Pools(ctx)
		if err != nil {
			return Persistence{}, err
		}
		slog.Info("using postgres store", "max_retries", p.Config.Booking.TxMaxRetries)
		return Persistence{
			UoW:              uow.NewPostgresUoW(pool, p.Config.Booking.TxMaxRetries),
			ReservationViews: readstore.NewReservationReadStore(pool),
			RoomViews:        readstore.NewRoomReadStore(pool),
		}, nil
	default:
		return Persistence{}, fmt.Errorf("unknown STORE_DRIVER %q", p.Config.Store.Driver)
	}
}

func newMemoryPersistence(now time.Time) (Persistence, error) {
	rooms, err := memory.DefaultRooms(now)
	if err != nil {
		return Persistence{}, err
	}
	store := memory.NewStore()
	store.SeedRooms(rooms...)
	slog.Info("using in-memory store", "rooms", len(rooms))
	return Persistence{
		UoW:              memory.NewUoW(store),
		ReservationViews: memory.NewReservationReadStore(store),
		RoomViews:        memory.NewRoomReadStore(store),
	}, nil
}
