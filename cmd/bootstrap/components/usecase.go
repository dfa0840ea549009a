package components

import (
	"time"

	"studyroom-booking/internal/domain/reservation"
	"studyroom-booking/internal/pkg/clock"
	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/usecase/commands"
	"studyroom-booking/internal/usecase/queries"
	"studyroom-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	func(cfg config.Config) (*time.Location, error) {
		return cfg.Booking.Location()
	},
	clock.NewRealClockIn,
	func(cfg config.Config) reservation.Policy {
		return reservation.Policy{GracePeriod: cfg.Booking.GracePeriod}
	},
)

type commandParams struct {
	fx.In

	UoW       shared.UnitOfWork
	Locker    shared.RoomLocker      `optional:"true"`
	Publisher shared.EventPublisher
	Recorder  shared.BookingRecorder `optional:"true"`
	Clock     clock.Clock
	Policy    reservation.Policy
}

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(p commandParams) commands.ReservationCommands {
			return commands.NewReservationCommands(p.UoW, p.Locker, p.Publisher, p.Recorder, p.Clock, p.Policy)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewRoomQueries,
	),
)
