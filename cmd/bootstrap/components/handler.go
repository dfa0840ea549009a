package components

import (
	"studyroom-booking/internal/handler"
	"studyroom-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewRoomHandler,
	),
	fx.Invoke(handler.NewRouter),
)
