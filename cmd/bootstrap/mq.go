package bootstrap

import (
	"context"
	"log/slog"

	"studyroom-booking/internal/infra/mq"
	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MQModule = fx.Module("mq",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher logs events unless MQ_URL is set.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if cfg.MQ.URL == "" {
		return mq.NewLogPublisher(logger)
	}

	publisher := mq.NewAMQPPublisher(cfg.MQ)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	logger.Info("amqp event publisher enabled", "exchange", cfg.MQ.Exchange)
	return publisher
}
