package components

import (
	"context"
	"log/slog"

	"studyroom-booking/internal/pkg/config"
	"studyroom-booking/internal/usecase/commands"
	"studyroom-booking/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(registerCompletionSweeper),
)

func registerCompletionSweeper(lc fx.Lifecycle, cfg config.Config, cmds commands.ReservationCommands) {
	if !cfg.Sweep.Enabled {
		slog.Info("completion sweeper disabled")
		return
	}

	sweeper := worker.NewCompletionSweeper(cmds, cfg.Sweep.Interval)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go sweeper.Start(ctx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			cancel()
			return nil
		},
	})
}
