package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type ElapsedCompleter interface {
	CompleteElapsed(ctx context.Context) (int64, error)
}

// CompletionSweeper periodically moves confirmed reservations whose end has passed to completed.
type CompletionSweeper struct {
	completer ElapsedCompleter
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
	started   chan struct{}
}

func NewCompletionSweeper(completer ElapsedCompleter, interval time.Duration) *CompletionSweeper {
	return &CompletionSweeper{
		completer: completer,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		started:   make(chan struct{}),
	}
}

// Start blocks until ctx is done or Stop is called.
func (s *CompletionSweeper) Start(ctx context.Context) {
	close(s.started)
	slog.Info("completion sweeper started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			slog.Info("completion sweeper stopped", "reason", "context done")
			return
		case <-s.stopCh:
			slog.Info("completion sweeper stopped", "reason", "stop requested")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop is idempotent and returns once the loop has exited; it is a no-op if Start never ran.
func (s *CompletionSweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	select {
	case <-s.started:
		<-s.doneCh
	default:
	}
}

func (s *CompletionSweeper) sweep(ctx context.Context) {
	slog.Debug("completion sweep started")

	count, err := s.completer.CompleteElapsed(ctx)
	if err != nil {
		slog.Error("completion sweep failed", "error", err)
		return
	}

	if count > 0 {
		slog.Info("reservations completed", "count", count)
	} else {
		slog.Debug("no elapsed reservations")
	}
}
