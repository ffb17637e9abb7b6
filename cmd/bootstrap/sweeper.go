package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"groupbook/internal/pkg/config"
	"groupbook/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the expiration sweeper on a fixed interval for the whole
// application lifetime. It is a safety net, not a real-time mechanism, so a
// plain ticker is enough.
func StartSweeper(lc fx.Lifecycle, cfg config.Config, sweeper commands.ExpirationSweeper, logger *slog.Logger) {
	if !cfg.Sweeper.Enabled {
		logger.Info("expiration sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go runSweepLoop(ctx, cfg.Sweeper.Interval, sweeper, logger, done)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func runSweepLoop(ctx context.Context, interval time.Duration, sweeper commands.ExpirationSweeper, logger *slog.Logger, done chan<- struct{}) {
	defer close(done)

	logger.Info("expiration sweeper started", "interval", interval.String())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("expiration sweeper stopped")
			return
		case <-ticker.C:
			swept, err := sweeper.ExpireOverdue(ctx)
			if err != nil {
				logger.Error("expiration sweep failed", "error", err.Error())
				continue
			}
			if swept > 0 {
				logger.Info("expiration sweep completed", "expired", swept)
			}
		}
	}
}
