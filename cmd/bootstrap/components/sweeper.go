package components

import (
	"context"
	"log/slog"
	"time"

	"rx-exchange/internal/pkg/config"
	"rx-exchange/internal/usecase/commands"
	"rx-exchange/internal/usecase/shared"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper expires overdue exchanges and drops stale idempotency keys on
// a fixed interval. Reads and transitions expire lazily as well, so a missed
// tick only delays stock release for exchanges nobody touches.
func StartSweeper(lc fx.Lifecycle, cfg config.ExchangeConfig, exchanges commands.ExchangeCommands, idem shared.IdempotencyStore, logger *slog.Logger) {
	if cfg.SweepInterval <= 0 {
		logger.Warn("exchange sweeper disabled", "interval", cfg.SweepInterval)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.SweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						sweep(ctx, exchanges, idem, logger)
					}
				}
			}()
			logger.Info("exchange sweeper started", "interval", cfg.SweepInterval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			return nil
		},
	})
}

func sweep(ctx context.Context, exchanges commands.ExchangeCommands, idem shared.IdempotencyStore, logger *slog.Logger) {
	n, err := exchanges.SweepExpired(ctx)
	if err != nil {
		logger.Error("exchange sweep failed", "error", err, "expired", n)
	} else if n > 0 {
		logger.Info("expired overdue exchanges", "count", n)
	}

	if purged := idem.DeleteExpired(ctx); purged > 0 {
		logger.Debug("purged idempotency keys", "count", purged)
	}
}
