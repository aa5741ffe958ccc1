package bootstrap

import (
	"context"
	"log/slog"

	"rx-exchange/internal/infra/db"
	"rx-exchange/internal/infra/journal"
	"rx-exchange/internal/pkg/config"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewJournal,
	),
)

// NewJournal opens the Postgres journal, or falls back to the in-memory one
// when DB_ENABLED=false.
func NewJournal(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (journal.Journal, error) {
	if !cfg.DB.Enabled {
		logger.Warn("database disabled, audit journal is kept in memory only")
		return journal.NewMemory(), nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return journal.NewPostgres(pool, logger), nil
}
