package bootstrap

import (
	"rx-exchange/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.ExchangeConfig { return cfg.Exchange },
	),
)
