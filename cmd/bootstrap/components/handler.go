package components

import (
	"rx-exchange/internal/handler"
	"rx-exchange/internal/handler/api"
	"rx-exchange/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewListingHandler,
		api.NewMatchHandler,
		api.NewExchangeHandler,
		api.NewConversationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
