package components

import (
	"shopbot/internal/bot"
	"shopbot/internal/handler"
	"shopbot/internal/handler/api"
	infraredis "shopbot/internal/infra/redis"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(r *bot.Router) api.MessageRouter { return r },
		func(r *bot.Router) api.OrderNotifier { return r },
		func(s *infraredis.ContextStore) api.ContextStore { return s },
		api.NewWebhookHandler,
		api.NewCheckoutHandler,
	),
	fx.Invoke(handler.NewRouter),
)
