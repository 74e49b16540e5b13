package components

import (
	"shopbot/internal/bot"
	"shopbot/internal/infra/messaging"

	"go.uber.org/fx"
)

var BotModule = fx.Module("bot",
	fx.Provide(
		fx.Annotate(
			messaging.NewClient,
			fx.As(new(bot.Sender)),
		),
		bot.NewRouter,
	),
)
