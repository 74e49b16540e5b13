package components

import (
	"shopbot/internal/domain/catalog"
	"shopbot/internal/pkg/clock"
	"shopbot/internal/pkg/config"
	"shopbot/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		catalog.NewDemo,
		func(cfg config.Config) config.BotConfig { return cfg.Bot },
		usecase.NewSessionService,
		usecase.NewCartCommands,
		usecase.NewFilterCommands,
		usecase.NewPickupCommands,
		usecase.NewCheckoutCommands,
	),
)
