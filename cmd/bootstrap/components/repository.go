package components

import (
	repo_impl "shopbot/internal/infra/repository"
	"shopbot/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewCartRepository,
			fx.As(new(usecase.CartRepository)),
		),
		fx.Annotate(
			repo_impl.NewFilterRepository,
			fx.As(new(usecase.FilterRepository)),
		),
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(usecase.OrderRepository)),
		),
		fx.Annotate(
			repo_impl.NewPickupRepository,
			fx.As(new(usecase.PickupRepository)),
		),
	),
)
