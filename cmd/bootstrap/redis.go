package bootstrap

import (
	"context"

	infraredis "shopbot/internal/infra/redis"
	"shopbot/internal/pkg/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		NewContextStore,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := infraredis.NewClient(cfg.Redis)
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

	return client, nil
}

func NewContextStore(client *redis.Client, cfg config.Config) *infraredis.ContextStore {
	return infraredis.NewContextStore(client, cfg.Redis)
}
