// Package redis holds the widget-context dedup store. The checkout widget can
// replay the same callback; recording each (conversation, context) pair with a
// TTL lets the bot answer it exactly once.
package redis

import (
	"context"
	"time"

	"shopbot/internal/pkg/config"
	"shopbot/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

type ContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

func NewContextStore(client *redis.Client, cfg config.RedisConfig) *ContextStore {
	return &ContextStore{client: client, ttl: cfg.ContextTTL}
}

// MarkSeen records the widget context and reports whether it was seen before.
func (s *ContextStore) MarkSeen(ctx context.Context, conversationID, widgetContext string) (bool, error) {
	key := "widget-context:" + conversationID + ":" + widgetContext
	created, err := s.client.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, errs.Wrap(err, "failed to record widget context")
	}
	return !created, nil
}
