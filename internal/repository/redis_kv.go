package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/cartstore-demo/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisKV struct {
	client *redis.Client
}

func NewRedisKV(client *redis.Client) port.KeyValueStore {
	return &redisKV{
		client: client,
	}
}

func (r *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("key is empty")
	}

	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

// Set stores the value without expiration.
func (r *redisKV) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisKV) Remove(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}
