package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgredis "github.com/Chinmay1145/velocity-speed-emporium/pkg/redis"
)

// RedisBackend is the subset of the redis client the store needs.
type RedisBackend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SlotKey(name string) string
	Ping(ctx context.Context) error
}

// Redis stores slots under namespaced redis keys. Every write refreshes the
// slot TTL; a zero TTL keeps slots forever.
type Redis struct {
	client RedisBackend
	ttl    time.Duration
}

// NewRedis wraps a connected redis client. The caller keeps ownership of the client.
func NewRedis(client RedisBackend, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl < 0 {
		return nil, errors.New("slot ttl must not be negative")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.SlotKey(key))
	if errors.Is(err, pkgredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return []byte(value), nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.client.SlotKey(key), string(value), r.ttl); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.client.SlotKey(key)); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *Redis) Close() error { return nil }
