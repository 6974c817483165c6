package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const catalogPrefix = "naf:catalog:"

// Catalog guarda leituras do catálogo de serviços.
type Catalog interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

type RedisCatalog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalog(ctx context.Context, url string, ttl time.Duration) (*RedisCatalog, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCatalog{client: client, ttl: ttl}, nil
}

func (c *RedisCatalog) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, catalogPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCatalog) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogPrefix+key, raw, c.ttl).Err()
}

// Invalidate remove todas as chaves do catálogo.
func (c *RedisCatalog) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, catalogPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCatalog) Close() error {
	return c.client.Close()
}

// Nop é usado quando REDIS_URL não está configurado.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error { return nil }
func (Nop) Invalidate(context.Context) error { return nil }
