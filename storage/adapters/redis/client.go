package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Client обертка над redis.Client для удобства
type Client struct {
	*redis.Client
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient создает новый клиент Redis и проверяет соединение
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	c := &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     opts.Addr,
			Password: opts.Password,
			DB:       opts.DB,
		}),
	}
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return c, nil
}
