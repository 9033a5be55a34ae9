package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second
	ioTimeout      = 2 * time.Second
)

// Config holds the connection settings of the dedup store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Timeout bounds the initial ping; zero means connectTimeout.
	Timeout time.Duration
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  connectTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	}
}

// Connect opens a client and pings it so a wrong address fails at startup
// rather than on the first activity.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	wait := cfg.Timeout
	if wait <= 0 {
		wait = connectTimeout
	}

	client := redis.NewClient(cfg.options())

	pingCtx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	if err := Ping(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// Ping reports whether the server answers. It backs the readiness probe.
func Ping(ctx context.Context, client *redis.Client) error {
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	return nil
}
