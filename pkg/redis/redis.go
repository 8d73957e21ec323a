package redis

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultDialTimeout = 5 * time.Second
	defaultIOTimeout   = 3 * time.Second
)

// Config holds Redis connection configuration.
// Zero timeouts fall back to package defaults.
type Config struct {
	Host        string
	Port        string
	Password    string
	DB          int
	MaxRetries  int
	PoolSize    int
	MinIdleConn int
	DialTimeout time.Duration
	IOTimeout   time.Duration
}

// Addr returns the host:port pair for the server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func (c Config) options() *redis.Options {
	dial, io := c.DialTimeout, c.IOTimeout
	if dial <= 0 {
		dial = defaultDialTimeout
	}
	if io <= 0 {
		io = defaultIOTimeout
	}

	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		MaxRetries:   c.MaxRetries,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConn,
		DialTimeout:  dial,
		ReadTimeout:  io,
		WriteTimeout: io,
		PoolTimeout:  io + time.Second,
	}
}

// Client is the Redis pool backing request throttling.
type Client struct {
	*redis.Client
	log *zap.Logger
}

// NewClient opens a pool and pings the server before returning.
func NewClient(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	opts := cfg.options()
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}

	log.Info("redis connected",
		zap.String("addr", opts.Addr),
		zap.Int("db", cfg.DB),
		zap.Int("pool_size", cfg.PoolSize),
	)

	return &Client{Client: rdb, log: log}, nil
}

// Check pings the server; it backs the health endpoint.
func (c *Client) Check(ctx context.Context) error {
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close releases the pool.
func (c *Client) Close() error {
	c.log.Info("closing redis connection")
	return c.Client.Close()
}
