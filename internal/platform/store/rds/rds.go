// Package rds provides a redis client for the remote cache tier
package rds

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Config configures redis connectivity
type Config struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RDS is a redis client handle
type RDS struct {
	Client *redis.Client
}

// Open creates a redis client without pinging it. The cache gateway owns
// availability probing; an unreachable redis is a degraded state, not an error
func Open(cfg Config) *RDS {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 2 * time.Second
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = time.Second
	}
	return &RDS{
		Client: redis.NewClient(&redis.Options{
			Addr:         cfg.Addr,
			Password:     cfg.Password,
			DB:           cfg.DB,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		}),
	}
}

// Ping verifies connectivity
func (r *RDS) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close releases the client's resources
func (r *RDS) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
