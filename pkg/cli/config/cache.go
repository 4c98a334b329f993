package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/service/cache"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Cache holds dashboard cache configuration
type Cache struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// Flags returns CLI flags for Cache configuration
func (c *Cache) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address for the dashboard cache (host:port)",
			Category:    "Cache",
			Sources:     cli.EnvVars("DEALDESK_REDIS_ADDR"),
			Destination: &c.RedisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Cache",
			Sources:     cli.EnvVars("DEALDESK_REDIS_PASSWORD"),
			Destination: &c.RedisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Cache",
			Value:       0,
			Sources:     cli.EnvVars("DEALDESK_REDIS_DB"),
			Destination: &c.RedisDB,
		},
		&cli.DurationFlag{
			Name:        "cache-ttl",
			Usage:       "Lifetime of cached dashboard payloads",
			Category:    "Cache",
			Value:       3 * time.Minute,
			Sources:     cli.EnvVars("DEALDESK_CACHE_TTL"),
			Destination: &c.TTL,
		},
	}
}

// IsConfigured checks if Redis is properly configured
func (c *Cache) IsConfigured() bool {
	return c.RedisAddr != ""
}

// Configure creates and returns a cache backend. Falls back to the in-process
// cache when Redis is not configured.
func (c *Cache) Configure(ctx context.Context) (interfaces.Cache, error) {
	logger := ctxlog.From(ctx)

	if !c.IsConfigured() {
		logger.Warn("Using in-process cache instead of redis. Cached dashboards are not shared across instances")
		return cache.NewMemory(), nil
	}

	redisCache, err := cache.NewRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init redis cache",
			goerr.V("addr", c.RedisAddr),
			goerr.V("db", c.RedisDB),
		)
	}

	return redisCache, nil
}

// LogValue returns structured log value
func (c Cache) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("redis_addr", c.RedisAddr),
		slog.Bool("has_password", c.RedisPassword != ""),
		slog.Int("redis_db", c.RedisDB),
		slog.Duration("ttl", c.TTL),
	)
}
