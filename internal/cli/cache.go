package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mlorenz/asciigram/pkg/cache"
	"github.com/mlorenz/asciigram/pkg/config"
)

// newCache builds the render cache from configuration. Redis wins when
// an address is configured, otherwise a file cache under the user cache
// directory is used. Cache setup failures degrade to a null cache with
// a warning instead of failing the command.
func newCache(ctx context.Context, cfg config.Config) cache.Cache {
	logger := loggerFromContext(ctx)

	if cfg.Cache.RedisAddr != "" {
		c, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err == nil {
			return c
		}
		logger.Warn("redis cache unavailable, caching disabled",
			"addr", cfg.Cache.RedisAddr, "err", err)
		return cache.NewNullCache()
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			logger.Warn("no user cache directory, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		dir = filepath.Join(base, appName)
	}

	c, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return c
}

// newKeyer builds the cache key schema from configuration. A nil keyer
// makes the runner fall back to the default schema.
func newKeyer(cfg config.Config) cache.Keyer {
	if cfg.Cache.KeyPrefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cfg.Cache.KeyPrefix)
}
