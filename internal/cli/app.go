package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/amigurumi"
	"github.com/aretw0/amigurumi/internal/config"
	"github.com/aretw0/amigurumi/internal/metrics"
	"github.com/aretw0/amigurumi/pkg/adapters/loam"
	"github.com/aretw0/amigurumi/pkg/adapters/memory"
	"github.com/aretw0/amigurumi/pkg/adapters/redis"
	"github.com/aretw0/amigurumi/pkg/ports"
)

// App is the wiring shared by every command: one generator with its cache,
// logger and metrics built from the configuration.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Generator *amigurumi.Generator
	Metrics   *metrics.Metrics
	// Cache is nil when caching is disabled.
	Cache ports.PatternCache

	closers []func() error
}

// NewApp builds the generator described by cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}

	cache, err := app.createCache(ctx)
	if err != nil {
		return nil, err
	}

	app.Cache = cache

	opts := []amigurumi.Option{
		amigurumi.WithLogger(logger),
		amigurumi.WithShortPatternThreshold(cfg.Pattern.ShortThreshold),
		amigurumi.WithLifecycleHooks(metrics.Chain(app.Metrics.Hooks(), createDebugHooks(logger))),
	}
	if cache != nil {
		opts = append(opts, amigurumi.WithCache(cache))
	}
	app.Generator = amigurumi.New(opts...)
	return app, nil
}

func (a *App) createCache(ctx context.Context) (ports.PatternCache, error) {
	switch a.Config.Pattern.Cache {
	case config.CacheNone:
		return nil, nil
	case config.CacheRedis:
		ttl, err := a.Config.Redis.Expiry()
		if err != nil {
			return nil, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if a.Config.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(a.Config.Redis.Prefix))
		}
		cache := redis.New(a.Config.Redis.Addr, a.Config.Redis.Password, a.Config.Redis.DB, opts...)
		if err := cache.Ping(ctx); err != nil {
			cache.Close()
			return nil, fmt.Errorf("redis cache unavailable at %s: %w", a.Config.Redis.Addr, err)
		}
		a.closers = append(a.closers, cache.Close)
		a.Logger.Debug("Using redis pattern cache", "addr", a.Config.Redis.Addr)
		return cache, nil
	default:
		return memory.NewCache(memory.WithMaxEntries(a.Config.Pattern.CacheSize)), nil
	}
}

// ErrCacheDisabled is returned by cache operations when pattern.cache is none.
var ErrCacheDisabled = errors.New("pattern cache is disabled")

// CacheKeys lists the cached pattern keys in sorted order.
func (a *App) CacheKeys(ctx context.Context) ([]string, error) {
	if a.Cache == nil {
		return nil, ErrCacheDisabled
	}
	keys, err := a.Cache.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached patterns: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache removes the given keys, or every cached pattern when none are
// given, and reports how many keys it removed.
func (a *App) ClearCache(ctx context.Context, keys ...string) (int, error) {
	if len(keys) == 0 {
		all, err := a.CacheKeys(ctx)
		if err != nil {
			return 0, err
		}
		keys = all
	} else if a.Cache == nil {
		return 0, ErrCacheDisabled
	}

	for i, key := range keys {
		if err := a.Cache.Delete(ctx, key); err != nil {
			return i, fmt.Errorf("failed to evict %s: %w", key, err)
		}
	}
	a.Logger.Debug("Pattern cache cleared", "keys", len(keys))
	return len(keys), nil
}

// OpenLibrary opens the pattern library at the configured path.
func (a *App) OpenLibrary() (*loam.Library, error) {
	lib, err := loam.Open(a.Config.Library.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pattern library %s: %w", a.Config.Library.Path, err)
	}
	return lib, nil
}

// Close releases the cache connection, if any.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
