package amigurumi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/pattern"
	"github.com/aretw0/amigurumi/pkg/ports"
)

// DefaultShortPatternThreshold is the body length below which a pattern gets
// the short-pattern warning.
const DefaultShortPatternThreshold = 5

// Short-pattern advisory shown next to, not instead of, the pattern.
const (
	WarningTitle        = "Warning"
	ShortPatternMessage = "Your pattern looks awfully short. I'll display it anyways, but make sure to check that the values you entered make sense."
)

// Generator is the high-level entry point for the library.
// It wraps the pure pattern algorithm with caching, warnings and observability.
// A Generator is safe for concurrent use.
type Generator struct {
	cache          ports.PatternCache
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	shortThreshold int
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithCache memoizes results in the given cache.
func WithCache(cache ports.PatternCache) Option {
	return func(g *Generator) {
		g.cache = cache
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithShortPatternThreshold changes the body length below which the
// short-pattern warning is attached. Zero disables the warning.
func WithShortPatternThreshold(lines int) Option {
	return func(g *Generator) {
		g.shortThreshold = lines
	}
}

// New initializes a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{shortThreshold: DefaultShortPatternThreshold}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Generate builds the pattern for req. InvalidGeometryError and stitch errors are
// returned as is; cache failures are logged and never fail the call.
func (g *Generator) Generate(ctx context.Context, req domain.Request) (*domain.Result, error) {
	start := time.Now()
	key := req.Key()
	log := g.logger.With("key", key)

	if cached := g.lookup(ctx, key, log); cached != nil {
		cached.Request = req
		g.emit(ctx, g.hooks.OnCacheHit, domain.EventPatternCached, key, cached, start, nil)
		return cached, nil
	}

	stitch, err := req.ResolveStitch()
	if err != nil {
		g.emit(ctx, g.hooks.OnError, domain.EventPatternFailed, key, nil, start, err)
		return nil, err
	}

	assembly, err := pattern.Assemble(req.Circumference, stitch, req.Joined)
	if err != nil {
		log.Debug("Pattern rejected", "err", err)
		g.emit(ctx, g.hooks.OnError, domain.EventPatternFailed, key, nil, start, err)
		return nil, err
	}

	result := &domain.Result{
		Request:     req,
		Stitch:      stitch,
		Pattern:     assembly.Pattern,
		Rows:        assembly.Rows,
		StuffingRow: assembly.StuffingRow,
		Warnings:    g.warnings(assembly),
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, result); err != nil {
			log.Warn("Failed to cache pattern", "err", err)
		}
	}

	log.Debug("Pattern generated", "rows", len(result.Rows), "stuffing_row", result.StuffingRow)
	g.emit(ctx, g.hooks.OnGenerate, domain.EventPatternGenerated, key, result, start, nil)
	return result, nil
}

// Rows returns the per-round stitch counts for req without formatting them.
func (g *Generator) Rows(ctx context.Context, req domain.Request) ([]int, error) {
	stitch, err := req.ResolveStitch()
	if err != nil {
		return nil, err
	}
	return pattern.CalculateRowCircumferences(req.Circumference, stitch)
}

// Stitches returns the built-in stitch catalog.
func (g *Generator) Stitches() []domain.Stitch {
	return domain.BuiltinStitches()
}

func (g *Generator) lookup(ctx context.Context, key string, log *slog.Logger) *domain.Result {
	if g.cache == nil {
		return nil
	}
	cached, err := g.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrPatternNotCached) {
			log.Warn("Failed to read pattern cache", "err", err)
		}
		return nil
	}
	log.Debug("Pattern served from cache")
	return cached
}

func (g *Generator) warnings(a *pattern.Assembly) []domain.Warning {
	if g.shortThreshold > 0 && len(a.Pattern.Body) < g.shortThreshold {
		return []domain.Warning{{Title: WarningTitle, Message: ShortPatternMessage}}
	}
	return nil
}

func (g *Generator) emit(ctx context.Context, hook func(context.Context, *domain.PatternEvent), typ domain.EventType, key string, r *domain.Result, start time.Time, err error) {
	if hook == nil {
		return
	}
	ev := &domain.PatternEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		Key:       key,
		Duration:  time.Since(start),
		Err:       err,
	}
	if r != nil {
		ev.Stitch = r.Stitch.Key
		ev.Rows = len(r.Rows)
		ev.Warnings = len(r.Warnings)
	}
	hook(ctx, ev)
}
