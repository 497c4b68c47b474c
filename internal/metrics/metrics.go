// Package metrics exposes generator activity as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a private registry so tests and multiple
// servers in one process do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	Generated *prometheus.CounterVec
	CacheHits prometheus.Counter
	Failures  *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Rows      prometheus.Histogram
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amigurumi_patterns_generated_total",
				Help: "Total number of patterns generated",
			},
			[]string{"stitch"},
		),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "amigurumi_pattern_cache_hits_total",
			Help: "Total number of patterns served from the cache",
		}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amigurumi_pattern_failures_total",
				Help: "Total number of rejected pattern requests",
			},
			[]string{"reason"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "amigurumi_generation_duration_seconds",
				Help:    "Duration of pattern generation",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"stitch"},
		),
		Rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "amigurumi_pattern_rows",
			Help:    "Number of rounds per generated pattern",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
	}
	m.registry.MustRegister(m.Generated, m.CacheHits, m.Failures, m.Duration, m.Rows)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnGenerate: func(_ context.Context, e *domain.PatternEvent) {
			m.Generated.WithLabelValues(e.Stitch).Inc()
			m.Duration.WithLabelValues(e.Stitch).Observe(e.Duration.Seconds())
			m.Rows.Observe(float64(e.Rows))
		},
		OnCacheHit: func(_ context.Context, e *domain.PatternEvent) {
			m.CacheHits.Inc()
		},
		OnError: func(_ context.Context, e *domain.PatternEvent) {
			m.Failures.WithLabelValues(Reason(e.Err)).Inc()
		},
	}
}

// Chain merges several hook sets; every non-nil callback runs in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	call := func(pick func(domain.LifecycleHooks) func(context.Context, *domain.PatternEvent)) func(context.Context, *domain.PatternEvent) {
		return func(ctx context.Context, e *domain.PatternEvent) {
			for _, s := range sets {
				if fn := pick(s); fn != nil {
					fn(ctx, e)
				}
			}
		}
	}
	return domain.LifecycleHooks{
		OnGenerate: call(func(h domain.LifecycleHooks) func(context.Context, *domain.PatternEvent) { return h.OnGenerate }),
		OnCacheHit: call(func(h domain.LifecycleHooks) func(context.Context, *domain.PatternEvent) { return h.OnCacheHit }),
		OnError:    call(func(h domain.LifecycleHooks) func(context.Context, *domain.PatternEvent) { return h.OnError }),
	}
}

// Reason classifies a generation error into a low-cardinality label.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidGeometry):
		return "geometry"
	case errors.Is(err, domain.ErrUnknownStitch):
		return "unknown_stitch"
	case errors.Is(err, domain.ErrInvalidStitch):
		return "invalid_stitch"
	default:
		return "other"
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
