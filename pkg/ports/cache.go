package ports

import (
	"context"

	"github.com/aretw0/amigurumi/pkg/domain"
)

// PatternCache stores generated results keyed by domain.Request.Key.
// Results are deterministic, so entries never need invalidation; implementations
// may still expire or evict them to bound memory.
type PatternCache interface {
	// Get returns the cached result for key.
	// Returns domain.ErrPatternNotCached on a miss.
	Get(ctx context.Context, key string) (*domain.Result, error)

	// Set stores the result under key, replacing any previous entry.
	Set(ctx context.Context, key string, result *domain.Result) error

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the cached keys in no particular order.
	Keys(ctx context.Context) ([]string, error)
}
