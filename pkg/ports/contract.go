package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPatternCacheContract runs a suite of tests to verify that a PatternCache
// implementation adheres to the defined interface contract.
func RunPatternCacheContract(t *testing.T, cache PatternCache) {
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405")

	result := &domain.Result{
		Request: domain.Request{Circumference: 5, Stitch: domain.StitchSingle, Joined: true, Mode: domain.ModeAbbrev},
		Stitch:  domain.SingleCrochet(),
		Pattern: domain.Pattern{
			Title: domain.Same("Crochet pattern for a sphere"),
			Body: []domain.Text{
				{Abbrev: "Magic ring, 4 sc, join. Ch 1. (4)", Desc: "Magic ring, 4 single crochet, join. Chain 1. 4 stitches total."},
				domain.Same("Stuff the sphere if desired."),
			},
		},
		Rows:        []int{4, 5, 4},
		StuffingRow: 3,
		Warnings:    []domain.Warning{{Title: "Warning", Message: "short"}},
	}

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, result), "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, result.Rows, got.Rows)
		assert.Equal(t, result.StuffingRow, got.StuffingRow)
		assert.Equal(t, result.Pattern, got.Pattern)
		assert.Equal(t, result.Stitch, got.Stitch)
		assert.Equal(t, result.Warnings, got.Warnings)
	})

	t.Run("Get Returns Copy", func(t *testing.T) {
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		got.Rows[0] = 99

		again, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 4, again.Rows[0], "mutating a returned result must not change the cache")
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrPatternNotCached)
	})

	t.Run("Keys", func(t *testing.T) {
		other := key + "-other"
		require.NoError(t, cache.Set(ctx, other, result))
		defer func() { _ = cache.Delete(ctx, other) }()

		keys, err := cache.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, key)
		assert.Contains(t, keys, other)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrPatternNotCached, "Get after Delete should return ErrPatternNotCached")

		assert.NoError(t, cache.Delete(ctx, key), "deleting a missing key is not an error")
	})
}
