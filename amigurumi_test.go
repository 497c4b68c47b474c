package amigurumi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/amigurumi"
	"github.com/aretw0/amigurumi/pkg/adapters/memory"
	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scRequest(c int) domain.Request {
	return domain.Request{Circumference: c, Stitch: domain.StitchSingle, Joined: true, Mode: domain.ModeAbbrev}
}

func TestGenerate(t *testing.T) {
	gen := amigurumi.New()

	result, err := gen.Generate(context.Background(), scRequest(20))
	require.NoError(t, err)

	assert.Equal(t, []int{5, 10, 14, 17, 19, 20, 19, 17, 14, 10, 5}, result.Rows)
	assert.Equal(t, 9, result.StuffingRow)
	assert.Len(t, result.Lines(), 12)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "Magic ring, 5 sc, join. Ch 1. (5)", result.Lines()[0])
}

func TestGenerate_ShortPatternWarning(t *testing.T) {
	result, err := amigurumi.New().Generate(context.Background(), scRequest(5))
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, amigurumi.WarningTitle, result.Warnings[0].Title)
	assert.Equal(t, amigurumi.ShortPatternMessage, result.Warnings[0].Message)

	disabled, err := amigurumi.New(amigurumi.WithShortPatternThreshold(0)).Generate(context.Background(), scRequest(5))
	require.NoError(t, err)
	assert.Empty(t, disabled.Warnings)
}

func TestGenerate_Errors(t *testing.T) {
	gen := amigurumi.New()
	ctx := context.Background()

	_, err := gen.Generate(ctx, scRequest(4))
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
	assert.Equal(t, "The circumference you entered is too small to generate a pattern in single crochet.", err.Error())

	_, err = gen.Generate(ctx, domain.Request{Circumference: 20, Stitch: "bobble"})
	assert.ErrorIs(t, err, domain.ErrUnknownStitch)

	_, err = gen.Generate(ctx, domain.Request{Circumference: 20, Stitch: domain.StitchCustom})
	assert.ErrorIs(t, err, domain.ErrInvalidStitch)
}

func TestGenerate_VeryWideCustomStitch(t *testing.T) {
	req, err := request.Parse(request.Raw{Circumference: "1000", Stitch: "custom", Width: "1e12", Height: "1"})
	require.NoError(t, err)

	gen := amigurumi.New()
	_, err = gen.Generate(context.Background(), req)
	var geomErr *domain.InvalidGeometryError
	require.ErrorAs(t, err, &geomErr)
	assert.Contains(t, geomErr.Message, "The wider your custom stitch is, the shorter your first row is going to be.")

	_, err = gen.Rows(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
}

func TestGenerate_CacheAndHooks(t *testing.T) {
	cache := memory.NewCache()
	var generated, hits, failures int
	hooks := domain.LifecycleHooks{
		OnGenerate: func(_ context.Context, e *domain.PatternEvent) {
			generated++
			assert.Equal(t, domain.EventPatternGenerated, e.Type)
			assert.Equal(t, "20-sc-joined", e.Key)
			assert.Equal(t, 11, e.Rows)
		},
		OnCacheHit: func(_ context.Context, e *domain.PatternEvent) { hits++ },
		OnError: func(_ context.Context, e *domain.PatternEvent) {
			failures++
			assert.ErrorIs(t, e.Err, domain.ErrInvalidGeometry)
		},
	}
	gen := amigurumi.New(amigurumi.WithCache(cache), amigurumi.WithLifecycleHooks(hooks))
	ctx := context.Background()

	first, err := gen.Generate(ctx, scRequest(20))
	require.NoError(t, err)

	req := scRequest(20)
	req.Mode = domain.ModeDesc
	second, err := gen.Generate(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Pattern, second.Pattern)
	assert.Equal(t, domain.ModeDesc, second.Request.Mode, "cached results follow the caller's display mode")
	assert.Equal(t, "Magic ring, 5 single crochet, join. Chain 1. 5 stitches total.", second.Lines()[0])

	_, _ = gen.Generate(ctx, scRequest(2))

	assert.Equal(t, 1, generated)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, failures)

	keys, err := cache.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"20-sc-joined"}, keys)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (*domain.Result, error) {
	return nil, errors.New("connection refused")
}
func (failingCache) Set(context.Context, string, *domain.Result) error {
	return errors.New("connection refused")
}
func (failingCache) Delete(context.Context, string) error   { return nil }
func (failingCache) Keys(context.Context) ([]string, error) { return nil, nil }

func TestGenerate_CacheFailureIsNotFatal(t *testing.T) {
	gen := amigurumi.New(amigurumi.WithCache(failingCache{}))

	result, err := gen.Generate(context.Background(), scRequest(20))
	require.NoError(t, err)
	assert.Len(t, result.Rows, 11)
}

func TestRowsAndStitches(t *testing.T) {
	gen := amigurumi.New()

	rows, err := gen.Rows(context.Background(), scRequest(3))
	require.NoError(t, err)
	assert.Equal(t, []int{3}, rows)

	stitches := gen.Stitches()
	require.Len(t, stitches, 4)
	assert.Equal(t, "sc", stitches[0].Key)
	assert.Equal(t, "tr", stitches[3].Key)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, amigurumi.Version)
	assert.NotContains(t, amigurumi.Version, "\n")
}
