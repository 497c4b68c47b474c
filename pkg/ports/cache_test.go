package ports_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/ports"
)

// jsonCache round-trips every entry through JSON, like a remote cache would.
type jsonCache struct {
	data map[string][]byte
}

func (c *jsonCache) Get(_ context.Context, key string) (*domain.Result, error) {
	raw, ok := c.data[key]
	if !ok {
		return nil, domain.ErrPatternNotCached
	}
	var r domain.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *jsonCache) Set(_ context.Context, key string, result *domain.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *jsonCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *jsonCache) Keys(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func TestPatternCacheContract(t *testing.T) {
	ports.RunPatternCacheContract(t, &jsonCache{data: map[string][]byte{}})
}
