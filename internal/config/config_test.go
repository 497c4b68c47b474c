package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	ttl, err := cfg.Redis.Expiry()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amigurumi.yaml")
	content := `
server:
  addr: ":9090"
pattern:
  cache: redis
  short_threshold: 3
redis:
  addr: "redis:6379"
  ttl: "10m"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, CacheRedis, cfg.Pattern.Cache)
	assert.Equal(t, 3, cfg.Pattern.ShortThreshold)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	// untouched sections keep defaults
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "patterns", cfg.Library.Path)
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amigurumi.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log":{"level":"debug","format":"json"}}`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingFiles(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err, "a missing default file means defaults")
	assert.Equal(t, DefaultConfig().Server, cfg.Server)

	_, err = Load("does-not-exist.yaml")
	assert.Error(t, err, "an explicit path must exist")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"AMIGURUMI_ADDR":            ":7000",
		"AMIGURUMI_CACHE":           "none",
		"AMIGURUMI_REDIS_DB":        "2",
		"AMIGURUMI_SHORT_THRESHOLD": "0",
		"AMIGURUMI_CACHE_SIZE":      "64",
		"AMIGURUMI_METRICS":         "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, CacheNone, cfg.Pattern.Cache)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 0, cfg.Pattern.ShortThreshold)
	assert.Equal(t, 64, cfg.Pattern.CacheSize)
	assert.False(t, cfg.Server.Metrics)

	env["AMIGURUMI_REDIS_DB"] = "two"
	assert.Error(t, DefaultConfig().ApplyEnv(lookup))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Empty Addr", func(c *Config) { c.Server.Addr = "" }},
		{"Unknown Transport", func(c *Config) { c.MCP.Transport = "websocket" }},
		{"Unknown Cache", func(c *Config) { c.Pattern.Cache = "disk" }},
		{"Redis Without Addr", func(c *Config) { c.Pattern.Cache = CacheRedis; c.Redis.Addr = "" }},
		{"Bad TTL", func(c *Config) { c.Redis.TTL = "soon" }},
		{"Negative Threshold", func(c *Config) { c.Pattern.ShortThreshold = -1 }},
		{"Zero Cache Size", func(c *Config) { c.Pattern.CacheSize = 0 }},
		{"Unknown Log Format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
