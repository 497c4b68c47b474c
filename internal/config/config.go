// Package config provides configuration loading for the amigurumi binary.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no --config flag is given. Its absence is not an error.
const DefaultFile = "amigurumi.yaml"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config represents the complete configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	MCP     MCPConfig     `yaml:"mcp" json:"mcp"`
	Redis   RedisConfig   `yaml:"redis" json:"redis"`
	Library LibraryConfig `yaml:"library" json:"library"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Pattern PatternConfig `yaml:"pattern" json:"pattern"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	// Addr is the listen address (default: ":8080")
	Addr string `yaml:"addr" json:"addr"`
	// CORSOrigin is sent as Access-Control-Allow-Origin; empty disables CORS headers
	CORSOrigin string `yaml:"cors_origin" json:"cors_origin"`
	// Metrics exposes Prometheus metrics on /metrics
	Metrics bool `yaml:"metrics" json:"metrics"`
}

// MCPConfig configures the MCP server
type MCPConfig struct {
	// Transport is "stdio" or "sse"
	Transport string `yaml:"transport" json:"transport"`
	// Addr is the SSE listen address
	Addr string `yaml:"addr" json:"addr"`
}

// RedisConfig configures the shared pattern cache
type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	// TTL is a Go duration string; empty or "0" keeps entries forever
	TTL string `yaml:"ttl" json:"ttl"`
}

// LibraryConfig configures where saved patterns live
type LibraryConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LogConfig configures the application logger
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// PatternConfig configures generation
type PatternConfig struct {
	// Cache is one of "none", "memory", "redis"
	Cache string `yaml:"cache" json:"cache"`
	// CacheSize is how many patterns the memory cache keeps before evicting
	CacheSize int `yaml:"cache_size" json:"cache_size"`
	// ShortThreshold is the body length below which the short-pattern warning is shown
	ShortThreshold int `yaml:"short_threshold" json:"short_threshold"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       ":8080",
			CORSOrigin: "*",
			Metrics:    true,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Addr:      ":8081",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "amigurumi:pattern:",
			TTL:    "24h",
		},
		Library: LibraryConfig{
			Path: "patterns",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Pattern: PatternConfig{
			Cache:          CacheMemory,
			CacheSize:      1024,
			ShortThreshold: 5,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("mcp.transport must be stdio or sse, got %q", c.MCP.Transport)
	}
	switch c.Pattern.Cache {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when pattern.cache is redis")
		}
	default:
		return fmt.Errorf("pattern.cache must be none, memory or redis, got %q", c.Pattern.Cache)
	}
	if c.Pattern.CacheSize < 1 {
		return fmt.Errorf("pattern.cache_size must be at least 1, got %d", c.Pattern.CacheSize)
	}
	if _, err := c.Redis.Expiry(); err != nil {
		return err
	}
	if c.Pattern.ShortThreshold < 0 {
		return fmt.Errorf("pattern.short_threshold must not be negative")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Expiry parses TTL.
func (r RedisConfig) Expiry() (time.Duration, error) {
	if r.TTL == "" || r.TTL == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("redis.ttl: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("redis.ttl must not be negative")
	}
	return d, nil
}

// LoadFromFile loads configuration from a YAML or JSON file, on top of defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return cfg, nil
}

// Load resolves the effective configuration: defaults, then the file (path, or
// DefaultFile when path is empty), then AMIGURUMI_* environment variables.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	file := path
	if file == "" {
		file = DefaultFile
	}
	loaded, err := LoadFromFile(file)
	switch {
	case err == nil:
		cfg = loaded
	case path == "" && errors.Is(err, os.ErrNotExist):
		// no default file, keep defaults
	default:
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"AMIGURUMI_ADDR":           &c.Server.Addr,
		"AMIGURUMI_CORS_ORIGIN":    &c.Server.CORSOrigin,
		"AMIGURUMI_MCP_TRANSPORT":  &c.MCP.Transport,
		"AMIGURUMI_MCP_ADDR":       &c.MCP.Addr,
		"AMIGURUMI_REDIS_ADDR":     &c.Redis.Addr,
		"AMIGURUMI_REDIS_PASSWORD": &c.Redis.Password,
		"AMIGURUMI_REDIS_PREFIX":   &c.Redis.Prefix,
		"AMIGURUMI_REDIS_TTL":      &c.Redis.TTL,
		"AMIGURUMI_LIBRARY_PATH":   &c.Library.Path,
		"AMIGURUMI_LOG_LEVEL":      &c.Log.Level,
		"AMIGURUMI_LOG_FORMAT":     &c.Log.Format,
		"AMIGURUMI_CACHE":          &c.Pattern.Cache,
	}
	for name, dst := range str {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"AMIGURUMI_REDIS_DB":        &c.Redis.DB,
		"AMIGURUMI_SHORT_THRESHOLD": &c.Pattern.ShortThreshold,
		"AMIGURUMI_CACHE_SIZE":      &c.Pattern.CacheSize,
	}
	for name, dst := range ints {
		if v, ok := lookup(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = n
		}
	}

	if v, ok := lookup("AMIGURUMI_METRICS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AMIGURUMI_METRICS: %w", err)
		}
		c.Server.Metrics = b
	}
	return nil
}
