// Package config loads collabgraph settings from TOML.
//
// Every field has a default, so a config file only names what it changes:
//
//	[graph]
//	representations = ["adjacency_list", "incidence"]
//
//	[weights]
//	merge = 5
//
//	[report]
//	top = 10
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "72h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override file values.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/collabgraph/pkg/cache"
	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/graph"
	"github.com/matzehuels/collabgraph/pkg/interaction"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Defaults.
const (
	DefaultTop        = 5
	DefaultServerAddr = "127.0.0.1:8080"
	DefaultRedisAddr  = "localhost:6379"
)

// Config is the full set of settings.
type Config struct {
	Graph   GraphConfig         `toml:"graph"`
	Weights interaction.Weights `toml:"weights"`
	Report  ReportConfig        `toml:"report"`
	Cache   CacheConfig         `toml:"cache"`
	Server  ServerConfig        `toml:"server"`
}

// GraphConfig selects the structural representations a store maintains.
type GraphConfig struct {
	Representations []string `toml:"representations"`
}

// ReportConfig controls report sizes.
type ReportConfig struct {
	Top int `toml:"top"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"` // empty means the user cache dir
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"` // zero means per-entry defaults
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "90m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Graph: GraphConfig{
			Representations: []string{
				graph.AdjacencyMatrix.String(),
				graph.AdjacencyList.String(),
				graph.Incidence.String(),
			},
		},
		Weights: interaction.DefaultWeights(),
		Report:  ReportConfig{Top: DefaultTop},
		Cache:   CacheConfig{Backend: BackendFile, RedisAddr: DefaultRedisAddr},
		Server:  ServerConfig{Addr: DefaultServerAddr},
	}
}

// Load reads the file at path over the defaults and validates the result.
// An empty path returns the defaults. Keys the file sets but Config does not
// know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if _, err := c.Kinds(); err != nil {
		return err
	}
	if err := c.Weights.Validate(); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "weights")
	}
	if c.Report.Top < 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "report.top must be at least 1, got %d", c.Report.Top)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Kinds parses the configured representations. An empty list selects all.
func (c Config) Kinds() ([]graph.RepresentationKind, error) {
	kinds := make([]graph.RepresentationKind, 0, len(c.Graph.Representations))
	for _, name := range c.Graph.Representations {
		k, err := graph.ParseRepresentationKind(name)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "graph.representations")
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// EntryTTL returns the configured entry lifetime, or fallback when unset.
func (c CacheConfig) EntryTTL(fallback time.Duration) time.Duration {
	if c.TTL.Duration > 0 {
		return c.TTL.Duration
	}
	return fallback
}

// RedisConfig converts the cache section for [cache.NewRedisCache].
func (c CacheConfig) RedisConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}
