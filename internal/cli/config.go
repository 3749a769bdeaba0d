package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"attrsort/pkg/cache"
	"attrsort/pkg/compare"
)

// Config is the TOML configuration file. Flags override file values; the
// zero value of every section is a working default.
type Config struct {
	Sort       SortConfig       `toml:"sort"`
	Hints      []HintConfig     `toml:"hints"`
	Comparator ComparatorConfig `toml:"comparator"`
	Cache      CacheConfig      `toml:"cache"`
}

// SortConfig holds default sort options.
type SortConfig struct {
	Mode          string `toml:"mode"`
	SkipCanonical bool   `toml:"skip_canonical"`
	MaxIter       int    `toml:"max_iter"`
}

// HintConfig is one precedence list. Entries may carry trailing '*'.
type HintConfig struct {
	Entries []string `toml:"entries"`
}

// ComparatorConfig points at the model inference endpoint.
type ComparatorConfig struct {
	Endpoint   string `toml:"endpoint"`
	TimeoutStr string `toml:"timeout"`
}

// Timeout parses the configured timeout, falling back to the comparator
// default on absence or parse failure.
func (c ComparatorConfig) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.TimeoutStr); err == nil && d > 0 {
		return d
	}
	return compare.DefaultTimeout
}

// CacheConfig selects the comparator result cache backend.
type CacheConfig struct {
	// Backend is one of "file" (default), "redis", "mongo", "none".
	Backend string `toml:"backend"`
	Dir     string `toml:"dir"`
	Addr    string `toml:"addr"`
	URI     string `toml:"uri"`
	TTLStr  string `toml:"ttl"`
}

// DefaultCacheTTL keeps comparator results for a week; the model is pure
// per pair, so entries only go stale when the model itself changes.
const DefaultCacheTTL = 7 * 24 * time.Hour

// TTLDuration parses the configured TTL, defaulting to DefaultCacheTTL.
func (c CacheConfig) TTLDuration() time.Duration {
	if d, err := time.ParseDuration(c.TTLStr); err == nil && d > 0 {
		return d
	}
	return DefaultCacheTTL
}

// Open constructs the configured cache backend.
func (c CacheConfig) Open() (cache.Cache, error) {
	switch c.Backend {
	case "", "file":
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(context.Background(), cache.RedisOptions{Addr: c.Addr})
	case "mongo":
		return cache.NewMongoCache(context.Background(), cache.MongoOptions{URI: c.URI})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, mongo, none)", c.Backend)
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// DefaultConfigPath returns the XDG config file location
// (~/.config/attrsort/config.toml).
func DefaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path, or the default location when
// path is empty. A missing default file is not an error; a missing explicit
// file is.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultConfigPath(); err != nil {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
