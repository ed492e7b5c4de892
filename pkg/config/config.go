// Package config loads stackmover settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/stackmover/config.toml, falling back to
// ~/.config/stackmover/config.toml. A missing file at the default location
// yields [Default]; command-line flags override whatever the file sets.
//
//	mode = "batch"
//
//	[cache]
//	enabled = true
//	ttl = "24h"
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	file = "/var/log/stackmover.log"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackmover/pkg/cache"
	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/mover"
)

const (
	appName  = "stackmover"
	fileName = "config.toml"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds every setting the CLI and server read from file.
type Config struct {
	Mode   string       `toml:"mode"`
	Cache  CacheConfig  `toml:"cache"`
	Redis  RedisConfig  `toml:"redis"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	TTL     string `toml:"ttl"`
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory. Empty means the XDG cache dir.
	Dir string `toml:"dir"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type LogConfig struct {
	// File, when set, receives log output with size-based rotation.
	File string `toml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Mode: mover.ModeSequential.String(),
		Cache: CacheConfig{
			Enabled: true,
			TTL:     cache.DefaultTTL.String(),
			Backend: BackendFile,
		},
		Redis:  RedisConfig{Addr: "localhost:6379"},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means the default location, where a missing file is not an error. An
// explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes TOML data on top of [Default] and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := c.ParsedMode(); err != nil {
		return err
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be %q or %q, got %q", BackendFile, BackendRedis, c.Cache.Backend)
	}
	if c.Redis.DB < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "redis.db must not be negative")
	}
	return nil
}

// ParsedMode returns the configured transfer mode.
func (c *Config) ParsedMode() (mover.Mode, error) {
	return mover.ParseMode(c.Mode)
}

// CacheTTL returns the configured cache lifetime.
func (c *Config) CacheTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "cache.ttl %q", c.Cache.TTL)
	}
	if ttl <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	return ttl, nil
}

// RedisCacheConfig converts the [redis] table for the cache package.
func (c *Config) RedisCacheConfig() cache.RedisConfig {
	return cache.RedisConfig{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB}
}

// Encode writes the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
