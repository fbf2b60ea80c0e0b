// Package config loads tada settings from an optional YAML file and
// TADA_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no -config flag is given. It may be absent.
const DefaultFile = "tada.yaml"

// Storage backends.
const (
	StorageMemory = "memory"
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"` // key prefix, default "tada:"
}

type LogConfig struct {
	Mode  string `yaml:"mode"`  // dev (default) or prod
	Level string `yaml:"level"` // debug, info, warn (default), error
}

type Config struct {
	Storage string      `yaml:"storage"` // memory, json, sqlite, redis
	Path    string      `yaml:"path"`    // file for json/sqlite
	Redis   RedisConfig `yaml:"redis"`
	Log     LogConfig   `yaml:"log"`
	Theme   string      `yaml:"theme"` // classic, neon, mono
	Group   bool        `yaml:"group"` // ls grouped by pending/done
}

// DefaultConfig stores todos in ./todos.json and only logs warnings.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageJSON,
		Path:    "todos.json",
		Log:     LogConfig{Mode: "dev", Level: "warn"},
		Theme:   "classic",
	}
}

// LoadConfig overlays the YAML file at path on DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Load reads path (falling back to defaults when path is DefaultFile and
// missing), applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("TADA_STORAGE", &c.Storage)
	str("TADA_PATH", &c.Path)
	str("TADA_REDIS_ADDR", &c.Redis.Addr)
	str("TADA_THEME", &c.Theme)
	str("TADA_LOG_LEVEL", &c.Log.Level)
	if v, ok := lookup("TADA_REDIS_DB"); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("TADA_REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	return nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageMemory:
	case StorageJSON, StorageSQLite:
		if strings.TrimSpace(c.Path) == "" {
			return fmt.Errorf("config: storage %q requires path", c.Storage)
		}
	case StorageRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("config: storage redis requires redis.addr")
		}
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	return nil
}
