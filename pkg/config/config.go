// Package config loads depthplot settings from YAML.
//
// A config file supplies defaults for the CLI and the server; command-line
// flags override it. Missing keys keep the values of [DefaultConfig]:
//
//	formats: [svg, html]
//	width: 1600
//	palette: ./palette.toml
//	cache:
//	  backend: redis
//	  ttl: 24h
//	  redis:
//	    addr: localhost:6379
//	server:
//	  addr: :8080
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/depthplot/pkg/cache"
	"github.com/matzehuels/depthplot/pkg/errors"
	"github.com/matzehuels/depthplot/pkg/pipeline"
)

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

const (
	DefaultServerAddr = ":8080"
	DefaultRedisAddr  = "localhost:6379"
	DefaultMongoURI   = "mongodb://localhost:27017"
)

type Config struct {
	Formats   []string     `yaml:"formats"`
	Output    string       `yaml:"output,omitempty"`
	Width     float64      `yaml:"width"`
	Title     string       `yaml:"title,omitempty"`
	Palette   string       `yaml:"palette,omitempty"`
	Namespace string       `yaml:"namespace,omitempty"`
	Cache     CacheConfig  `yaml:"cache"`
	Server    ServerConfig `yaml:"server"`
}

type CacheConfig struct {
	Backend string        `yaml:"backend"`
	Dir     string        `yaml:"dir,omitempty"`
	TTL     time.Duration `yaml:"ttl"`
	Redis   RedisConfig   `yaml:"redis"`
	Mongo   MongoConfig   `yaml:"mongo"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database,omitempty"`
	Collection string `yaml:"collection,omitempty"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Formats: append([]string(nil), pipeline.DefaultFormats...),
		Width:   pipeline.DefaultWidth,
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     pipeline.DefaultTTL,
			Redis:   RedisConfig{Addr: DefaultRedisAddr},
			Mongo:   MongoConfig{URI: DefaultMongoURI},
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
	}
}

// Load reads path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that YAML decoding cannot.
func (c *Config) Validate() error {
	if c.Width < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width must be positive, got %v", c.Width)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must be positive, got %v", c.Cache.TTL)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "", BackendNone, BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	return nil
}

// PipelineOptions returns the pipeline options the config describes.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Formats:     append([]string(nil), c.Formats...),
		Width:       c.Width,
		Title:       c.Title,
		PalettePath: c.Palette,
		Namespace:   c.Namespace,
		TTL:         c.Cache.TTL,
	}
}

// Open connects the configured cache backend. An empty file cache directory
// falls back to defaultDir.
func (c CacheConfig) Open(ctx context.Context, defaultDir string) (cache.Cache, error) {
	switch strings.ToLower(c.Backend) {
	case "", BackendNone:
		return cache.NewNullCache(), nil
	case BackendFile:
		dir := c.Dir
		if dir == "" {
			dir = defaultDir
		}
		if dir == "" {
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open file cache %s", dir)
		}
		return fc, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open redis cache")
		}
		return rc, nil
	case BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        c.Mongo.URI,
			Database:   c.Mongo.Database,
			Collection: c.Mongo.Collection,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open mongo cache")
		}
		return mc, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Backend)
	}
}
