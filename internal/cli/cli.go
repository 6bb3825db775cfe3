// Package cli implements the depthplot command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depthplot/pkg/artwork"
	"github.com/matzehuels/depthplot/pkg/config"
	"github.com/matzehuels/depthplot/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "depthplot"

	// configFile is the config file name looked up in the config directory.
	configFile = "config.yaml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output; logs go to Logger.
	Out io.Writer

	configPath string
	cfg        *config.Config
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		cfg:    config.DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() *config.Config { return c.cfg }

// loadConfig reads --config, or the default config file when it exists.
// A missing default file is not an error.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, configFile)
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(nil, nil, loggerFromContext(ctx)), nil
	}
	dir, err := cacheDir()
	if err != nil {
		dir = ""
	}
	cc, err := c.cfg.Cache.Open(ctx, dir)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, loggerFromContext(ctx)), nil
}

// build loads path and lays it out with the configured options.
func (c *CLI) build(ctx context.Context, path string, opts pipeline.Options) ([]artwork.Record, *pipeline.Result, error) {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	records, err := runner.Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	res, err := runner.Build(ctx, records, opts)
	if err != nil {
		return nil, nil, err
	}
	return records, res, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/depthplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/depthplot/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// Empty input keeps the configured formats.
func parseFormats(s string, fallback []string) []string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.Split(s, ",")
}
