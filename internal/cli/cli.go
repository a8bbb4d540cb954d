package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mzsvg/mzsvg/pkg/cache"
	"github.com/mzsvg/mzsvg/pkg/config"
	"github.com/mzsvg/mzsvg/pkg/errors"
	"github.com/mzsvg/mzsvg/pkg/observability"
	"github.com/mzsvg/mzsvg/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mzsvg"

	// configEnv names a configuration file when --config is not given.
	configEnv = "MZSVG_CONFIG"
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

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the loaded configuration.
func (c *CLI) Config() *config.Config { return c.config }

// loadConfig reads the file named by --config, or by $MZSVG_CONFIG when
// the flag is empty. Without either the defaults apply.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		return nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Logger.Debug("Loaded config", "path", path, "hash", cfg.Hash()[:12])
	c.config = cfg
	return nil
}

// installHooks routes render, cache and server events to the logger.
func (c *CLI) installHooks() {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetServerHooks(hooks)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.config.Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache picks the backend: none when disabled, Redis when a URL is
// configured and reachable, the file cache otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config.Cache
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err == nil {
			c.Logger.Debug("Using redis cache", "url", cfg.RedisURL)
			return rc, nil
		}
		c.Logger.Warn("Redis cache unavailable, using file cache", "err", err)
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("No cache directory, caching disabled", "err", errors.UserMessage(err))
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the per-user default
// (~/.cache/mzsvg on Linux).
func (c *CLI) cacheDir() (string, error) {
	if c.config.Cache.Dir != "" {
		return c.config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	formats := strings.Split(s, ",")
	for i, f := range formats {
		formats[i] = strings.TrimSpace(f)
	}
	return formats
}
