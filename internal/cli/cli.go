// Package cli implements the stackmover command-line interface.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackmover/pkg/buildinfo"
	"github.com/matzehuels/stackmover/pkg/cache"
	"github.com/matzehuels/stackmover/pkg/config"
	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/mover"
	"github.com/matzehuels/stackmover/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stackmover"

	// modeBoth runs every mode against the same input.
	modeBoth = "both"

	// annotationConfigOptional marks commands that run even when --config
	// names a file that does not exist yet.
	annotationConfigOptional = "config-optional"
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

	logOut     io.Writer
	configPath string
	logFile    string
	cfg        *config.Config
	closers    []io.Closer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Close releases resources opened during command setup, such as the log
// file.
func (c *CLI) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}
	c.closers = nil
	return first
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Stackmover replays crate rearrangement procedures",
		Long: `Stackmover reads a drawing of crate stacks followed by a list of
"move N from S to D" procedures, applies them with a sequential or batch
crane, and reports the crate on top of every stack.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/stackmover/config.toml)")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "also write logs to this file, rotated by size")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file, attaches the log file, and puts the logger
// in the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if errors.Is(err, errors.ErrCodeFileNotFound) && cmd.Annotations[annotationConfigOptional] != "" {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}
	c.cfg = cfg

	logFile := c.logFile
	if logFile == "" {
		logFile = cfg.Log.File
	}
	if logFile != "" {
		closer, err := c.attachLogFile(logFile)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, closer)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// config returns the loaded config, or defaults when setup has not run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, ch)
	return pipeline.NewRunner(ch, keyer, c.Logger), nil
}

// newCache builds the configured cache backend. Redis keys are scoped to the
// application since the server may be shared. An unreachable Redis falls
// back to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	cfg := c.config()
	if noCache || !cfg.Cache.Enabled {
		return cache.NewNullCache(), nil, nil
	}
	if cfg.Cache.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisCacheConfig())
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.Redis.Addr, "err", err)
			return cache.NewNullCache(), nil, nil
		}
		return rc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":"), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, nil, nil
}

// pipelineOptions resolves the run options from flags and config.
func (c *CLI) pipelineOptions(mode mover.Mode, refresh bool) (pipeline.Options, error) {
	ttl, err := c.config().CacheTTL()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{Mode: mode, Refresh: refresh, CacheTTL: ttl}, nil
}

// resolveModes turns the --mode flag into the modes to run. An unset flag
// uses the configured mode.
func (c *CLI) resolveModes(flag string, changed bool) ([]mover.Mode, error) {
	if !changed {
		m, err := c.config().ParsedMode()
		if err != nil {
			return nil, err
		}
		return []mover.Mode{m}, nil
	}
	if flag == modeBoth {
		return mover.Modes, nil
	}
	m, err := mover.ParseMode(flag)
	if err != nil {
		return nil, err
	}
	return []mover.Mode{m}, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory: the configured [cache] dir, or the
// XDG standard location (~/.cache/stackmover/).
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return defaultCacheDir()
}

func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Version
// =============================================================================

func (c *CLI) versionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := buildinfo.Get()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), info)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output build information as JSON")
	return cmd
}
