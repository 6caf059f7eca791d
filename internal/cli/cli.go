package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/collabgraph/pkg/buildinfo"
	"github.com/matzehuels/collabgraph/pkg/cache"
	"github.com/matzehuels/collabgraph/pkg/config"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "collabgraph"

	// configEnv names a config file when --config is not given.
	configEnv = "COLLABGRAPH_CONFIG"
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

	// Config is loaded before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Collabgraph analyzes who works with whom in a software project",
		Long:         `Collabgraph builds a weighted social graph from collaboration events (merges, reviews, comments, mentions, reactions) and reports influencers, communities, connection level and the users holding the project together.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (TOML; default $"+configEnv+")")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.closestCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		path = os.Getenv(configEnv)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisConfig())
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/collabgraph/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the config.
func (c *CLI) baseOptions() (pipeline.Options, error) {
	kinds, err := c.Config.Kinds()
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		Weights:     c.Config.Weights,
		Kinds:       kinds,
		Top:         c.Config.Report.Top,
		GraphTTL:    c.Config.Cache.EntryTTL(cache.TTLGraph),
		ArtifactTTL: c.Config.Cache.EntryTTL(cache.TTLArtifact),
		Logger:      c.Logger,
	}, nil
}

// buildGraph loads and builds the dataset at path behind a spinner.
func (c *CLI) buildGraph(ctx context.Context, runner *pipeline.Runner, path string, opts pipeline.Options) (*pipeline.Graph, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Building graph...")
	spinner.Start()

	ds, err := runner.Load(ctx, path)
	if err != nil {
		spinner.Stop()
		return nil, err
	}
	g, err := runner.Build(ctx, ds, opts)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	edges, _ := g.Store.EdgeCount()
	prog.done("Built graph")
	printStats(g.Store.VertexCount(), edges, g.Cached)
	return g, nil
}

// splitList parses a comma-separated flag value.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
