// Package cli implements the mcp-registry command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mcp-registry/pkg/buildinfo"
	"github.com/matzehuels/mcp-registry/pkg/cache"
	"github.com/matzehuels/mcp-registry/pkg/config"
	"github.com/matzehuels/mcp-registry/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the command name used in help text.
	appName = config.AppName

	// infoConcurrency bounds parallel lookups in "info a b c".
	infoConcurrency = 4
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

	flags globalFlags
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	verbose    bool
	json       bool
	output     string
	configPath string
	baseURL    string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Search and inspect MCP servers in the registry",
		Long:          `mcp-registry searches the MCP server registry and shows details about published servers.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.flags.verbose {
				level = LogDebug
				registerDebugHooks()
			}
			c.SetLogLevel(level)
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.BoolVar(&c.flags.json, "json", false, "output results as JSON (same as -o json)")
	pf.StringVarP(&c.flags.output, "output", "o", "", "output format: table, json or yaml")
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&c.flags.baseURL, "base-url", "", "registry base URL")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable result caching")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute builds the command tree and runs it with args. Nil args means
// os.Args[1:].
func (c *CLI) Execute(ctx context.Context, args []string) error {
	root := c.RootCommand()
	if args != nil {
		root.SetArgs(args)
	}
	return root.ExecuteContext(ctx)
}

// =============================================================================
// Config & Client Factory
// =============================================================================

// loadConfig loads the layered configuration and applies the global flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return nil, err
	}
	if c.flags.baseURL != "" {
		cfg.Client.BaseURL = c.flags.baseURL
	}
	if c.flags.noCache {
		cfg.Cache.Enabled = false
	}
	switch {
	case c.flags.output != "":
		cfg.Output.Format = c.flags.output
	case c.flags.json:
		cfg.Output.Format = config.FormatJSON
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient creates a registry client with the configured persistent store.
func (c *CLI) newClient(cfg *config.Config) (*registry.Client, error) {
	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	client, err := registry.NewFromConfig(cfg,
		registry.WithStore(store),
		registry.WithLogger(c.Logger),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return client, nil
}

// newStore opens the persistent store selected by cache.backend. A disabled
// cache never opens one.
func newStore(cfg *config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		return cache.NewNullStore(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendFile:
		return cache.NewFileStore(cfg.CacheDir())
	case config.BackendRedis:
		return cache.NewRedisStore(cfg.Cache.RedisURL, "")
	default:
		return cache.NewNullStore(), nil
	}
}
