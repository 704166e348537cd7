package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mcp-registry/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the result cache",
		Long: `Manage the persistent result cache.

The backend is chosen by cache.backend in the config file or
MCP_REGISTRY_CACHE_BACKEND: none (default), file or redis.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached results for the configured registry",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !storeConfigured(cfg) {
				printWarning(w, "No persistent cache configured (backend %q)", cfg.Cache.Backend)
				return nil
			}

			client, err := c.newClient(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			n, err := client.ClearCache(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess(w, "Cleared %d cached entries", n)
			printDetail(w, "Backend: %s", describeStore(cfg))
			return nil
		}),
	}
}

// cachePruneCommand creates the "cache prune" subcommand.
func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired entries from the cache",
		Long: `Remove expired entries from the file cache. Redis expires entries on its
own, so prune has nothing to do there.`,
		Args: cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !storeConfigured(cfg) {
				printWarning(w, "No persistent cache configured (backend %q)", cfg.Cache.Backend)
				return nil
			}

			client, err := c.newClient(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			n, err := client.PruneStore(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess(w, "Pruned %d expired entries", n)
			printDetail(w, "Backend: %s", describeStore(cfg))
			return nil
		}),
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.CacheDir())
			if cfg.Cache.Backend != config.BackendFile {
				printInfo(cmd.ErrOrStderr(), "cache.backend is %q; the file cache is not in use", cfg.Cache.Backend)
			}
			return nil
		}),
	}
}

func storeConfigured(cfg *config.Config) bool {
	return cfg.Cache.Enabled && cfg.Cache.Backend != config.BackendNone
}

func describeStore(cfg *config.Config) string {
	switch cfg.Cache.Backend {
	case config.BackendFile:
		return "file " + cfg.CacheDir()
	case config.BackendRedis:
		return "redis"
	default:
		return cfg.Cache.Backend
	}
}
