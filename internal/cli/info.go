package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
	"github.com/matzehuels/mcp-registry/pkg/registry"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>...",
		Short: "Show details about one or more servers",
		Long: `Show details about servers by name.

Each name is resolved to the exact match in the registry, or else to the
first server whose name contains it. Several names are looked up
concurrently and printed in the order given.`,
		Example: `  mcp-registry info io.github.acme/weather
  mcp-registry info weather github -o yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if err := apperrors.ValidateServerName(name); err != nil {
					return err
				}
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := c.newClient(cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			prog := newProgress(c.Logger)
			spin := startSpinner(ctx, cmd.ErrOrStderr(), "Fetching server details...")
			servers, err := lookupServers(ctx, client, args)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Resolved %d servers", len(servers)))

			return newPrinter(cmd.OutOrStdout(), cfg.Output).details(servers)
		}),
	}
}

// lookupServers resolves names concurrently and returns the servers in the
// order of names. The first failure cancels the remaining lookups.
func lookupServers(ctx context.Context, client *registry.Client, names []string) ([]*registry.Server, error) {
	servers := make([]*registry.Server, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(infoConcurrency)

	for i, name := range names {
		g.Go(func() error {
			s, err := client.GetServerByName(ctx, name)
			if err != nil {
				return err
			}
			if s == nil {
				return apperrors.New(apperrors.ErrCodeNotFound, "server %q not found", name)
			}
			log.FromContext(ctx).Debug("resolved server", "query", name, "name", s.Name, "id", s.ID())
			servers[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return servers, nil
}
