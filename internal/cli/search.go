package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search for MCP servers by name",
		Long: `Search the registry for active servers whose names contain the given term.

Results are printed as a table by default; use --json or -o yaml for
machine-readable output.`,
		Example: `  mcp-registry search weather
  mcp-registry search github --json`,
		Args: cobra.ExactArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := apperrors.ValidateSearchTerm(name); err != nil {
				return err
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
			spin := startSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Searching for %q...", name))
			resp, err := client.SearchServers(ctx, name)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Found %d servers", len(resp.Servers)))

			return newPrinter(cmd.OutOrStdout(), cfg.Output).servers(resp.Servers)
		}),
	}
}
