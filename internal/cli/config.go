package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mcp-registry/pkg/config"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after applying defaults, the config file,
environment variables and command-line flags.

The output is a valid config file:

  mcp-registry config > ~/.config/mcp-registry/config.toml`,
		Args: cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, args []string) error {
			if showPath {
				path := c.flags.configPath
				if path == "" {
					path = config.DefaultPath()
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.Encode()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "print the config file path instead")
	return cmd
}
