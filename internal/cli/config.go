package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holocron/pkg/config"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Long: `Print the configuration after defaults, the config file and HOLOCRON_*
environment variables are applied. The output is a valid config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.Config.WriteTOML(stdout)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.DefaultPath()
			fmt.Fprintln(stdout, path)
			if c.configPath != "" && c.configPath != path {
				printDetail("overridden by --config %s", c.configPath)
			}
			printNextStep("Start from the current settings", appName+" config show > "+path)
			return nil
		},
	})

	return cmd
}
