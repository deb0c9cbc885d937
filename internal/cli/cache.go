package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/holocron/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the API response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached API response from the configured backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.Config.Cache
			switch cfg.Backend {
			case config.BackendMemory, config.BackendNone:
				printInfo("The %s backend keeps nothing between runs", cfg.Backend)
				return nil
			case config.BackendFile:
				if _, err := os.Stat(cfg.Dir); os.IsNotExist(err) {
					printInfo("Cache is empty")
					return nil
				}
			}

			store, err := newResponseCache(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open %s cache: %w", cfg.Backend, err)
			}
			defer store.Close()

			if err := store.Flush(cmd.Context()); err != nil {
				return fmt.Errorf("flush %s cache: %w", cfg.Backend, err)
			}

			printSuccess("Cleared the %s cache", cfg.Backend)
			switch cfg.Backend {
			case config.BackendFile:
				printDetail("Directory: %s", cfg.Dir)
			case config.BackendRedis:
				printDetail("Keys: %s* on %s", cfg.RedisPrefix, cfg.RedisAddr)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(stdout, c.Config.Cache.Dir)
			if c.Config.Cache.Backend != config.BackendFile {
				printWarning("cache.backend is %q; the directory is used by the file backend only", c.Config.Cache.Backend)
			}
			return nil
		},
	}
}
