package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/holocron/pkg/buildinfo"
	"github.com/matzehuels/holocron/pkg/cache"
	"github.com/matzehuels/holocron/pkg/config"
	"github.com/matzehuels/holocron/pkg/explorer"
	"github.com/matzehuels/holocron/pkg/integrations"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "holocron"

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

	// Config is resolved before any subcommand runs. Tests may set it
	// directly, in which case loading is skipped.
	Config *config.Config

	// Verbose forces debug logging regardless of log.level.
	Verbose bool

	configPath string
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
		Use:   appName,
		Short: "Holocron explores the Star Wars API from the terminal",
		Long: `Holocron searches the Star Wars API and prints the matched entity together
with the names of the entities it references (films, people, planets...).
Responses and derived nodes are cached, so repeated lookups stay local.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.primeCommand())
	root.AddCommand(c.shellCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())

	return root
}

// setup loads the configuration, applies its log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.Config == nil {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
	}
	level := c.Config.LogLevel()
	if c.Verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	registerHooks(c.Logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Session Factory
// =============================================================================

// session bundles the stores and clients one command works with.
type session struct {
	responses cache.Cache
	client    *swapi.Client
	explorer  *explorer.Explorer
}

// newSession builds the response cache selected by the config, a fresh node
// cache and an explorer on top of them. Callers must Close the session.
func (c *CLI) newSession(ctx context.Context) (*session, error) {
	cfg := c.Config
	responses, err := newResponseCache(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}

	nodes := cache.NewMap[*swapi.Node](cfg.Cache.MaxEntries, cfg.Cache.NodeTTL)
	transport := integrations.NewClient(cfg.API.Timeout, map[string]string{
		"User-Agent": cfg.API.UserAgent,
	})
	client := swapi.NewClient(transport, responses, nodes, swapi.Config{
		RootURL:     cfg.API.RootURL,
		ResponseTTL: cfg.Cache.ResponseTTL,
	})

	c.Logger.Debug("session ready",
		"root", client.RootURL(),
		"cache", cfg.Cache.Backend,
		"timeout", cfg.API.Timeout)

	return &session{
		responses: responses,
		client:    client,
		explorer:  explorer.New(client, c.Logger),
	}, nil
}

func (s *session) Close() error {
	return s.responses.Close()
}

// newResponseCache opens the configured response cache backend.
func newResponseCache(ctx context.Context, cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return cache.NewMemoryCache(cfg.MaxEntries), nil
	case config.BackendFile:
		return cache.NewFileCache(cfg.Dir)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case config.BackendNone:
		return cache.NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// =============================================================================
// Flag Helpers
// =============================================================================

// relatedTypes parses --related values, falling back to the configured
// default when the flag is unset.
func (c *CLI) relatedTypes(values []string) ([]swapi.EntityType, error) {
	if len(values) == 0 {
		return c.Config.RelatedTypes(), nil
	}
	return swapi.ParseEntityTypes(values)
}
