// Package config loads holocron's layered configuration.
//
// Values are resolved, lowest precedence first, from built-in defaults, a
// TOML file, a .env file in the working directory, and HOLOCRON_*
// environment variables. Nested keys map to variables by upper-casing and
// replacing dots with underscores:
//
//	cache.backend      -> HOLOCRON_CACHE_BACKEND
//	api.timeout        -> HOLOCRON_API_TIMEOUT
//	search.related     -> HOLOCRON_SEARCH_RELATED=people,films
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/matzehuels/holocron/pkg/buildinfo"
	"github.com/matzehuels/holocron/pkg/cache"
	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/integrations"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

const (
	appName   = "holocron"
	envPrefix = "HOLOCRON"
	fileName  = "config.toml"
)

// Response cache backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config holds all configuration for the application.
type Config struct {
	API    APIConfig    `mapstructure:"api" toml:"api"`
	Cache  CacheConfig  `mapstructure:"cache" toml:"cache"`
	Server ServerConfig `mapstructure:"server" toml:"server"`
	Search SearchConfig `mapstructure:"search" toml:"search"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`
}

// APIConfig configures access to the remote API.
type APIConfig struct {
	RootURL   string        `mapstructure:"root_url" toml:"root_url"`
	Timeout   time.Duration `mapstructure:"timeout" toml:"timeout"` // per request, 0 disables
	UserAgent string        `mapstructure:"user_agent" toml:"user_agent"`
}

// CacheConfig configures the response and node caches.
type CacheConfig struct {
	Backend       string        `mapstructure:"backend" toml:"backend"` // memory, file, redis, none
	Dir           string        `mapstructure:"dir" toml:"dir"`         // file backend directory
	ResponseTTL   time.Duration `mapstructure:"response_ttl" toml:"response_ttl"`
	NodeTTL       time.Duration `mapstructure:"node_ttl" toml:"node_ttl"`
	MaxEntries    int           `mapstructure:"max_entries" toml:"max_entries"` // memory stores, 0 = unbounded
	RedisAddr     string        `mapstructure:"redis_addr" toml:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password" toml:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db" toml:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix" toml:"redis_prefix"`
}

// ServerConfig configures the greeting listener.
type ServerConfig struct {
	Addr     string `mapstructure:"addr" toml:"addr"`
	Greeting string `mapstructure:"greeting" toml:"greeting"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Related []string `mapstructure:"related" toml:"related"` // entity types whose names searches resolve
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
}

// setDefaults registers every key with viper, which also makes each key
// visible to AutomaticEnv.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.root_url", swapi.DefaultRootURL)
	v.SetDefault("api.timeout", integrations.DefaultTimeout)
	v.SetDefault("api.user_agent", buildinfo.UserAgent())

	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.dir", DefaultCacheDir())
	v.SetDefault("cache.response_ttl", cache.DefaultResponseTTL)
	v.SetDefault("cache.node_ttl", cache.DefaultNodeTTL)
	v.SetDefault("cache.max_entries", 0)
	v.SetDefault("cache.redis_addr", "127.0.0.1:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.redis_prefix", cache.DefaultRedisPrefix)

	v.SetDefault("server.addr", "127.0.0.1:3000")
	v.SetDefault("server.greeting", "Hello World")

	v.SetDefault("search.related", []string{string(swapi.People)})

	v.SetDefault("log.level", "info")
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load resolves the configuration. When path is empty the file at
// [DefaultPath] is read if it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "load .env")
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("toml")

	switch {
	case path != "":
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
		}
	default:
		if p := DefaultPath(); fileExists(p) {
			v.SetConfigFile(p)
			if err := v.ReadInConfig(); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", p)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := errs.ValidateURL(c.API.RootURL); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "api.root_url")
	}
	u, err := url.Parse(c.API.RootURL)
	if err != nil || u.Host == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "api.root_url must be an absolute URL, got %q", c.API.RootURL)
	}
	if c.API.Timeout < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "api.timeout must not be negative")
	}

	switch c.Cache.Backend {
	case BackendMemory, BackendNone, BackendRedis:
	case BackendFile:
		if c.Cache.Dir == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache.backend %q (want memory, file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.ResponseTTL < 0 || c.Cache.NodeTTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache TTLs must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.max_entries must not be negative")
	}

	if _, err := swapi.ParseEntityTypes(c.Search.Related); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "search.related")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.New(errs.ErrCodeInvalidConfig, "unknown log.level %q", c.Log.Level)
	}
	return nil
}

// RelatedTypes returns search.related as entity types.
func (c *Config) RelatedTypes() []swapi.EntityType {
	types, _ := swapi.ParseEntityTypes(c.Search.Related)
	return types
}

// LogLevel returns log.level as a logger level, info when unparseable.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// WriteTOML encodes the configuration as TOML. The Redis password is
// masked.
func (c *Config) WriteTOML(w io.Writer) error {
	out := *c
	if out.Cache.RedisPassword != "" {
		out.Cache.RedisPassword = "********"
	}
	return toml.NewEncoder(w).Encode(out)
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/holocron/config.toml or ~/.config/holocron/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName
	}
	return filepath.Join(home, ".config", appName, fileName)
}

// DefaultCacheDir returns the file cache directory,
// $XDG_CACHE_HOME/holocron or ~/.cache/holocron.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := c.WriteTOML(&b); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
