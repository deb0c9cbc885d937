package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

// isolate points every lookup holocron does at empty temp locations.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, swapi.DefaultRootURL, cfg.API.RootURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, BackendMemory, cfg.Cache.Backend)
	assert.Equal(t, filepath.Join(dir, "cache", "holocron"), cfg.Cache.Dir)
	assert.Equal(t, 24*time.Hour, cfg.Cache.ResponseTTL)
	assert.Equal(t, time.Hour, cfg.Cache.NodeTTL)
	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Addr)
	assert.Equal(t, "Hello World", cfg.Server.Greeting)
	assert.Equal(t, []swapi.EntityType{swapi.People}, cfg.RelatedTypes())
	assert.Equal(t, "info", cfg.Log.Level)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "holocron.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
root_url = "http://localhost:9000/api"
timeout = "3s"

[cache]
backend = "file"
response_ttl = "30m"

[search]
related = ["films", "planets"]
`), 0644))

	t.Setenv("HOLOCRON_CACHE_BACKEND", "redis")
	t.Setenv("HOLOCRON_CACHE_REDIS_ADDR", "redis:6379")
	t.Setenv("HOLOCRON_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/api", cfg.API.RootURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ResponseTTL)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend, "env beats file")
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.Equal(t, []swapi.EntityType{swapi.Films, swapi.Planets}, cfg.RelatedTypes())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDefaultPathAndDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config", "holocron"), 0755))
	require.NoError(t, os.WriteFile(DefaultPath(), []byte("[server]\ngreeting = \"Hello there\"\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HOLOCRON_SEARCH_RELATED=people,starships\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("HOLOCRON_SEARCH_RELATED") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Hello there", cfg.Server.Greeting)
	assert.Equal(t, []swapi.EntityType{swapi.People, swapi.Starships}, cfg.RelatedTypes())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load("/does/not/exist.toml")
	require.Error(t, err)
	assert.Equal(t, errs.ErrCodeInvalidConfig, errs.GetCode(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"relative root", func(c *Config) { c.API.RootURL = "/api" }},
		{"non-http root", func(c *Config) { c.API.RootURL = "ftp://swapi.dev/api" }},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"file backend without dir", func(c *Config) { c.Cache.Backend = BackendFile; c.Cache.Dir = "" }},
		{"negative ttl", func(c *Config) { c.Cache.NodeTTL = -time.Minute }},
		{"negative max entries", func(c *Config) { c.Cache.MaxEntries = -1 }},
		{"unknown related type", func(c *Config) { c.Search.Related = []string{"droids"} }},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errs.ErrCodeInvalidConfig, errs.GetCode(err))
		})
	}
}

func TestWriteTOMLRoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.Cache.Backend = BackendFile
	cfg.Cache.ResponseTTL = 90 * time.Minute
	cfg.Search.Related = []string{"species"}

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteTOML(&buf))
	assert.Contains(t, buf.String(), `backend = "file"`)

	path := filepath.Join(dir, "out.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestWriteTOMLMasksPassword(t *testing.T) {
	cfg := Default()
	cfg.Cache.RedisPassword = "hunter2"
	out := cfg.String()
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "********")
	assert.Equal(t, "hunter2", cfg.Cache.RedisPassword, "receiver is not modified")
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	assert.Equal(t, "/tmp/xdg-config/holocron/config.toml", DefaultPath())
	assert.Equal(t, "/tmp/xdg-cache/holocron", DefaultCacheDir())

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "holocron", "config.toml"), DefaultPath())
	assert.Equal(t, filepath.Join(home, ".cache", "holocron"), DefaultCacheDir())
}
