package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/holocron/pkg/cache"
	"github.com/matzehuels/holocron/pkg/config"
	errs "github.com/matzehuels/holocron/pkg/errors"
	"github.com/matzehuels/holocron/pkg/explorer"
	"github.com/matzehuels/holocron/pkg/integrations/swapi/swapitest"
	"github.com/matzehuels/holocron/pkg/observability"
)

// captureStdout redirects command output into a buffer for one test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

// newTestCLI returns a CLI pointed at srv with a memory cache and a
// silent logger.
func newTestCLI(t *testing.T, srv *swapitest.Server) *CLI {
	t.Helper()
	cfg := config.Default()
	cfg.API.RootURL = srv.Root()
	cfg.Cache.Dir = t.TempDir()
	c := New(io.Discard, LogInfo)
	c.Config = cfg
	t.Cleanup(observability.Reset)
	return c
}

func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"search", "graph", "prime", "shell", "serve", "cache", "config"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestSetupLoadsConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "holocron.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"debug\"\n[cache]\nbackend = \"none\"\n"), 0o644))
	out := captureStdout(t)

	c := New(io.Discard, LogInfo)
	t.Cleanup(observability.Reset)
	require.NoError(t, execute(t, c, "--config", path, "config", "show"))

	assert.Equal(t, LogDebug, c.Logger.GetLevel())
	assert.Equal(t, config.BackendNone, c.Config.Cache.Backend)
	assert.Contains(t, out.String(), `backend = "none"`)
}

func TestSetupMissingConfigFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	err := execute(t, c, "--config", filepath.Join(t.TempDir(), "missing.toml"), "config", "path")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig), "got %v", err)
}

func TestVerboseForcesDebug(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	c.Verbose = true
	captureStdout(t)

	require.NoError(t, execute(t, c, "config", "show"))
	assert.Equal(t, LogDebug, c.Logger.GetLevel())
}

func TestNewResponseCache(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		backend string
		want    any
	}{
		{config.BackendMemory, &cache.MemoryCache{}},
		{config.BackendFile, &cache.FileCache{}},
		{config.BackendNone, &cache.NullCache{}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			store, err := newResponseCache(ctx, config.CacheConfig{Backend: tt.backend, Dir: t.TempDir()})
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}

	_, err := newResponseCache(ctx, config.CacheConfig{Backend: "tape"})
	assert.Error(t, err)
}

// =============================================================================
// search
// =============================================================================

func TestSearchCommand(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "search", "hope"))

	for _, want := range []string{"A New Hope", "Luke Skywalker", "Darth Vader", "Leia Organa", "Obi-Wan Kenobi"} {
		assert.Contains(t, out.String(), want)
	}
}

func TestSearchCommandJSON(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "search", "kenobi", "--related", "films,planets", "--json"))

	var res explorer.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, "Obi-Wan Kenobi", res.Message)
	assert.ElementsMatch(t, []string{"Stewjon", "A New Hope", "The Empire Strikes Back"}, res.Names)
}

func TestSearchCommandNoMatch(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "search", "jar", "jar", "--json"))

	assert.JSONEq(t, `{"message":"No entity found for query jar jar","names":[]}`, out.String())
}

func TestSearchCommandErrors(t *testing.T) {
	srv := swapitest.NewServer(t)

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"blank query", []string{"search", "  "}, errs.ErrCodeInvalidInput},
		{"control characters", []string{"search", "ke\x00nobi"}, errs.ErrCodeInvalidInput},
		{"unknown type", []string{"search", "kenobi", "--related", "droids"}, errs.ErrCodeInvalidEntityType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t, srv)
			captureStdout(t)
			err := execute(t, c, tt.args...)
			assert.True(t, errs.Is(err, tt.code), "got %v", err)
		})
	}
	assert.Zero(t, srv.TotalHits())
}

func TestSearchCommandServerFailure(t *testing.T) {
	srv := swapitest.NewServer(t)
	srv.SetStatus("/api/planets/", http.StatusInternalServerError)
	c := newTestCLI(t, srv)
	captureStdout(t)

	assert.Error(t, execute(t, c, "search", "kenobi"))
}

// =============================================================================
// graph
// =============================================================================

func TestGraphCommandDOT(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "graph", "kenobi", "--format", "dot", "--related", "planets"))

	dot := out.String()
	assert.True(t, strings.HasPrefix(dot, "digraph G {"), dot)
	assert.Contains(t, dot, "Obi-Wan Kenobi")
	assert.Contains(t, dot, "Stewjon")
	assert.NotContains(t, dot, "A New Hope")
}

func TestGraphCommandOutputFile(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)
	path := filepath.Join(t.TempDir(), "hope.dot")

	require.NoError(t, execute(t, c, "graph", "hope", "-f", "dot", "-o", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Leia Organa")
	assert.Contains(t, out.String(), path)
}

func TestGraphCommandRejectsFormat(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)

	err := execute(t, c, "graph", "kenobi", "--format", "png")
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidFormat), "got %v", err)
	assert.Zero(t, srv.TotalHits())
}

// =============================================================================
// prime
// =============================================================================

func TestPrimeCommand(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "prime"))

	assert.Contains(t, out.String(), "Primed 15 entities")
	assert.Contains(t, out.String(), "people")
	assert.Contains(t, out.String(), "species")
}

func TestPrimeCommandSelectedTypes(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "prime", "--types", "films,people"))

	assert.Contains(t, out.String(), "Primed 6 entities")
	assert.Zero(t, srv.Hits("/api/planets/?page=1"))
}

func TestPrimeCommandFailure(t *testing.T) {
	srv := swapitest.NewServer(t)
	srv.SetStatus("/api/films/", http.StatusInternalServerError)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	err := execute(t, c, "prime")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed films")
	assert.Contains(t, out.String(), "failed")
	assert.Contains(t, out.String(), "Priming failed for 1 of 6 types")
}

// =============================================================================
// cache and config
// =============================================================================

func TestCacheClearFileBackend(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	c.Config.Cache.Backend = config.BackendFile
	out := captureStdout(t)

	fc, err := cache.NewFileCache(c.Config.Cache.Dir)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, fc.Set(ctx, "k", []byte("v"), 0))

	require.NoError(t, execute(t, c, "cache", "clear"))

	_, ok, err := fc.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Cleared the file cache")
	assert.DirExists(t, c.Config.Cache.Dir)
}

func TestCacheClearMemoryBackend(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "cache", "clear"))
	assert.Contains(t, out.String(), "keeps nothing between runs")
}

func TestCachePath(t *testing.T) {
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	c.Config.Cache.Backend = config.BackendFile
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "cache", "path"))
	assert.Equal(t, c.Config.Cache.Dir+"\n", out.String())
}

func TestConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	srv := swapitest.NewServer(t)
	c := newTestCLI(t, srv)
	out := captureStdout(t)

	require.NoError(t, execute(t, c, "config", "path"))
	assert.True(t, strings.HasPrefix(out.String(), filepath.Join(dir, appName, "config.toml")+"\n"), out.String())
}
