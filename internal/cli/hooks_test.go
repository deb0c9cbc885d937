package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/holocron/pkg/observability"
)

func TestRegisterHooksAtDebug(t *testing.T) {
	t.Cleanup(observability.Reset)
	var buf bytes.Buffer
	registerHooks(newLogger(&buf, log.DebugLevel))

	ctx := context.Background()
	observability.Cache().OnCacheHit(ctx, observability.CacheNode)
	observability.HTTP().OnResponse(ctx, "GET", "swapi.dev", "/api/people/1/", 200, 12*time.Millisecond)
	observability.Explorer().OnSeedComplete(ctx, "films", 0, time.Second, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "cache hit")
	assert.Contains(t, out, "kind=node")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "seed failed")
}

func TestRegisterHooksAboveDebugResets(t *testing.T) {
	t.Cleanup(observability.Reset)
	registerHooks(newLogger(io.Discard, log.DebugLevel))
	registerHooks(newLogger(io.Discard, log.InfoLevel))

	assert.IsType(t, observability.NoopCacheHooks{}, observability.Cache())
	assert.IsType(t, observability.NoopHTTPHooks{}, observability.HTTP())
	assert.IsType(t, observability.NoopExplorerHooks{}, observability.Explorer())
}
