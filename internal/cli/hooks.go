package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/holocron/pkg/observability"
)

// logHooks reports library events as debug log lines.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.ExplorerHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
	_ observability.HTTPHooks     = logHooks{}
)

// registerHooks routes every observability event to logger. Events are
// only formatted when the logger is at debug level.
func registerHooks(logger *log.Logger) {
	if logger.GetLevel() > log.DebugLevel {
		observability.Reset()
		return
	}
	h := logHooks{logger: logger}
	observability.SetExplorerHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnSearchStart(_ context.Context, query string) {
	h.logger.Debug("search", "query", query)
}

func (h logHooks) OnSearchComplete(_ context.Context, query, matched string, related int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("search failed", "query", query, "err", err)
		return
	}
	h.logger.Debug("search done", "query", query, "match", matched, "related", related, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnSeedStart(_ context.Context, entityType string) {
	h.logger.Debug("seed", "type", entityType)
}

func (h logHooks) OnSeedComplete(_ context.Context, entityType string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("seed failed", "type", entityType, "err", err)
		return
	}
	h.logger.Debug("seed done", "type", entityType, "nodes", n, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
