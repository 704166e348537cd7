package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mcp-registry/pkg/observability"
)

// debugHooks logs cache and HTTP events at debug level through the logger
// carried by the event's context. Retries are already logged by the retry
// executor.
type debugHooks struct{}

func registerDebugHooks() {
	observability.SetCacheHooks(debugHooks{})
	observability.SetHTTPHooks(debugHooks{})
}

func (debugHooks) OnCacheHit(ctx context.Context, keyType, tier string) {
	log.FromContext(ctx).Debug("cache hit", "kind", keyType, "tier", tier)
}

func (debugHooks) OnCacheMiss(ctx context.Context, keyType string) {
	log.FromContext(ctx).Debug("cache miss", "kind", keyType)
}

func (debugHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	log.FromContext(ctx).Debug("cache set", "kind", keyType, "bytes", size)
}

func (debugHooks) OnRequest(ctx context.Context, method, host, path string) {
	log.FromContext(ctx).Debug("http request", "method", method, "host", host, "path", path)
}

func (debugHooks) OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration) {
	log.FromContext(ctx).Debug("http response", "method", method, "path", path, "status", statusCode,
		"duration", duration.Round(time.Millisecond))
}

func (debugHooks) OnError(ctx context.Context, method, host, path string, err error) {
	log.FromContext(ctx).Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
