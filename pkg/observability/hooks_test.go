package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "search", "memory")
	c.OnCacheMiss(ctx, "server")
	c.OnCacheSet(ctx, "server_by_name", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "registry.modelcontextprotocol.io", "/v0/servers")
	h.OnResponse(ctx, "GET", "registry.modelcontextprotocol.io", "/v0/servers", 200, time.Second)
	h.OnError(ctx, "GET", "registry.modelcontextprotocol.io", "/v0/servers", nil)

	// Retry hooks
	r := NoopRetryHooks{}
	r.OnRetry(ctx, "search", 1, time.Second, errors.New("boom"))
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}
	if _, ok := Retry().(NoopRetryHooks); !ok {
		t.Error("Retry() should return NoopRetryHooks by default")
	}

	// Set custom hooks
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	customRetry := &testRetryHooks{}
	SetRetryHooks(customRetry)
	Retry().OnRetry(context.Background(), "op", 1, 0, nil)
	if customRetry.calls != 1 {
		t.Errorf("custom retry hook calls = %d, want 1", customRetry.calls)
	}

	// Reset and verify
	Reset()
	if _, ok := Retry().(NoopRetryHooks); !ok {
		t.Error("Reset() should restore NoopRetryHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCacheHooks{}
	SetCacheHooks(custom)

	// Setting nil should be ignored
	SetCacheHooks(nil)
	SetHTTPHooks(nil)
	SetRetryHooks(nil)

	if Cache() != custom {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("SetHTTPHooks(nil) should keep the default")
	}

	Reset()
}

// Test implementations
type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

type testHTTPHooks struct {
	NoopHTTPHooks
	requests int
}

type testRetryHooks struct{ calls int }

func (h *testRetryHooks) OnRetry(context.Context, string, int, time.Duration, error) { h.calls++ }
