package registry

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mcp-registry/pkg/cache"
	"github.com/matzehuels/mcp-registry/pkg/observability"
)

// HeaderRequestID carries the operation's request id to the registry.
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}
type opLoggerKey struct{}

// WithRequestID returns a context whose registry requests carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored in ctx.
func RequestIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// begin sets up the request id and logger for a public operation. Nested
// operations (get-by-name calling search) reuse the outer ones.
func (c *Client) begin(ctx context.Context) (context.Context, *log.Logger) {
	if l, ok := ctx.Value(opLoggerKey{}).(*log.Logger); ok {
		return ctx, l
	}

	id, ok := RequestIDFrom(ctx)
	if !ok {
		id = uuid.NewString()
		ctx = WithRequestID(ctx, id)
	}
	base := c.logger
	if base == nil {
		base = log.FromContext(ctx)
	}
	logger := base.With("request_id", id)
	ctx = context.WithValue(ctx, opLoggerKey{}, logger)
	return log.WithContext(ctx, logger), logger
}

// cached runs the lookup pipeline for one key: memory, then store, then fetch.
// Only successful fetches are cached.
//
// Concurrent misses for the same key share one fetch. The shared fetch is
// detached from every caller's cancellation and bounded by the client's fetch
// timeout instead; each caller stops waiting when its own ctx is done.
func (c *Client) cached(ctx context.Context, key, kind string, fetch func(context.Context) (result, error)) (result, error) {
	logger := log.FromContext(ctx)
	hooks := observability.Cache()

	if !c.memory.Enabled() {
		return fetch(ctx)
	}

	if r, ok := c.memory.Get(key); ok {
		hooks.OnCacheHit(ctx, kind, "memory")
		return r, nil
	}
	if r, ok := c.loadStore(ctx, key); ok {
		hooks.OnCacheHit(ctx, kind, "store")
		c.promote(key, r)
		return r, nil
	}
	hooks.OnCacheMiss(ctx, kind)
	if err := ctx.Err(); err != nil {
		return result{}, err
	}

	ch := c.group.DoChan(key, func() (any, error) {
		fctx, cancel := c.detach(ctx)
		defer cancel()
		r, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		if ttl := c.memory.TTL(); ttl > 0 {
			r.Expires = c.now().Add(ttl)
		}
		c.memory.Set(key, r)
		size := c.saveStore(fctx, key, r)
		hooks.OnCacheSet(fctx, kind, size)
		return r, nil
	})

	select {
	case <-ctx.Done():
		return result{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return result{}, res.Err
		}
		if res.Shared {
			logger.Debug("shared in-flight fetch", "key", key)
		}
		return res.Val.(result), nil
	}
}

// detach returns a context for a shared fetch: it keeps ctx's values (request
// id, logger) but not its cancellation, and expires after the fetch timeout.
func (c *Client) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if c.fetchTimeout > 0 {
		return context.WithTimeout(ctx, c.fetchTimeout)
	}
	return context.WithCancel(ctx)
}

// promote copies a store hit into memory for the rest of its lifetime.
// Entries written without a deadline get the full TTL.
func (c *Client) promote(key string, r result) {
	if r.Expires.IsZero() {
		c.memory.Set(key, r)
		return
	}
	c.memory.SetWithTTL(key, r, r.Expires.Sub(c.now()))
}

func (c *Client) loadStore(ctx context.Context, key string) (result, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.FromContext(ctx).Warn("cache store read failed", "key", key, "err", err)
		return result{}, false
	}
	if !ok {
		return result{}, false
	}
	var r result
	if err := cache.Decode(data, &r); err != nil {
		log.FromContext(ctx).Warn("discarding undecodable cache entry", "key", key, "err", err)
		_ = c.store.Delete(ctx, key)
		return result{}, false
	}
	if !r.Expires.IsZero() && c.now().After(r.Expires) {
		return result{}, false
	}
	return r, true
}

// saveStore writes r to the store and returns the encoded size.
func (c *Client) saveStore(ctx context.Context, key string, r result) int {
	data, err := cache.Encode(r)
	if err != nil {
		log.FromContext(ctx).Warn("cache encode failed", "key", key, "err", err)
		return 0
	}
	if err := c.store.Set(ctx, key, data, c.memory.TTL()); err != nil {
		log.FromContext(ctx).Warn("cache store write failed", "key", key, "err", err)
		return 0
	}
	return len(data)
}
