package registry

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/mcp-registry/pkg/buildinfo"
	"github.com/matzehuels/mcp-registry/pkg/cache"
	"github.com/matzehuels/mcp-registry/pkg/config"
	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
	"github.com/matzehuels/mcp-registry/pkg/httputil"
)

// Client reads server entries from an MCP registry.
//
// Every read goes through the same pipeline: derive a cache key, consult the
// in-memory cache, then the persistent store, and only then call the registry
// under the retry strategy. Successful results, including "not found"
// results, are cached; failures are not.
//
// All methods are safe for concurrent use. Returned values are shared with the
// cache and must not be modified.
type Client struct {
	http     *http.Client
	baseURL  string
	headers  map[string]string
	strategy httputil.Strategy
	memory   *cache.Expiring[result]
	store    cache.Store
	logger   *log.Logger
	group    singleflight.Group
	now      func() time.Time

	// fetchTimeout bounds a shared fetch, which outlives the caller that
	// started it. Zero means unbounded.
	fetchTimeout time.Duration
}

// result is the cached value for every query kind. Exactly one of Search and
// Server is set for a found result. A lookup that found nothing is stored as
// a result with Server == nil, which is distinct from a cache miss.
//
// Expires is the deadline the result was cached with. A store hit is promoted
// into memory only for the time it has left.
type result struct {
	Search  *SearchResponse `msgpack:"search,omitempty"`
	Server  *Server         `msgpack:"server,omitempty"`
	Expires time.Time       `msgpack:"expires"`
}

// Option configures a [Client].
type Option func(*options)

type options struct {
	httpClient *http.Client
	strategy   httputil.Strategy
	ttl        time.Duration
	enabled    bool
	store      cache.Store
	logger     *log.Logger
	userAgent  string
	now        func() time.Time

	fetchTimeout    time.Duration
	fetchTimeoutSet bool
}

// WithHTTPClient replaces the HTTP client. The default is
// httputil.NewClient(httputil.DefaultTimeouts()).
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithStrategy sets the retry strategy.
func WithStrategy(s httputil.Strategy) Option {
	return func(o *options) { o.strategy = s }
}

// WithCacheTTL sets how long results stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithCache enables or disables caching. A disabled client neither reads nor
// writes the in-memory cache or the store.
func WithCache(enabled bool) Option {
	return func(o *options) { o.enabled = enabled }
}

// WithStore adds a persistent store behind the in-memory cache. Keys are
// scoped to the client's base URL. The client takes ownership and closes the
// store in [Client.Close].
func WithStore(s cache.Store) Option {
	return func(o *options) { o.store = s }
}

// WithLogger sets the logger. By default the logger stored in each call's
// context is used (see log.WithContext).
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithFetchTimeout bounds a network fetch shared by concurrent callers. The
// default is the longest time the retry strategy can take given the HTTP
// client's timeout (see [httputil.Strategy.Budget]). Zero means unbounded.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) { o.fetchTimeout, o.fetchTimeoutSet = d, true }
}

// WithClock replaces time.Now for cache expiration.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a client for the registry at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if err := apperrors.ValidateURL(baseURL); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "registry base URL")
	}

	o := options{
		strategy:  httputil.DefaultStrategy(),
		ttl:       cache.DefaultTTL,
		enabled:   true,
		userAgent: buildinfo.UserAgent(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.strategy.Validate(); err != nil {
		return nil, err
	}
	if o.httpClient == nil {
		o.httpClient = httputil.NewClient(httputil.DefaultTimeouts())
	}
	if !o.fetchTimeoutSet {
		o.fetchTimeout = o.strategy.Budget(o.httpClient.Timeout)
	}

	base := strings.TrimRight(baseURL, "/")
	return &Client{
		http:    o.httpClient,
		baseURL: base,
		headers: map[string]string{
			"User-Agent": o.userAgent,
			"Accept":     "application/json",
		},
		strategy: o.strategy,
		memory:   cache.NewExpiring[result](o.ttl, cache.WithEnabled(o.enabled), cache.WithClock(o.now)),
		store:    cache.NewScopedStore(o.store, storePrefix(base)),
		logger:   o.logger,
		now:      o.now,

		fetchTimeout: o.fetchTimeout,
	}, nil
}

// NewFromConfig creates a client from the [client], [retry] and [cache]
// sections of cfg. opts are applied last.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithHTTPClient(httputil.NewClient(cfg.Timeouts())),
		WithStrategy(cfg.Strategy()),
		WithCacheTTL(cfg.TTL()),
		WithCache(cfg.Cache.Enabled),
		WithUserAgent(cfg.Client.UserAgent),
	}
	return New(cfg.Client.BaseURL, append(base, opts...)...)
}

// storePrefix scopes persistent keys by registry so that results from
// different base URLs never collide.
func storePrefix(baseURL string) string {
	return "registry:" + cache.Hash([]byte(baseURL))[:12] + ":"
}

// BaseURL returns the registry base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// CacheEnabled reports whether results are cached.
func (c *Client) CacheEnabled() bool { return c.memory.Enabled() }

// CleanupCache drops expired entries from the in-memory cache and returns how
// many were removed. Nothing calls it automatically.
func (c *Client) CleanupCache() int {
	return c.memory.CleanupExpired()
}

// ClearCache empties the in-memory cache and the persistent store. It returns
// the number of store entries removed.
func (c *Client) ClearCache(ctx context.Context) (int, error) {
	c.memory.Clear()
	return c.store.Clear(ctx)
}

// PruneStore removes expired entries from the persistent store when the
// backend supports it.
func (c *Client) PruneStore(ctx context.Context) (int, error) {
	if p, ok := c.store.(cache.Pruner); ok {
		return p.Prune(ctx)
	}
	return 0, nil
}

// Close releases idle connections and closes the persistent store.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return c.store.Close()
}
