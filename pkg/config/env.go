package config

import (
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
)

// Environment variable prefixes.
const (
	EnvPrefixClient = "MCP_REGISTRY_"
	EnvPrefixCLI    = "MCP_CLI_"
)

type lookupFunc func(string) (string, bool)

// loadEnv overrides fields from environment variables that are set and
// non-empty.
func (c *Config) loadEnv(lookup lookupFunc) error {
	e := envReader{lookup: lookup}

	e.str(EnvPrefixClient+"BASE_URL", &c.Client.BaseURL)
	e.duration(EnvPrefixClient+"TIMEOUT", &c.Client.Timeout)
	e.duration(EnvPrefixClient+"CONNECT_TIMEOUT", &c.Client.ConnectTimeout)
	e.duration(EnvPrefixClient+"READ_TIMEOUT", &c.Client.ReadTimeout)
	e.duration(EnvPrefixClient+"POOL_TIMEOUT", &c.Client.PoolTimeout)
	e.str(EnvPrefixClient+"USER_AGENT", &c.Client.UserAgent)

	e.integer(EnvPrefixClient+"MAX_RETRIES", &c.Retry.MaxRetries)
	e.duration(EnvPrefixClient+"RETRY_DELAY", &c.Retry.Delay)
	e.float(EnvPrefixClient+"BACKOFF_FACTOR", &c.Retry.BackoffFactor)
	e.duration(EnvPrefixClient+"MAX_RETRY_DELAY", &c.Retry.MaxDelay)

	e.duration(EnvPrefixClient+"CACHE_TTL", &c.Cache.TTL)
	e.boolean(EnvPrefixClient+"ENABLE_CACHE", &c.Cache.Enabled)
	e.str(EnvPrefixClient+"CACHE_BACKEND", &c.Cache.Backend)
	e.str(EnvPrefixClient+"CACHE_DIR", &c.Cache.Dir)
	e.str(EnvPrefixClient+"REDIS_URL", &c.Cache.RedisURL)

	e.str(EnvPrefixCLI+"OUTPUT_FORMAT", &c.Output.Format)
	e.integer(EnvPrefixCLI+"TABLE_MAX_DESC_WIDTH", &c.Output.TableMaxDescWidth)
	e.integer(EnvPrefixCLI+"JSON_INDENT", &c.Output.JSONIndent)

	return e.err
}

// envReader keeps the first parse error so callers can read every variable
// and check once.
type envReader struct {
	lookup lookupFunc
	err    error
}

func (e *envReader) get(name string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := e.lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(name, value string, err error) {
	e.err = apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid %s=%q", name, value)
}

func (e *envReader) str(name string, dst *string) {
	if v, ok := e.get(name); ok {
		*dst = v
	}
}

func (e *envReader) integer(name string, dst *int) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = n
}

func (e *envReader) float(name string, dst *float64) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = f
}

func (e *envReader) boolean(name string, dst *bool) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "1", "t", "true", "yes", "on":
		*dst = true
	case "0", "f", "false", "no", "off":
		*dst = false
	default:
		e.fail(name, v, strconv.ErrSyntax)
	}
}

func (e *envReader) duration(name string, dst *Duration) {
	v, ok := e.get(name)
	if !ok {
		return
	}
	d, err := ParseDuration(v)
	if err != nil {
		e.fail(name, v, err)
		return
	}
	*dst = Duration(d)
}
