package config

import (
	"time"

	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
	"github.com/matzehuels/mcp-registry/pkg/httputil"
)

// Validate checks every section and returns the first problem found as an
// INVALID_CONFIG error.
func (c *Config) Validate() error {
	if err := apperrors.ValidateURL(c.Client.BaseURL); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "client.base_url")
	}
	if c.Client.UserAgent == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "client.user_agent cannot be empty")
	}
	for _, d := range []struct {
		name  string
		value Duration
	}{
		{"client.timeout", c.Client.Timeout},
		{"client.connect_timeout", c.Client.ConnectTimeout},
		{"client.read_timeout", c.Client.ReadTimeout},
		{"client.pool_timeout", c.Client.PoolTimeout},
		{"cache.ttl", c.Cache.TTL},
	} {
		if d.value < 0 {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "%s must be >= 0, got %s", d.name, d.value)
		}
	}

	if err := c.Strategy().Validate(); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return apperrors.New(apperrors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown cache backend %q (want none, file or redis)", c.Cache.Backend)
	}

	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown output format %q (want table, json or yaml)", c.Output.Format)
	}
	if c.Output.TableMaxDescWidth < 4 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "output.table_max_desc_width must be >= 4, got %d", c.Output.TableMaxDescWidth)
	}
	if c.Output.JSONIndent < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "output.json_indent must be >= 0, got %d", c.Output.JSONIndent)
	}
	return nil
}

// Strategy returns the retry strategy described by the [retry] section.
func (c *Config) Strategy() httputil.Strategy {
	return httputil.Strategy{
		MaxRetries:    c.Retry.MaxRetries,
		BaseDelay:     c.Retry.Delay.Std(),
		BackoffFactor: c.Retry.BackoffFactor,
		MaxDelay:      c.Retry.MaxDelay.Std(),
	}
}

// Timeouts returns the HTTP client timeouts described by the [client] section.
func (c *Config) Timeouts() httputil.Timeouts {
	return httputil.Timeouts{
		Total:   c.Client.Timeout.Std(),
		Connect: c.Client.ConnectTimeout.Std(),
		Read:    c.Client.ReadTimeout.Std(),
		Idle:    c.Client.PoolTimeout.Std(),
	}
}

// TTL returns the cache time-to-live.
func (c *Config) TTL() time.Duration { return c.Cache.TTL.Std() }
