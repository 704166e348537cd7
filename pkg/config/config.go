// Package config loads mcp-registry settings.
//
// Values are layered: built-in defaults, then the TOML config file, then
// MCP_REGISTRY_* and MCP_CLI_* environment variables. Command-line flags are
// applied on top by the CLI. Call [Config.Validate] after the last layer.
//
// Example config.toml:
//
//	[client]
//	base_url = "https://registry.modelcontextprotocol.io"
//	timeout = "30s"
//
//	[retry]
//	max_retries = 3
//	delay = 1
//	backoff_factor = 2.0
//
//	[cache]
//	ttl = "5m"
//	backend = "file"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mcp-registry/pkg/buildinfo"
	apperrors "github.com/matzehuels/mcp-registry/pkg/errors"
)

// Defaults.
const (
	DefaultBaseURL        = "https://registry.modelcontextprotocol.io"
	DefaultTimeout        = 30 * time.Second
	DefaultConnectTimeout = 10 * time.Second
	DefaultReadTimeout    = 30 * time.Second
	DefaultPoolTimeout    = 5 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = time.Second
	DefaultBackoffFactor  = 2.0
	DefaultMaxRetryDelay  = 30 * time.Second
	DefaultCacheTTL       = 300 * time.Second
	DefaultDescWidth      = 60
	DefaultJSONIndent     = 2
)

// Cache store backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// AppName names the config and cache directories.
const AppName = "mcp-registry"

// Config is the complete client and CLI configuration.
type Config struct {
	Client ClientConfig `toml:"client"`
	Retry  RetryConfig  `toml:"retry"`
	Cache  CacheConfig  `toml:"cache"`
	Output OutputConfig `toml:"output"`
}

// ClientConfig controls the HTTP client.
type ClientConfig struct {
	BaseURL        string   `toml:"base_url"`
	Timeout        Duration `toml:"timeout"`
	ConnectTimeout Duration `toml:"connect_timeout"`
	ReadTimeout    Duration `toml:"read_timeout"`
	PoolTimeout    Duration `toml:"pool_timeout"`
	UserAgent      string   `toml:"user_agent"`
}

// RetryConfig controls retry with exponential backoff.
type RetryConfig struct {
	MaxRetries    int      `toml:"max_retries"`
	Delay         Duration `toml:"delay"`
	BackoffFactor float64  `toml:"backoff_factor"`
	MaxDelay      Duration `toml:"max_delay"`
}

// CacheConfig controls the in-memory cache and the optional persistent store.
type CacheConfig struct {
	Enabled  bool     `toml:"enabled"`
	TTL      Duration `toml:"ttl"`
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	Format            string `toml:"format"`
	TableMaxDescWidth int    `toml:"table_max_desc_width"`
	JSONIndent        int    `toml:"json_indent"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			BaseURL:        DefaultBaseURL,
			Timeout:        Duration(DefaultTimeout),
			ConnectTimeout: Duration(DefaultConnectTimeout),
			ReadTimeout:    Duration(DefaultReadTimeout),
			PoolTimeout:    Duration(DefaultPoolTimeout),
			UserAgent:      buildinfo.UserAgent(),
		},
		Retry: RetryConfig{
			MaxRetries:    DefaultMaxRetries,
			Delay:         Duration(DefaultRetryDelay),
			BackoffFactor: DefaultBackoffFactor,
			MaxDelay:      Duration(DefaultMaxRetryDelay),
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     Duration(DefaultCacheTTL),
			Backend: BackendNone,
		},
		Output: OutputConfig{
			Format:            FormatTable,
			TableMaxDescWidth: DefaultDescWidth,
			JSONIndent:        DefaultJSONIndent,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path and the
// environment. The result is not validated so that callers can apply further
// overrides first.
//
// An empty path means [DefaultPath]; a missing default file is not an error.
// An explicitly given path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		err := cfg.loadFile(path)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "config file %s", path)
		default:
			return nil, err
		}
	}

	if err := cfg.loadEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// DefaultPath returns $XDG_CONFIG_HOME/mcp-registry/config.toml, falling back
// to the OS user config directory. It returns "" when neither is known.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, AppName, "config.toml")
}

// DefaultCacheDir returns $XDG_CACHE_HOME/mcp-registry, falling back to the
// OS user cache directory and finally to a temp directory.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(os.TempDir(), AppName)
}

// CacheDir returns the configured file store directory or the default.
func (c *Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return DefaultCacheDir()
}

// Encode writes c as TOML.
func (c *Config) Encode() (string, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(c); err != nil {
		return "", err
	}
	return sb.String(), nil
}
