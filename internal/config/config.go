// Package config loads the application configuration.
//
// Values are layered: built-in defaults, then an optional YAML file, then a
// .env file (via godotenv, never overriding variables already set), then the
// process environment. The resulting Config is validated fail-closed; the only
// mandatory value is the NewsData API key.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"headlines/internal/domain/entity"
	pkgconfig "headlines/pkg/config"
)

// Bounds for the cache TTL.
const (
	minCacheTTL = time.Second
	maxCacheTTL = 24 * time.Hour
)

// ErrMissingAPIKey is returned when no NewsData API key is configured.
var ErrMissingAPIKey = errors.New("NEWSDATA_API_KEY is not set")

// ConfigError reports an unusable configuration detected at startup.
type ConfigError struct {
	Key string
	Err error
}

// Error returns the offending key and the reason.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Key, e.Err)
}

// Unwrap returns the underlying reason.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config holds the full application configuration.
type Config struct {
	NewsData NewsDataConfig `yaml:"newsdata"`
	Cache    CacheConfig    `yaml:"cache"`
	Web      WebConfig      `yaml:"web"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Prewarm  PrewarmConfig  `yaml:"prewarm"`
	Log      LogConfig      `yaml:"log"`

	// Version is reported by /health and the version command.
	Version string `yaml:"-"`
}

// NewsDataConfig configures the upstream news API client.
type NewsDataConfig struct {
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// WebConfig configures the HTTP server used in web mode.
type WebConfig struct {
	Addr            string        `yaml:"addr"`
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// TrustedProxies lists the IPs or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers identify the client. Empty means RemoteAddr only.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

// TrustedProxyPrefixes parses TrustedProxies.
func (w WebConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	return pkgconfig.ParsePrefixes(w.TrustedProxies)
}

// DefaultsConfig holds query defaults applied when the caller omits a value.
type DefaultsConfig struct {
	Language string `yaml:"language"`
	Limit    int    `yaml:"limit"`
}

// PrewarmConfig configures the optional cache pre-warm job.
// An empty Schedule disables the job.
type PrewarmConfig struct {
	Schedule string `yaml:"schedule"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// LoadOptions selects the files consulted by Load.
type LoadOptions struct {
	// ConfigFile is an optional YAML file. Empty means none.
	ConfigFile string
	// DotEnvFile is loaded into the environment when present. Default: ".env".
	DotEnvFile string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		NewsData: NewsDataConfig{
			BaseURL:  "https://newsdata.io/api/1",
			Timeout:  10 * time.Second,
			PageSize: 10,
		},
		Cache: CacheConfig{
			TTL: 10 * time.Minute,
		},
		Web: WebConfig{
			Addr:            ":8000",
			RateLimit:       5,
			RateBurst:       10,
			ShutdownTimeout: 5 * time.Second,
		},
		Defaults: DefaultsConfig{
			Language: string(entity.DefaultLanguage),
			Limit:    entity.DefaultLimit,
		},
		Log: LogConfig{
			Level: "info",
		},
		Version: "dev",
	}
}

// Load builds the configuration from defaults, the optional YAML file, the
// .env file and the environment, then validates it.
// A missing API key is reported as a *ConfigError wrapping ErrMissingAPIKey.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := cfg.readFile(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	dotEnv := opts.DotEnvFile
	if dotEnv == "" {
		dotEnv = ".env"
	}
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &ConfigError{Key: dotEnv, Err: err}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Key: path, Err: err}
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Key: path, Err: fmt.Errorf("parse yaml: %w", err)}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.NewsData.APIKey = getEnvOrDefault("NEWSDATA_API_KEY", c.NewsData.APIKey)
	c.NewsData.BaseURL = getEnvOrDefault("NEWSDATA_BASE_URL", c.NewsData.BaseURL)
	c.NewsData.Timeout = getEnvDuration("NEWSDATA_TIMEOUT", c.NewsData.Timeout)
	c.NewsData.PageSize = getEnvInt("NEWSDATA_PAGE_SIZE", c.NewsData.PageSize)

	c.Cache.TTL = getEnvDuration("CACHE_TTL", c.Cache.TTL)

	c.Web.Addr = getEnvOrDefault("WEB_ADDR", c.Web.Addr)
	c.Web.RateLimit = getEnvFloat("WEB_RATE_LIMIT", c.Web.RateLimit)
	c.Web.RateBurst = getEnvInt("WEB_RATE_BURST", c.Web.RateBurst)
	c.Web.ShutdownTimeout = getEnvDuration("WEB_SHUTDOWN_TIMEOUT", c.Web.ShutdownTimeout)
	if proxies := getEnvOrDefault("WEB_TRUSTED_PROXIES", ""); proxies != "" {
		c.Web.TrustedProxies = strings.Split(proxies, ",")
	}

	c.Defaults.Language = getEnvOrDefault("DEFAULT_LANGUAGE", c.Defaults.Language)
	c.Defaults.Limit = getEnvInt("DEFAULT_LIMIT", c.Defaults.Limit)

	c.Prewarm.Schedule = getEnvOrDefault("PREWARM_SCHEDULE", c.Prewarm.Schedule)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Version = getEnvOrDefault("VERSION", c.Version)
}

// Validate checks configuration correctness.
func (c *Config) Validate() error {
	if c.NewsData.APIKey == "" {
		return &ConfigError{Key: "NEWSDATA_API_KEY", Err: ErrMissingAPIKey}
	}

	if c.NewsData.BaseURL == "" {
		return &ConfigError{Key: "NEWSDATA_BASE_URL", Err: errors.New("cannot be empty")}
	}

	if err := pkgconfig.ValidatePositiveDuration(c.NewsData.Timeout); err != nil {
		return &ConfigError{Key: "NEWSDATA_TIMEOUT", Err: err}
	}

	if c.NewsData.PageSize < 1 || c.NewsData.PageSize > 50 {
		return &ConfigError{Key: "NEWSDATA_PAGE_SIZE", Err: fmt.Errorf("must be between 1 and 50, got %d", c.NewsData.PageSize)}
	}

	if err := pkgconfig.ValidateDurationRange(c.Cache.TTL, minCacheTTL, maxCacheTTL); err != nil {
		return &ConfigError{Key: "CACHE_TTL", Err: err}
	}

	if err := pkgconfig.ValidatePositiveDuration(c.Web.ShutdownTimeout); err != nil {
		return &ConfigError{Key: "WEB_SHUTDOWN_TIMEOUT", Err: err}
	}

	if c.Web.RateLimit <= 0 || c.Web.RateBurst <= 0 {
		return &ConfigError{Key: "WEB_RATE_LIMIT", Err: errors.New("rate and burst must be positive")}
	}

	if _, err := c.Web.TrustedProxyPrefixes(); err != nil {
		return &ConfigError{Key: "WEB_TRUSTED_PROXIES", Err: err}
	}

	if _, err := entity.ParseLanguage(c.Defaults.Language); err != nil {
		return &ConfigError{Key: "DEFAULT_LANGUAGE", Err: err}
	}

	if c.Defaults.Limit < entity.MinLimit || c.Defaults.Limit > entity.MaxLimit {
		return &ConfigError{Key: "DEFAULT_LIMIT", Err: fmt.Errorf("must be between %d and %d, got %d", entity.MinLimit, entity.MaxLimit, c.Defaults.Limit)}
	}

	return nil
}

// DefaultInput returns the query input used when nothing else is specified,
// e.g. by the pre-warm job.
func (c *Config) DefaultInput() entity.QueryInput {
	return entity.QueryInput{
		Language: c.Defaults.Language,
		Limit:    c.Defaults.Limit,
	}
}
