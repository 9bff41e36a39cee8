package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// redis, activity tracking and rate limiting are off when the host is empty
	RedisHost                string   `toml:"redis_host"`
	RedisPort                string   `toml:"redis_port"`
	PredictRateLimitPerMin   int      `toml:"predict_rate_limit_per_min"`
	TrustedProxyHops         int      `toml:"trusted_proxy_hops"`
	AnalyticsCacheSizeMB     int      `toml:"analytics_cache_size_mb"`
	AnalyticsCacheTTLSeconds int      `toml:"analytics_cache_ttl_seconds"`
	AllowedOrigins           []string `toml:"allowed_origins"`
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c *Config) AnalyticsCacheTTL() time.Duration {
	return time.Duration(c.AnalyticsCacheTTLSeconds) * time.Second
}

func (c *Config) validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if c.PrometheusMetricsPort == "" {
		errs = append(errs, errors.New("prometheus metrics port not set"))
	}
	if c.PredictRateLimitPerMin < 0 {
		errs = append(errs, fmt.Errorf("invalid predict rate limit: %d", c.PredictRateLimitPerMin))
	}
	if c.TrustedProxyHops < 0 {
		errs = append(errs, fmt.Errorf("invalid trusted proxy hops: %d", c.TrustedProxyHops))
	}
	if c.AnalyticsCacheSizeMB < 0 || c.AnalyticsCacheTTLSeconds < 0 {
		errs = append(errs, errors.New("analytics cache size and ttl must not be negative"))
	}
	return errors.Join(errs...)
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config of env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return fromToml(&t, env)
}

// Parse is Load for in-memory TOML.
func Parse(env, data string) (*Config, error) {
	var t Toml
	if _, err := toml.Decode(data, &t); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return fromToml(&t, env)
}

func fromToml(t *Toml, env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing", env)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}
	return cfg, nil
}
