package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard service
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Reference ReferenceConfig `mapstructure:"reference"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Mock      MockConfig      `mapstructure:"mock"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Locale    LocaleConfig    `mapstructure:"locale"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// ReferenceConfig pins the instant substituting for "now" so all date-range
// math is deterministic. Empty means the process start time, captured once.
type ReferenceConfig struct {
	Date string `mapstructure:"date"`
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// DashboardConfig holds dashboard assembly configuration
type DashboardConfig struct {
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`
}

// MockConfig controls the simulated retrieval latency of the mock store
type MockConfig struct {
	LatencyMS int `mapstructure:"latency_ms"`
}

// CORSConfig holds allowed origins for the SPA shell
type CORSConfig struct {
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// LocaleConfig holds the default UI locale
type LocaleConfig struct {
	Default string `mapstructure:"default"`
}

// ResolveReference parses the configured reference date. Both RFC3339 and
// plain dates are accepted; fallback is the supplied now value.
func (c *Config) ResolveReference(now time.Time) (time.Time, error) {
	if c.Reference.Date == "" {
		return now, nil
	}
	if t, err := time.ParseInLocation(time.RFC3339, c.Reference.Date, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", c.Reference.Date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date %q: %w", c.Reference.Date, err)
	}
	return t, nil
}

// CacheTTL returns the dashboard cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Dashboard.CacheTTLMinutes) * time.Minute
}

// MockLatency returns the simulated retrieval latency as a duration.
func (c *Config) MockLatency() time.Duration {
	return time.Duration(c.Mock.LatencyMS) * time.Millisecond
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Automatically load environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("") // No prefix, read exact variable names

	// Bind specific environment variables
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")

	_ = v.BindEnv("reference.date", "REFERENCE_DATE")

	// Redis
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")
	_ = v.BindEnv("redis.enabled", "REDIS_ENABLED")

	_ = v.BindEnv("nats.url", "NATS_URL")

	_ = v.BindEnv("dashboard.cache_ttl_minutes", "DASHBOARD_CACHE_TTL")

	_ = v.BindEnv("mock.latency_ms", "MOCK_LATENCY_MS")

	_ = v.BindEnv("cors.allowed_origins", "ALLOWED_ORIGINS")

	_ = v.BindEnv("locale.default", "DEFAULT_LOCALE")

	// Set defaults
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "service-dashboard")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8010")

	// Reference instant: empty pins to process start time
	v.SetDefault("reference.date", "")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", false)

	// NATS: empty disables the event subscriber
	v.SetDefault("nats.url", "")

	// Dashboard
	v.SetDefault("dashboard.cache_ttl_minutes", 5)

	// Mock store
	v.SetDefault("mock.latency_ms", 150)

	// CORS
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://localhost:5173")

	// Locale
	v.SetDefault("locale.default", "en")
}
