// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide defaults for optional blocks (observability, dashboard, digest).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix OPSBOARD_. After the prefix is removed
	the key is lowercased and "." is used as the nesting delimiter, so

	  OPSBOARD_SERVER.PORT          -> server.port          -> Config.Server.Port
	  OPSBOARD_DASHBOARD.CSM_NAMES  -> dashboard.csm_names  -> Config.Dashboard.CSMNames

	Slice values are comma separated.
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "OPSBOARD_"

// ServiceName tags logs, traces and APM data.
const ServiceName = "opsboard"

// Config is the root configuration object for the application.
//
// Observability and Digest are pointers because they are optional. When they
// are not provided, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Dashboard     DashboardConfig      `koanf:"dashboard"`
	Digest        *DigestConfig        `koanf:"digest"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Usually used to tag logs/traces and switch behavior based on env.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is typically "host:port".
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`
}

// AuthConfig stores the Clerk secret used to verify session tokens.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// IntegrationConfig holds credentials for third-party providers.
type IntegrationConfig struct {
	// ResendAPIKey is used by the email client. Empty disables delivery.
	ResendAPIKey string `koanf:"resend_api_key"`
}

// RateLimitConfig controls the per-IP limiter in front of /api/v1.
// Zero values fall back to the defaults in DefaultRateLimitConfig.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int     `koanf:"burst" validate:"gte=0"`
}

// DefaultRateLimitConfig allows a dashboard page to load all of its tables
// at once without tripping the limiter.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 10,
		Burst:             30,
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it and applies defaults.
//
// Behavior summary:
//   - Loads env vars with prefix OPSBOARD_
//   - Unmarshals into Config and validates struct tags
//   - Injects default observability/dashboard/digest/rate-limit values
//   - Forces the observability service name and environment
//   - Runs the custom Validate() of every optional block
//
// It returns an error rather than exiting so callers (the CLI, tests) decide
// what a bad configuration means for them.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	mainConfig.applyDefaults()

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}
	if err := mainConfig.Dashboard.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dashboard config: %w", err)
	}
	if err := mainConfig.Digest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid digest config: %w", err)
	}

	return mainConfig, nil
}

// listKeys are the koanf paths decoded into []string. Their env values are
// comma separated.
var listKeys = map[string]struct{}{
	"server.cors_allowed_origins":        {},
	"dashboard.csm_names":                {},
	"dashboard.setters":                  {},
	"dashboard.closers":                  {},
	"dashboard.excluded_show_closers":    {},
	"dashboard.excluded_vas":             {},
	"digest.recipients":                  {},
	"observability.health_checks.checks": {},
}

// envKeyValue maps OPSBOARD_DASHBOARD.SETTERS=A,B to dashboard.setters=[A B].
func envKeyValue(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if _, ok := listKeys[key]; ok {
		return key, splitList(value)
	}
	return key, value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// applyDefaults fills every optional block. The observability service name
// and environment are always overwritten so telemetry is tagged consistently.
func (c *Config) applyDefaults() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	digestDefaults := DefaultDigestConfig()
	if c.Digest == nil {
		c.Digest = digestDefaults
	}
	if c.Digest.Cron == "" {
		c.Digest.Cron = digestDefaults.Cron
	}
	if c.Digest.LookbackDays == 0 {
		c.Digest.LookbackDays = digestDefaults.LookbackDays
	}

	defaults := DefaultRateLimitConfig()
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = defaults.Burst
	}

	c.Dashboard.ApplyDefaults()
}

// DSN builds the postgres URL for the configured database.
func (c DatabaseConfig) DSN() string {
	return buildDSN(c)
}
