package goAuthz

import (
	"fmt"
	"strings"

	"github.com/MrEthical07/goAuthz/permission"
	"github.com/kelseyhightower/envconfig"
)

// Config controls how request adapters locate and check claims.
//
// Config instances are intended to be configured during initialization and
// then treated as immutable.
type Config struct {
	// CookieName is checked first. Empty disables cookie lookup.
	CookieName string `envconfig:"COOKIE_NAME" default:"access_token"`
	// HeaderName carries "Bearer <token>". Empty disables header lookup.
	HeaderName string `envconfig:"HEADER_NAME" default:"Authorization"`
	// RequiredPermissions is a baseline every authenticated request must
	// satisfy, e.g. "api_access". Accepts names or a number.
	RequiredPermissions permission.Set `envconfig:"REQUIRED_PERMISSIONS" default:"none"`

	Metrics MetricsConfig `envconfig:"METRICS"`
	Audit   AuditConfig   `envconfig:"AUDIT"`
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles decision counters and the latency histogram.
type MetricsConfig struct {
	Enabled                 bool `envconfig:"ENABLED" default:"true"`
	EnableLatencyHistograms bool `envconfig:"LATENCY" default:"false"`
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig toggles emission of denial events. Events are queued and
// delivered to the sink by a single background goroutine.
type AuditConfig struct {
	Enabled bool `envconfig:"ENABLED" default:"false"`
	// BufferSize bounds the queue between request handlers and the sink.
	BufferSize int `envconfig:"BUFFER_SIZE" default:"256"`
	// DropIfFull drops events instead of blocking the request when the
	// queue is full. Drops are counted as MetricAuditDropped.
	DropIfFull bool `envconfig:"DROP_IF_FULL" default:"true"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		CookieName:          "access_token",
		HeaderName:          "Authorization",
		RequiredPermissions: permission.Empty(),
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
	}
}

// LoadConfigFromEnv reads a Config from environment variables named
// <PREFIX>_COOKIE_NAME, <PREFIX>_HEADER_NAME, <PREFIX>_REQUIRED_PERMISSIONS,
// <PREFIX>_METRICS_ENABLED, <PREFIX>_METRICS_LATENCY, <PREFIX>_AUDIT_ENABLED,
// <PREFIX>_AUDIT_BUFFER_SIZE and <PREFIX>_AUDIT_DROP_IF_FULL.
func LoadConfigFromEnv(prefix string) (Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that could never find a token.
func (c Config) Validate() error {
	if c.CookieName == "" && c.HeaderName == "" {
		return fmt.Errorf("%w: cookie and header lookup both disabled", ErrInvalidConfig)
	}
	if c.CookieName != "" && strings.ContainsAny(c.CookieName, " \t;,=\"") {
		return fmt.Errorf("%w: invalid cookie name %q", ErrInvalidConfig, c.CookieName)
	}
	if c.HeaderName != "" && strings.ContainsAny(c.HeaderName, " \t:") {
		return fmt.Errorf("%w: invalid header name %q", ErrInvalidConfig, c.HeaderName)
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return fmt.Errorf("%w: audit buffer size must be positive", ErrInvalidConfig)
	}
	if !c.RequiredPermissions.IsValid() {
		return fmt.Errorf("%w: required permissions carry unknown bits", ErrInvalidConfig)
	}
	return nil
}
