package goAuthz

import (
	"errors"
	"testing"

	"github.com/MrEthical07/goAuthz/permission"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if cfg.CookieName != "access_token" || cfg.HeaderName != "Authorization" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.EnableLatencyHistograms || cfg.Audit.Enabled {
		t.Fatalf("unexpected toggles: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "cookie only",
			mutate:    func(c *Config) { c.HeaderName = "" },
			wantValid: true,
		},
		{
			name:      "header only",
			mutate:    func(c *Config) { c.CookieName = "" },
			wantValid: true,
		},
		{
			name: "no lookup",
			mutate: func(c *Config) {
				c.CookieName = ""
				c.HeaderName = ""
			},
			wantValid: false,
		},
		{
			name:      "cookie with separator",
			mutate:    func(c *Config) { c.CookieName = "a;b" },
			wantValid: false,
		},
		{
			name:      "header with colon",
			mutate:    func(c *Config) { c.HeaderName = "X-Token:" },
			wantValid: false,
		},
		{
			name:      "custom header",
			mutate:    func(c *Config) { c.HeaderName = "X-Access-Token" },
			wantValid: true,
		},
		{
			name:      "unknown required bits",
			mutate:    func(c *Config) { c.RequiredPermissions = permission.Set(1 << 31) },
			wantValid: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantValid && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadConfigFromEnvDefaults(t *testing.T) {
	cfg, err := LoadConfigFromEnv("AUTHZ_UNSET")
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("AUTHZ_COOKIE_NAME", "sid")
	t.Setenv("AUTHZ_HEADER_NAME", "X-Access-Token")
	t.Setenv("AUTHZ_REQUIRED_PERMISSIONS", "read|api_access")
	t.Setenv("AUTHZ_METRICS_ENABLED", "false")
	t.Setenv("AUTHZ_METRICS_LATENCY", "true")
	t.Setenv("AUTHZ_AUDIT_ENABLED", "true")

	cfg, err := LoadConfigFromEnv("AUTHZ")
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}

	if cfg.CookieName != "sid" || cfg.HeaderName != "X-Access-Token" {
		t.Fatalf("unexpected names: %+v", cfg)
	}
	if cfg.RequiredPermissions != permission.Read|permission.APIAccess {
		t.Fatalf("unexpected required permissions: %v", cfg.RequiredPermissions)
	}
	if cfg.Metrics.Enabled || !cfg.Metrics.EnableLatencyHistograms || !cfg.Audit.Enabled {
		t.Fatalf("unexpected toggles: %+v", cfg)
	}
}

func TestLoadConfigFromEnvNumericPermissions(t *testing.T) {
	t.Setenv("AUTHZ_REQUIRED_PERMISSIONS", "1024")

	cfg, err := LoadConfigFromEnv("AUTHZ")
	if err != nil {
		t.Fatalf("LoadConfigFromEnv: %v", err)
	}
	if cfg.RequiredPermissions != permission.APIAccess {
		t.Fatalf("expected api_access, got %v", cfg.RequiredPermissions)
	}
}

func TestLoadConfigFromEnvRejectsBadValues(t *testing.T) {
	tests := map[string]string{
		"AUTHZ_REQUIRED_PERMISSIONS": "read,teleport",
		"AUTHZ_METRICS_ENABLED":      "maybe",
		"AUTHZ_COOKIE_NAME":          "a b",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfigFromEnv("AUTHZ"); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
