// Package config provides configuration management for the reports gateway.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// MinRevokedSyncSeconds is the floor for the revocation poll interval.
const MinRevokedSyncSeconds = 5

// Config holds all configuration for the gateway.
type Config struct {
	// Server settings
	Port string

	// REST backend settings
	RestBaseURL        string
	RestToken          string
	HTTPTimeoutSeconds int

	// Auth settings
	JWTSecret          string
	JWTAlgorithm       string
	RequireAuth        bool
	AuthServiceURL     string
	RevokedSyncSeconds int
}

// Load reads configuration from GATEWAY_* environment variables with
// sensible defaults.
func Load() *Config {
	v := viper.New()
	v.SetDefault("port", "4000")
	v.SetDefault("rest_base_url", "http://localhost:8000")
	v.SetDefault("rest_token", "")
	v.SetDefault("http_timeout_seconds", 10)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_alg", "HS256")
	v.SetDefault("require_auth", false)
	v.SetDefault("auth_service_url", "http://auth-service:8001")
	v.SetDefault("revoked_sync_seconds", 30)

	v.SetEnvPrefix("GATEWAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:               v.GetString("port"),
		RestBaseURL:        strings.TrimRight(v.GetString("rest_base_url"), "/"),
		RestToken:          v.GetString("rest_token"),
		HTTPTimeoutSeconds: v.GetInt("http_timeout_seconds"),
		JWTSecret:          v.GetString("jwt_secret"),
		JWTAlgorithm:       v.GetString("jwt_alg"),
		RequireAuth:        v.GetBool("require_auth"),
		AuthServiceURL:     strings.TrimRight(v.GetString("auth_service_url"), "/"),
		RevokedSyncSeconds: v.GetInt("revoked_sync_seconds"),
	}

	if cfg.RevokedSyncSeconds < MinRevokedSyncSeconds {
		cfg.RevokedSyncSeconds = MinRevokedSyncSeconds
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		cfg.HTTPTimeoutSeconds = 10
	}

	return cfg
}
