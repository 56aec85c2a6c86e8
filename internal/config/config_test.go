package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "http://localhost:8000", cfg.RestBaseURL)
	assert.Equal(t, 10, cfg.HTTPTimeoutSeconds)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.False(t, cfg.RequireAuth)
	assert.Equal(t, "http://auth-service:8001", cfg.AuthServiceURL)
	assert.Equal(t, 30, cfg.RevokedSyncSeconds)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("GATEWAY_PORT", "8080")
	t.Setenv("GATEWAY_REST_BASE_URL", "http://backend:9000/")
	t.Setenv("GATEWAY_JWT_SECRET", "s3cret")
	t.Setenv("GATEWAY_REQUIRE_AUTH", "true")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	// trailing slash is stripped so path joins stay clean
	assert.Equal(t, "http://backend:9000", cfg.RestBaseURL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.RequireAuth)
}

func TestLoad_RevokedSyncFloor(t *testing.T) {
	t.Setenv("GATEWAY_REVOKED_SYNC_SECONDS", "1")

	cfg := Load()
	assert.Equal(t, MinRevokedSyncSeconds, cfg.RevokedSyncSeconds)
}

func TestLoad_HTTPTimeoutFloor(t *testing.T) {
	t.Setenv("GATEWAY_HTTP_TIMEOUT_SECONDS", "0")

	cfg := Load()
	assert.Equal(t, 10, cfg.HTTPTimeoutSeconds)
}
