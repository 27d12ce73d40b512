package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "unit-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 2000, cfg.MaxDataLength)
	assert.Equal(t, "admin", cfg.AuthUsername)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0, cfg.RenderWorkers)
}

func TestLoad_MissingSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrParsingConfig)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "unit-test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "60s")
	t.Setenv("AUTH_USERS", `{"alice":"pw"}`)
	t.Setenv("RENDER_WORKERS", "4")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, time.Minute, cfg.TokenTTL)
	assert.JSONEq(t, `{"alice":"pw"}`, cfg.AuthUsers)
	assert.Equal(t, 4, cfg.RenderWorkers)
}
