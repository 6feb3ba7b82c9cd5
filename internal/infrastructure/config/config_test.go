package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Empty(t, cfg.Library.Dir)
	assert.Equal(t, "../native/build/lib", cfg.Library.DevDir)
	assert.True(t, cfg.Library.Autoload)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LIBRARY_DIR", "/opt/systemapi/lib")
	t.Setenv("LIBRARY_AUTOLOAD", "false")
	t.Setenv("RATE_LIMIT_RPS", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "/opt/systemapi/lib", cfg.Library.Dir)
	assert.False(t, cfg.Library.Autoload)
	assert.Equal(t, 10, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
