package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAppliesDefaults(t *testing.T) {
	c, err := Parse([]byte("backend:\n  base_url: http://localhost:5000\n"))
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, []string{"risk-reward", "riskreward"}, c.Server.MountNames)
	assert.Equal(t, 30*time.Second, c.Backend.Timeout)
	assert.Equal(t, "3years", c.Backend.MetricsDuration)
	assert.Equal(t, "dynamic", c.View.ColorPolicy)
	assert.Equal(t, "higher_is_better", c.View.RiskDirection)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, 5*time.Minute, c.Cache.CleanupInterval)
	assert.Equal(t, 10, c.Cache.Redis.PoolSize)
	assert.Equal(t, 2, c.Cache.Redis.MinIdleConns)
	assert.True(t, c.Metrics.Enabled)
}

func TestParseFileValuesOverrideDefaults(t *testing.T) {
	c, err := Parse([]byte(`
backend:
  base_url: http://api:5000
server:
  cors: false
  port: 9000
view:
  color_policy: fixed
  risk_direction: lower_is_better
`))
	require.NoError(t, err)

	assert.False(t, c.Server.CORS)
	assert.Equal(t, 9000, c.Server.Port)
	assert.Equal(t, "fixed", c.View.ColorPolicy)
	assert.Equal(t, "lower_is_better", c.View.RiskDirection)
}

func TestParseRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing backend url", "environment: dev\n"},
		{"bad color policy", "backend:\n  base_url: http://x\nview:\n  color_policy: rainbow\n"},
		{"bad risk direction", "backend:\n  base_url: http://x\nview:\n  risk_direction: sideways\n"},
		{"collector without brokers", "backend:\n  base_url: http://x\nlog:\n  collector:\n    enabled: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("environment: test\n"), 0o600))

	t.Setenv("RISKVIEW_BACKEND_URL", "http://backend:5000")
	t.Setenv("RISKVIEW_PORT", "9191")
	t.Setenv("RISKVIEW_COLOR_POLICY", "fixed")
	t.Setenv("REDIS_ADDR", "cache:6380")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend:5000", c.Backend.BaseURL)
	assert.Equal(t, 9191, c.Server.Port)
	assert.Equal(t, "fixed", c.View.ColorPolicy)
	assert.Equal(t, "cache", c.Cache.Redis.Host)
	assert.Equal(t, 6380, c.Cache.Redis.Port)
}
