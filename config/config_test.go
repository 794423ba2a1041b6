package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFromEnv(t *testing.T, vars map[string]string) AppConfig {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	return cfg
}

func TestAppConfig_Defaults(t *testing.T) {
	cfg := loadFromEnv(t, nil)

	assert.Equal(t, "http://localhost:4000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.False(t, cfg.ImageHost.IsEnabled())
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestBackendConfig_Sanitize(t *testing.T) {
	cfg := loadFromEnv(t, map[string]string{
		"BACKEND_BASE_URL": "  https://api.roktoseba.example/ ",
		"BACKEND_TIMEOUT":  "0s",
	})

	assert.Equal(t, "https://api.roktoseba.example", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input   string
		want    AuthMode
		wantErr bool
	}{
		{"oauth", AuthModeOAuth, false},
		{"mock", AuthModeMock, false},
		{"OAuth", AuthModeOAuth, false},
		{"ldap", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
		})
	}
}

func TestDevModeDetection(t *testing.T) {
	cfg := loadFromEnv(t, map[string]string{"NODE_ENV": "development"})
	assert.True(t, cfg.IsDev)

	cfg = loadFromEnv(t, map[string]string{"NODE_ENV": "production"})
	assert.False(t, cfg.IsDev)
}

func TestObservabilityMetrics_DisabledWhenAddressEmpty(t *testing.T) {
	cfg := loadFromEnv(t, map[string]string{
		"OBSERVABILITY_METRICS_ENABLED":        "true",
		"OBSERVABILITY_METRICS_STATSD_ADDRESS": "   ",
	})

	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}
