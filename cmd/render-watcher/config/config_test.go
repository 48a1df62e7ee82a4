package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServerConfig(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		t.Setenv("RENDER_API_KEY", "rnd_secret")
		t.Setenv("RENDER_SERVICE_NAME", "ServidorFIHR")

		cfg, err := NewServerConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://api.render.com/v1", cfg.RenderApiUrl.String())
		assert.Equal(t, "rnd_secret", cfg.RenderApiKey)
		assert.Equal(t, "ServidorFIHR", cfg.ServiceName)
		assert.Equal(t, "in-memory", cfg.StateType)
		assert.Equal(t, 5*time.Second, cfg.Monitor.PollInterval)
		assert.Equal(t, 600*time.Second, cfg.Monitor.Timeout)
		assert.Equal(t, 3, cfg.Monitor.MaxConsecutiveFailures)
		assert.Equal(t, []string{"API_KEY", "DATABASE_URL", "RENDER_API_KEY"}, cfg.RedactedEnvKeys)
		assert.Equal(t, []int{200}, cfg.Webhook.AllowedResponseCodes)
	})

	t.Run("Monitor overrides", func(t *testing.T) {
		t.Setenv("RENDER_API_KEY", "rnd_secret")
		t.Setenv("POLL_INTERVAL", "2s")
		t.Setenv("DEPLOY_TIMEOUT", "15m")
		t.Setenv("MAX_CONSECUTIVE_FAILURES", "5")

		cfg, err := NewServerConfig()
		require.NoError(t, err)

		assert.Equal(t, 2*time.Second, cfg.Monitor.PollInterval)
		assert.Equal(t, 15*time.Minute, cfg.Monitor.Timeout)
		assert.Equal(t, 5, cfg.Monitor.MaxConsecutiveFailures)
	})

	t.Run("Invalid state type", func(t *testing.T) {
		t.Setenv("RENDER_API_KEY", "rnd_secret")
		t.Setenv("STATE_TYPE", "invalid")

		_, err := NewServerConfig()
		assert.Error(t, err)
	})

	t.Run("Non-positive poll interval", func(t *testing.T) {
		t.Setenv("RENDER_API_KEY", "rnd_secret")
		t.Setenv("POLL_INTERVAL", "0s")

		_, err := NewServerConfig()
		assert.Error(t, err)
	})
}

func TestNewServerConfig_RequiredFieldsMissing(t *testing.T) {
	t.Setenv("RENDER_SERVICE_ID", "srv-123")

	cfg, err := NewServerConfig()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestServerConfig_ValidateServiceTarget(t *testing.T) {
	assert.ErrorIs(t, (&ServerConfig{}).ValidateServiceTarget(), ErrServiceNotConfigured)
	assert.NoError(t, (&ServerConfig{ServiceId: "srv-1"}).ValidateServiceTarget())
	assert.NoError(t, (&ServerConfig{ServiceName: "web"}).ValidateServiceTarget())
}

func TestServerConfig_HasAuthConfigured(t *testing.T) {
	assert.False(t, (&ServerConfig{}).HasAuthConfigured())
	assert.True(t, (&ServerConfig{ApiKey: "key"}).HasAuthConfigured())
	assert.True(t, (&ServerConfig{JWTSecret: "secret"}).HasAuthConfigured())
}

func TestServerConfig_JSONExcludesSensitiveFields(t *testing.T) {
	config := &ServerConfig{
		RenderApiKey: "rnd_secret",
		ApiKey:       "api-key",
		JWTSecret:    "jwt-secret",
		Db:           DatabaseConfig{Password: "db-password"},
		Webhook:      WebhookConfig{Token: "webhook-token"},
	}

	jsonBytes, err := json.Marshal(config)
	assert.NoError(t, err)

	jsonString := string(jsonBytes)

	assert.NotContains(t, jsonString, "rnd_secret")
	assert.NotContains(t, jsonString, "api-key")
	assert.NotContains(t, jsonString, "jwt-secret")
	assert.NotContains(t, jsonString, "db-password")
	assert.NotContains(t, jsonString, "webhook-token")
}
