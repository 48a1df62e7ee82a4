package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClientConfig(t *testing.T) {
	t.Setenv("RENDER_WATCHER_URL", "http://localhost:8080")
	t.Setenv("RENDER_WATCHER_API_KEY", "secret")
	t.Setenv("COMMIT_AUTHOR", "John Doe")
	t.Setenv("CLEAR_CACHE", "true")
	t.Setenv("TIMEOUT", "60s")
	t.Setenv("DEBUG", "true")

	t.Run("Successfully generated", func(t *testing.T) {
		config, err := NewClientConfig()

		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", config.Url)
		assert.Equal(t, "secret", config.ApiKey)
		assert.Equal(t, "John Doe", config.Author)
		assert.Empty(t, config.DeployId)
		assert.True(t, config.ClearCache)
		assert.Equal(t, 60*time.Second, config.Timeout)
		assert.Equal(t, 15*time.Second, config.PollInterval)
		assert.True(t, config.Debug)
	})

	t.Run("Failed to generate", func(t *testing.T) {
		t.Setenv("TIMEOUT", "invalid")

		_, err := NewClientConfig()

		assert.Error(t, err)
		assert.Equal(t, "env: parse error on field \"Timeout\" of type \"time.Duration\": unable to parse duration: time: invalid duration \"invalid\"", err.Error())
	})
}

func TestNewClientConfig_MissingUrl(t *testing.T) {
	t.Setenv("RENDER_WATCHER_URL", "")

	_, err := NewClientConfig()

	assert.Error(t, err)
}
