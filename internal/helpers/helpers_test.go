package helpers

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shini4i/render-watcher/internal/models"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains(nil, "a"))
}

func TestRedactEnvVars(t *testing.T) {
	envVars := []models.EnvVar{
		{Key: "PORT", Value: "8080"},
		{Key: "DATABASE_URL", Value: "postgres://secret"},
		{Key: "api_key", Value: "lowercase is a different key"},
	}

	redacted := RedactEnvVars(envVars, []string{"API_KEY", "DATABASE_URL", "RENDER_API_KEY"})

	assert.Equal(t, []models.EnvVar{
		{Key: "PORT", Value: "8080"},
		{Key: "DATABASE_URL", Value: RedactedValue},
		{Key: "api_key", Value: "lowercase is a different key"},
	}, redacted)
	assert.Equal(t, "postgres://secret", envVars[1].Value, "input must not be modified")
}

func TestTailLines(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		n        int
		expected string
	}{
		{"shorter than limit", "a\nb\n", 5, "a\nb"},
		{"trims to limit", "a\nb\nc\nd", 2, "c\nd"},
		{"empty text", "", 3, ""},
		{"zero lines", "a\nb", 0, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TailLines(tc.text, tc.n))
		})
	}
}

func TestCurlCommandFromRequest(t *testing.T) {
	requestBody := `{"clearCache": "clear"}`
	request, _ := http.NewRequest("POST", "https://api.render.com/v1/services/srv-1/deploys", strings.NewReader(requestBody))
	request.Header.Add("Content-Type", "application/json")
	request.Header.Add("Authorization", "Bearer rnd_secret")

	expectedCurl := `curl -X POST -H 'Authorization: ***REDACTED***' -H 'Content-Type: application/json' -d '{"clearCache": "clear"}' 'https://api.render.com/v1/services/srv-1/deploys'`

	actualCurl, err := CurlCommandFromRequest(request)
	require.NoError(t, err)
	assert.Equal(t, expectedCurl, actualCurl)

	body, err := io.ReadAll(request.Body)
	require.NoError(t, err)
	assert.Equal(t, requestBody, string(body))
}

func TestCurlCommandFromRequest_NoBody(t *testing.T) {
	request, _ := http.NewRequest("GET", "https://api.render.com/v1/services", nil)

	actualCurl, err := CurlCommandFromRequest(request)

	require.NoError(t, err)
	assert.Equal(t, `curl -X GET 'https://api.render.com/v1/services'`, actualCurl)
}

func TestCurlCommandFromRequest_ApiKey(t *testing.T) {
	request, _ := http.NewRequest("POST", "http://localhost:8080/api/v1/render/redeploy", nil)
	request.Header.Set("X-API-Key", "secret")

	actualCurl, err := CurlCommandFromRequest(request)

	require.NoError(t, err)
	assert.Equal(t, `curl -X POST -H 'X-Api-Key: ***REDACTED***' 'http://localhost:8080/api/v1/render/redeploy'`, actualCurl)
}
