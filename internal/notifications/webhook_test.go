package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
)

type MockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return nil, errors.New("DoFunc is not implemented")
}

type NotificationStrategyFunc func(context.Context, models.Session) error

func (f NotificationStrategyFunc) Send(ctx context.Context, session models.Session) error {
	return f(ctx, session)
}

func testWebhookConfig() *config.WebhookConfig {
	return &config.WebhookConfig{
		Enabled:              true,
		Url:                  "http://localhost/webhook",
		Format:               `{"id":"{{.Id}}","service":"{{.ServiceName}}","deploy":"{{.DeployId}}","status":"{{.Status}}"}`,
		ContentType:          "application/json",
		AuthorizationHeader:  "X-Token",
		Token:                "secret",
		AllowedResponseCodes: []int{200, 201},
	}
}

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestNewWebhookStrategy(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		cfg := testWebhookConfig()
		client := &MockHTTPClient{}

		strategy, err := NewWebhookStrategy(cfg, client)

		require.NoError(t, err)
		assert.Equal(t, cfg.Url, strategy.url)
		assert.Equal(t, cfg.AllowedResponseCodes, strategy.allowedResponseCodes)
		assert.Same(t, client, strategy.client)
	})

	t.Run("Invalid input", func(t *testing.T) {
		disabled := testWebhookConfig()
		disabled.Enabled = false
		emptyFormat := testWebhookConfig()
		emptyFormat.Format = ""
		broken := testWebhookConfig()
		broken.Format = "{{.Id"

		testCases := []struct {
			name   string
			cfg    *config.WebhookConfig
			client HTTPClient
			err    string
		}{
			{"nil config", nil, &MockHTTPClient{}, "webhook configuration cannot be nil"},
			{"disabled", disabled, &MockHTTPClient{}, "webhook strategy disabled"},
			{"nil client", testWebhookConfig(), nil, "HTTPClient cannot be nil"},
			{"empty format", emptyFormat, &MockHTTPClient{}, "webhook format cannot be empty"},
			{"broken template", broken, &MockHTTPClient{}, "failed to parse webhook template"},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				strategy, err := NewWebhookStrategy(tc.cfg, tc.client)
				assert.Nil(t, strategy)
				assert.ErrorContains(t, err, tc.err)
			})
		}
	})
}

func TestWebhookStrategy_Send(t *testing.T) {
	session := models.Session{Id: "sess-1", ServiceName: "api", DeployId: "dep-1", Status: models.StatusSucceededMessage}

	t.Run("Success", func(t *testing.T) {
		client := &MockHTTPClient{DoFunc: func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			assert.JSONEq(t, `{"id":"sess-1","service":"api","deploy":"dep-1","status":"succeeded"}`, string(body))
			assert.Equal(t, "secret", req.Header.Get("X-Token"))
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			return response(http.StatusCreated, ""), nil
		}}
		strategy, err := NewWebhookStrategy(testWebhookConfig(), client)
		require.NoError(t, err)

		assert.NoError(t, strategy.Send(context.Background(), session))
	})

	t.Run("Non-allowed status code", func(t *testing.T) {
		client := &MockHTTPClient{DoFunc: func(req *http.Request) (*http.Response, error) {
			return response(http.StatusBadRequest, "bad payload"), nil
		}}
		strategy, _ := NewWebhookStrategy(testWebhookConfig(), client)

		err := strategy.Send(context.Background(), session)
		assert.EqualError(t, err, "received non-allowed status code 400: bad payload")
	})

	t.Run("Transport error", func(t *testing.T) {
		client := &MockHTTPClient{DoFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp: connection refused")
		}}
		strategy, _ := NewWebhookStrategy(testWebhookConfig(), client)

		err := strategy.Send(context.Background(), session)
		assert.ErrorContains(t, err, "failed to send webhook")
	})

	t.Run("Template execution error", func(t *testing.T) {
		cfg := testWebhookConfig()
		cfg.Format = `{{.Missing}}`
		strategy, err := NewWebhookStrategy(cfg, &MockHTTPClient{})
		require.NoError(t, err)

		err = strategy.Send(context.Background(), session)
		assert.ErrorContains(t, err, "failed to execute webhook template")
	})
}

func TestNotifier_Send(t *testing.T) {
	session := models.Session{Id: "sess-1"}

	t.Run("Joins errors", func(t *testing.T) {
		var delivered []string
		notifier := NewNotifier(
			NotificationStrategyFunc(func(_ context.Context, s models.Session) error {
				delivered = append(delivered, s.Id)
				return nil
			}),
			nil,
			NotificationStrategyFunc(func(context.Context, models.Session) error { return errors.New("first") }),
			NotificationStrategyFunc(func(context.Context, models.Session) error { return errors.New("second") }),
		)

		err := notifier.Send(context.Background(), session)

		assert.Equal(t, []string{"sess-1"}, delivered)
		assert.ErrorContains(t, err, "first")
		assert.ErrorContains(t, err, "second")
	})

	t.Run("Nil notifier", func(t *testing.T) {
		var notifier *Notifier
		assert.NoError(t, notifier.Send(context.Background(), session))
	})
}

func TestNewNotifierFromConfig(t *testing.T) {
	notifier, err := NewNotifierFromConfig(&config.WebhookConfig{Enabled: false})
	require.NoError(t, err)
	assert.Empty(t, notifier.strategies)

	notifier, err = NewNotifierFromConfig(testWebhookConfig())
	require.NoError(t, err)
	assert.Len(t, notifier.strategies, 1)
}
