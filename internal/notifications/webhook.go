package notifications

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
)

const (
	maxErrorBodySize = 2 * 1024
	webhookTimeout   = 30 * time.Second
)

// NotificationStrategy delivers a session notification to one destination.
type NotificationStrategy interface {
	Send(ctx context.Context, session models.Session) error
}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Notifier fans a session out to every configured strategy.
type Notifier struct {
	strategies []NotificationStrategy
}

func NewNotifier(strategies ...NotificationStrategy) *Notifier {
	return &Notifier{strategies: strategies}
}

// NewNotifierFromConfig builds a notifier with the webhook strategy when it is enabled.
func NewNotifierFromConfig(cfg *config.WebhookConfig) (*Notifier, error) {
	if cfg == nil || !cfg.Enabled {
		return NewNotifier(), nil
	}
	strategy, err := NewWebhookStrategy(cfg, &http.Client{Timeout: webhookTimeout})
	if err != nil {
		return nil, err
	}
	return NewNotifier(strategy), nil
}

// Send dispatches session to all strategies and joins the errors. A nil Notifier is a no-op.
func (n *Notifier) Send(ctx context.Context, session models.Session) error {
	if n == nil {
		return nil
	}

	var errs []error
	for _, strategy := range n.strategies {
		if strategy == nil {
			continue
		}
		if err := strategy.Send(ctx, session); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// WebhookStrategy posts a templated payload to a single URL.
type WebhookStrategy struct {
	url                  string
	token                string
	authorizationHeader  string
	contentType          string
	allowedResponseCodes []int
	client               HTTPClient
	template             *template.Template
}

func NewWebhookStrategy(cfg *config.WebhookConfig, client HTTPClient) (*WebhookStrategy, error) {
	if cfg == nil {
		return nil, errors.New("webhook configuration cannot be nil")
	}
	if !cfg.Enabled {
		return nil, errors.New("webhook strategy disabled")
	}
	if client == nil {
		return nil, errors.New("HTTPClient cannot be nil")
	}
	if cfg.Format == "" {
		return nil, errors.New("webhook format cannot be empty")
	}

	tmpl, err := template.New("webhook").Option("missingkey=error").Parse(cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse webhook template: %w", err)
	}

	return &WebhookStrategy{
		url:                  cfg.Url,
		token:                cfg.Token,
		authorizationHeader:  cfg.AuthorizationHeader,
		contentType:          cfg.ContentType,
		allowedResponseCodes: cfg.AllowedResponseCodes,
		client:               client,
		template:             tmpl,
	}, nil
}

func (s *WebhookStrategy) Send(ctx context.Context, session models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, webhookTimeout)
	defer cancel()

	var payload bytes.Buffer
	if err := s.template.Execute(&payload, session); err != nil {
		return fmt.Errorf("failed to execute webhook template: %w", err)
	}

	log.Debug().Str("id", session.Id).Msgf("Sending webhook payload: %s", payload.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, &payload)
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", s.contentType)
	if s.token != "" {
		req.Header.Set(s.authorizationHeader, s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Warn().Err(err).Str("id", session.Id).Msg("Failed to close response body")
		}
	}()

	if !slices.Contains(s.allowedResponseCodes, resp.StatusCode) {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if readErr != nil {
			return fmt.Errorf("received non-allowed status code %d, and failed to read response body: %w", resp.StatusCode, readErr)
		}
		return fmt.Errorf("received non-allowed status code %d: %s", resp.StatusCode, string(body))
	}

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		log.Warn().Err(err).Str("id", session.Id).Msg("Failed to discard response body on success")
	}

	return nil
}
