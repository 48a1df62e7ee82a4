package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/auth"
	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
)

// doRequest creates a new HTTP request with the configured credentials and sends it
// using the watcher's client.
func (watcher *Watcher) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if watcher.apiKey != "" {
		req.Header.Set(auth.ApiKeyHeader, watcher.apiKey)
	}
	if watcher.token != "" {
		req.Header.Set(auth.AuthorizationHeader, "Bearer "+watcher.token)
	}

	if watcher.debugMode {
		if curlCommand, err := helpers.CurlCommandFromRequest(req); err != nil {
			log.Warn().Msgf("Couldn't get cURL command. Got the following error: %s", err)
		} else {
			log.Debug().Msgf("Equivalent cURL command: %s", curlCommand)
		}
	}

	return watcher.client.Do(req)
}

// getJSON sends a GET request to a provided URL,
// parses the JSON response and stores it in the value pointed by v.
func (watcher *Watcher) getJSON(ctx context.Context, url string, v any) error {
	resp, err := watcher.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", errNotFound, readErrorMessage(resp.Body))
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// readErrorMessage extracts the message of an ApiResponse or ApiStatus error body.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err.Error()
	}

	var payload struct {
		models.ApiResponse
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return strings.TrimSpace(string(raw))
	}

	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(raw))
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		log.Warn().Msgf("failed to close response body: %v", err)
	}
}

// printClientConfiguration prints the effective client configuration.
// It also warns if no credentials are configured.
func printClientConfiguration(out io.Writer, config *ClientConfig) {
	_, _ = fmt.Fprintf(out, "Got the following configuration:\n"+
		"RENDER_WATCHER_URL: %s\n"+
		"COMMIT_AUTHOR: %s\n"+
		"RENDER_DEPLOY_ID: %s\n"+
		"CLEAR_CACHE: %t\n\n",
		config.Url, config.Author, config.DeployId, config.ClearCache)
	if config.ApiKey == "" && config.JsonWebToken == "" {
		_, _ = fmt.Fprintln(out, "Neither API key nor JSON Web token found, protected endpoints will reject the request")
	}
}

// setupWatcher takes client configuration and initializes a new Watcher instance
// with the specified parameters.
func setupWatcher(config *ClientConfig) *Watcher {
	watcher := NewWatcher(
		strings.TrimSuffix(config.Url, "/"),
		config.Debug,
		config.Timeout,
	)
	watcher.apiKey = config.ApiKey
	watcher.token = config.JsonWebToken
	if config.PollInterval > 0 {
		watcher.pollInterval = config.PollInterval
	}
	return watcher
}
