package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
)

const failureLogLines = 20

var (
	sessionRetryAttempts = uint(3)
	sessionRetryDelay    = 2 * time.Second
)

// errNotFound is not retried while polling.
var errNotFound = errors.New("session not found")

// Watcher talks to a running render-watcher server.
type Watcher struct {
	baseUrl      string
	client       *http.Client
	debugMode    bool
	timeout      time.Duration
	apiKey       string
	token        string
	pollInterval time.Duration
}

func NewWatcher(baseUrl string, debugMode bool, timeout time.Duration) *Watcher {
	return &Watcher{
		baseUrl:      baseUrl,
		client:       &http.Client{Timeout: timeout},
		debugMode:    debugMode,
		timeout:      timeout,
		pollInterval: 15 * time.Second,
	}
}

// redeploy asks the server to trigger a deploy and watch it in the background.
func (watcher *Watcher) redeploy(ctx context.Context, clearCache bool, author string) (*models.ApiStatus, error) {
	query := url.Values{}
	query.Set("clear_cache", strconv.FormatBool(clearCache))
	if author != "" {
		query.Set("author", author)
	}
	return watcher.startSession(ctx, "/api/v1/render/redeploy", query)
}

// attach asks the server to watch an existing deploy. An empty deployId selects the latest one.
func (watcher *Watcher) attach(ctx context.Context, deployId string, author string) (*models.ApiStatus, error) {
	query := url.Values{}
	if deployId != "" {
		query.Set("deploy_id", deployId)
	}
	if author != "" {
		query.Set("author", author)
	}
	return watcher.startSession(ctx, "/api/v1/render/watch", query)
}

func (watcher *Watcher) startSession(ctx context.Context, path string, query url.Values) (*models.ApiStatus, error) {
	endpoint := fmt.Sprintf("%s%s?%s", watcher.baseUrl, path, query.Encode())

	response, err := watcher.doRequest(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(response.Body)

	if response.StatusCode != http.StatusAccepted {
		return nil, fmt.Errorf("render-watcher rejected the request with code %d: %s", response.StatusCode, readErrorMessage(response.Body))
	}

	var accepted models.ApiStatus
	if err := json.NewDecoder(response.Body).Decode(&accepted); err != nil {
		return nil, err
	}

	return &accepted, nil
}

// getSession fetches a session, retrying transient failures.
func (watcher *Watcher) getSession(ctx context.Context, id string) (*models.Session, error) {
	endpoint := fmt.Sprintf("%s/api/v1/sessions/%s", watcher.baseUrl, url.PathEscape(id))

	var session models.Session
	err := retry.Do(
		func() error {
			return watcher.getJSON(ctx, endpoint, &session)
		},
		retry.Context(ctx),
		retry.Attempts(sessionRetryAttempts),
		retry.Delay(sessionRetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, errNotFound)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Str("id", id).Msgf("Couldn't fetch session (attempt %d): %s", n+1, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// getLogs returns the recent log lines of the watched service.
func (watcher *Watcher) getLogs(ctx context.Context, lines int) (string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/render/logs?lines=%d", watcher.baseUrl, lines)

	var response models.ApiResponse
	if err := watcher.getJSON(ctx, endpoint, &response); err != nil {
		return "", err
	}

	logs, ok := response.Data.(string)
	if !ok {
		return "", errors.New("unexpected logs payload")
	}
	return logs, nil
}

// waitForSession polls the session until it leaves the in progress state.
func (watcher *Watcher) waitForSession(ctx context.Context, id string) (*models.Session, error) {
	for {
		session, err := watcher.getSession(ctx, id)
		if err != nil {
			return nil, err
		}

		if session.IsFinished() {
			return session, nil
		}

		log.Info().Str("id", id).Msgf("Deploy %s is in progress (%s)...", session.DeployId, session.DeployStatus)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(watcher.pollInterval):
		}
	}
}

// Run triggers (or attaches to) a deploy through the render-watcher server and waits for its result.
func Run(ctx context.Context, out io.Writer) error {
	clientConfig, err := NewClientConfig()
	if err != nil {
		return fmt.Errorf("couldn't get client configuration: %w", err)
	}

	watcher := setupWatcher(clientConfig)

	if watcher.debugMode {
		printClientConfiguration(out, clientConfig)
	}

	var accepted *models.ApiStatus
	if clientConfig.DeployId != "" {
		accepted, err = watcher.attach(ctx, clientConfig.DeployId, clientConfig.Author)
	} else {
		accepted, err = watcher.redeploy(ctx, clientConfig.ClearCache, clientConfig.Author)
	}
	if err != nil {
		return fmt.Errorf("couldn't start a session: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Watching deploy %s (session %s)\n", accepted.DeployId, accepted.Id)

	session, err := watcher.waitForSession(ctx, accepted.Id)
	if err != nil {
		return err
	}

	return reportSession(ctx, out, watcher, session)
}

// reportSession prints the final session state, with a log tail when the deploy did not succeed.
func reportSession(ctx context.Context, out io.Writer, watcher *Watcher, session *models.Session) error {
	if session.Status == models.StatusSucceededMessage {
		_, _ = fmt.Fprintf(out, "Deploy %s is live\n", session.DeployId)
		return nil
	}

	if logs, err := watcher.getLogs(ctx, failureLogLines); err != nil {
		log.Warn().Msgf("Couldn't fetch service logs: %s", err)
	} else if tail := helpers.TailLines(logs, failureLogLines); tail != "" {
		_, _ = fmt.Fprintf(out, "Last %d log lines:\n%s\n", failureLogLines, tail)
	}

	if session.StatusReason != "" {
		return fmt.Errorf("deploy %s %s: %s", session.DeployId, session.Status, session.StatusReason)
	}
	return fmt.Errorf("deploy %s %s", session.DeployId, session.Status)
}
