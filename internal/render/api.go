package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
)

// RenderApiInterface is the subset of the Render REST API used by the watcher.
type RenderApiInterface interface {
	Init(serverConfig *config.ServerConfig) error
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, serviceId string) (*models.Service, error)
	FindServiceByName(ctx context.Context, name string) (*models.Service, error)
	GetServiceLogs(ctx context.Context, serviceId string, limit int) (string, error)
	ListEnvVars(ctx context.Context, serviceId string) ([]models.EnvVar, error)
	UpdateEnvVar(ctx context.Context, serviceId, key, value string) (*models.EnvVar, error)
	TriggerDeploy(ctx context.Context, serviceId string, clearCache bool) (*models.Deploy, error)
	GetDeploy(ctx context.Context, serviceId, deployId string) (*models.Deploy, error)
	GetDeployStatus(ctx context.Context, serviceId, deployId string) (models.DeployStatus, error)
	ListDeploys(ctx context.Context, serviceId string, limit int) ([]models.Deploy, error)
	ListPostgres(ctx context.Context) ([]models.Postgres, error)
	GetPostgres(ctx context.Context, postgresId string) (*models.Postgres, error)
}

// APIError is returned for every non-2xx answer of the Render API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("render api returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 answer of the Render API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type RenderApi struct {
	baseUrl string
	apiKey  string
	client  *http.Client
}

// ErrServiceNotFound is returned when no service carries the requested name.
var ErrServiceNotFound = errors.New("service not found")

var _ RenderApiInterface = (*RenderApi)(nil)

func (api *RenderApi) Init(serverConfig *config.ServerConfig) error {
	log.Debug().Msg("Initializing render api client...")

	if serverConfig.RenderApiKey == "" {
		return errors.New("render api key is not configured")
	}

	api.baseUrl = strings.TrimSuffix(serverConfig.RenderApiUrl.String(), "/")
	api.apiKey = serverConfig.RenderApiKey
	api.client = &http.Client{
		Timeout: serverConfig.RenderApiTimeout,
	}

	log.Debug().Msgf("Timeout for Render API calls set to: %s", api.client.Timeout)

	return nil
}

func (api *RenderApi) ListServices(ctx context.Context) ([]models.Service, error) {
	body, err := api.do(ctx, http.MethodGet, "/services", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Service](body, func(item models.ListItem) json.RawMessage { return item.Service })
}

func (api *RenderApi) GetService(ctx context.Context, serviceId string) (*models.Service, error) {
	body, err := api.do(ctx, http.MethodGet, "/services/"+url.PathEscape(serviceId), nil, nil)
	if err != nil {
		return nil, err
	}

	var service models.Service
	if err := json.Unmarshal(body, &service); err != nil {
		return nil, fmt.Errorf("could not parse json response: %s", body)
	}
	return &service, nil
}

// FindServiceByName narrows the listing server-side and then requires an exact name match.
func (api *RenderApi) FindServiceByName(ctx context.Context, name string) (*models.Service, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("limit", "100")

	body, err := api.do(ctx, http.MethodGet, "/services", query, nil)
	if err != nil {
		return nil, err
	}

	services, err := decodeList[models.Service](body, func(item models.ListItem) json.RawMessage { return item.Service })
	if err != nil {
		return nil, err
	}

	for index := range services {
		if services[index].Name == name {
			return &services[index], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, name)
}

func (api *RenderApi) GetServiceLogs(ctx context.Context, serviceId string, limit int) (string, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	body, err := api.do(ctx, http.MethodGet, "/services/"+url.PathEscape(serviceId)+"/logs", query, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (api *RenderApi) ListEnvVars(ctx context.Context, serviceId string) ([]models.EnvVar, error) {
	body, err := api.do(ctx, http.MethodGet, "/services/"+url.PathEscape(serviceId)+"/env-vars", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.EnvVar](body, func(item models.ListItem) json.RawMessage { return item.EnvVar })
}

func (api *RenderApi) UpdateEnvVar(ctx context.Context, serviceId, key, value string) (*models.EnvVar, error) {
	path := fmt.Sprintf("/services/%s/env-vars/%s", url.PathEscape(serviceId), url.PathEscape(key))

	body, err := api.do(ctx, http.MethodPut, path, nil, models.UpdateEnvVarRequest{Value: value})
	if err != nil {
		return nil, err
	}

	var envVar models.EnvVar
	if err := json.Unmarshal(body, &envVar); err != nil {
		return nil, fmt.Errorf("could not parse json response: %s", body)
	}
	return &envVar, nil
}

func (api *RenderApi) TriggerDeploy(ctx context.Context, serviceId string, clearCache bool) (*models.Deploy, error) {
	request := models.TriggerDeployRequest{ClearCache: models.ClearCacheDoNotClear}
	if clearCache {
		request.ClearCache = models.ClearCacheClear
	}

	body, err := api.do(ctx, http.MethodPost, "/services/"+url.PathEscape(serviceId)+"/deploys", nil, request)
	if err != nil {
		return nil, err
	}

	var deploy models.Deploy
	if err := json.Unmarshal(body, &deploy); err != nil {
		return nil, fmt.Errorf("could not parse json response: %s", body)
	}
	if deploy.Id == "" {
		return nil, fmt.Errorf("render api did not return a deploy id: %s", body)
	}
	deploy.Normalize()

	return &deploy, nil
}

func (api *RenderApi) GetDeploy(ctx context.Context, serviceId, deployId string) (*models.Deploy, error) {
	path := fmt.Sprintf("/services/%s/deploys/%s", url.PathEscape(serviceId), url.PathEscape(deployId))

	body, err := api.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var deploy models.Deploy
	if err := json.Unmarshal(body, &deploy); err != nil {
		return nil, fmt.Errorf("could not parse json response: %s", body)
	}
	deploy.Normalize()

	return &deploy, nil
}

// GetDeployStatus fetches the current status of a deploy. The value is never cached.
func (api *RenderApi) GetDeployStatus(ctx context.Context, serviceId, deployId string) (models.DeployStatus, error) {
	deploy, err := api.GetDeploy(ctx, serviceId, deployId)
	if err != nil {
		return "", err
	}
	if deploy.Status == "" {
		return "", errors.New("render api returned a deploy without status")
	}
	return deploy.Status, nil
}

func (api *RenderApi) ListDeploys(ctx context.Context, serviceId string, limit int) ([]models.Deploy, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	body, err := api.do(ctx, http.MethodGet, "/services/"+url.PathEscape(serviceId)+"/deploys", query, nil)
	if err != nil {
		return nil, err
	}

	deploys, err := decodeList[models.Deploy](body, func(item models.ListItem) json.RawMessage { return item.Deploy })
	if err != nil {
		return nil, err
	}
	for index := range deploys {
		deploys[index].Normalize()
	}
	return deploys, nil
}

func (api *RenderApi) ListPostgres(ctx context.Context) ([]models.Postgres, error) {
	body, err := api.do(ctx, http.MethodGet, "/postgres", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Postgres](body, func(item models.ListItem) json.RawMessage { return item.Postgres })
}

func (api *RenderApi) GetPostgres(ctx context.Context, postgresId string) (*models.Postgres, error) {
	body, err := api.do(ctx, http.MethodGet, "/postgres/"+url.PathEscape(postgresId), nil, nil)
	if err != nil {
		return nil, err
	}

	var postgres models.Postgres
	if err := json.Unmarshal(body, &postgres); err != nil {
		return nil, fmt.Errorf("could not parse json response: %s", body)
	}
	return &postgres, nil
}

// do performs an authenticated request and returns the raw body of a 2xx answer.
func (api *RenderApi) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	apiUrl := api.baseUrl + path
	if len(query) > 0 {
		apiUrl += "?" + query.Encode()
	}

	var requestBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		requestBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiUrl, requestBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+api.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		if curl, err := helpers.CurlCommandFromRequest(req); err == nil {
			log.Debug().Msg(curl)
		}
	}

	resp, err := api.client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error().Msg(err.Error())
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func newAPIError(statusCode int, body []byte) *APIError {
	var renderErrorResponse models.RenderApiErrorResponse
	if err := json.Unmarshal(body, &renderErrorResponse); err == nil && renderErrorResponse.Message != "" {
		return &APIError{StatusCode: statusCode, Message: renderErrorResponse.Message}
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}

// decodeList accepts both bare arrays and the cursor-wrapped arrays Render returns.
func decodeList[T any](body []byte, payload func(models.ListItem) json.RawMessage) ([]T, error) {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(body, &rawItems); err != nil {
		return nil, fmt.Errorf("could not parse json response: %s", body)
	}

	result := make([]T, 0, len(rawItems))
	for _, raw := range rawItems {
		var item models.ListItem
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("could not parse list item: %s", raw)
		}

		content := payload(item)
		if len(content) == 0 {
			content = raw
		}

		var value T
		if err := json.Unmarshal(content, &value); err != nil {
			return nil, fmt.Errorf("could not parse list item: %s", content)
		}
		result = append(result, value)
	}

	return result, nil
}
