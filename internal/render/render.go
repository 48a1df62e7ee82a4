package render

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/cmd/render-watcher/prometheus"
	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/state"
)

var (
	serviceLookupRetryDelay    = 2 * time.Second
	serviceLookupRetryAttempts = uint(3)
)

const serviceStatusActive = "active"

// Render exposes the service-scoped operations of the watcher on top of the raw API client.
type Render struct {
	metrics prometheus.MetricsInterface
	api     RenderApiInterface
	State   state.SessionRepository
	config  *config.ServerConfig
}

func (render *Render) Init(state state.SessionRepository, api RenderApiInterface, metrics prometheus.MetricsInterface, serverConfig *config.ServerConfig) {
	render.api = api
	render.State = state
	render.metrics = metrics
	render.config = serverConfig
}

func (render *Render) Api() RenderApiInterface {
	return render.api
}

// Check verifies the state backend and that the configured service is reachable.
func (render *Render) Check(ctx context.Context) (string, error) {
	if render.State != nil && !render.State.Check() {
		render.metrics.SetRenderUnavailable(true)
		return "down", errors.New(models.StatusConnectionUnavailable)
	}

	if _, err := render.ResolveService(ctx); err != nil {
		render.metrics.SetRenderUnavailable(true)
		return "down", errors.New(models.StatusRenderUnavailableMessage)
	}

	render.metrics.SetRenderUnavailable(false)
	return "up", nil
}

// ResolveService returns the configured service, looked up by id or else by name.
// Transient failures are retried; 4xx answers and unknown names are not.
func (render *Render) ResolveService(ctx context.Context) (*models.Service, error) {
	if err := render.config.ValidateServiceTarget(); err != nil {
		return nil, err
	}

	var service *models.Service
	err := retry.Do(
		func() error {
			var err error
			if render.config.ServiceId != "" {
				service, err = render.api.GetService(ctx, render.config.ServiceId)
			} else {
				service, err = render.api.FindServiceByName(ctx, render.config.ServiceName)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(serviceLookupRetryAttempts),
		retry.Delay(serviceLookupRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(attempt uint, err error) {
			log.Warn().Msgf("Service lookup failed (attempt %d): %s", attempt+1, err)
		}),
	)
	if err != nil {
		return nil, err
	}

	return service, nil
}

// isTransient reports whether a failed call is worth repeating.
func isTransient(err error) bool {
	if errors.Is(err, ErrServiceNotFound) || errors.Is(err, context.Canceled) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// ServiceInfo flattens the service and its most recent deploy.
func (render *Render) ServiceInfo(ctx context.Context) (*models.ServiceInfo, error) {
	service, err := render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	info := &models.ServiceInfo{
		Id:        service.Id,
		Name:      service.Name,
		Status:    serviceStatusActive,
		Url:       service.ServiceDetails.Url,
		CreatedAt: service.CreatedAt,
		UpdatedAt: service.UpdatedAt,
	}
	if service.IsSuspended() {
		info.Status = service.Suspended
	}

	deploy, err := render.LatestDeploy(ctx, service.Id)
	if err != nil {
		log.Warn().Str("service", service.Id).Msgf("Could not fetch latest deploy: %s", err)
	} else {
		info.LatestDeploy = deploy
		info.DeployStatus = deploy.Status
	}

	return info, nil
}

// LatestDeploy returns the most recent deploy of the service.
func (render *Render) LatestDeploy(ctx context.Context, serviceId string) (*models.Deploy, error) {
	deploys, err := render.api.ListDeploys(ctx, serviceId, 1)
	if err != nil {
		return nil, err
	}
	if len(deploys) == 0 {
		return nil, errors.New("service has no deploys")
	}
	return &deploys[0], nil
}

// EnvVars lists the variables of the service. With redact set, configured secret keys are masked.
func (render *Render) EnvVars(ctx context.Context, redact bool) ([]models.EnvVar, error) {
	service, err := render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	envVars, err := render.api.ListEnvVars(ctx, service.Id)
	if err != nil {
		return nil, err
	}

	if redact {
		return helpers.RedactEnvVars(envVars, render.config.RedactedEnvKeys), nil
	}
	return envVars, nil
}

func (render *Render) SetEnvVar(ctx context.Context, key, value string) (*models.EnvVar, error) {
	if key == "" {
		return nil, errors.New("environment variable key cannot be empty")
	}

	service, err := render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Str("service", service.Id).Msgf("Updating environment variable %s", key)
	return render.api.UpdateEnvVar(ctx, service.Id, key, value)
}

func (render *Render) Logs(ctx context.Context, lines int) (string, error) {
	if lines <= 0 {
		return "", errors.New("number of lines must be positive")
	}

	service, err := render.ResolveService(ctx)
	if err != nil {
		return "", err
	}

	return render.api.GetServiceLogs(ctx, service.Id, lines)
}

// Deploy returns a deploy of the configured service. An empty deployId selects the latest one.
func (render *Render) Deploy(ctx context.Context, deployId string) (*models.Deploy, error) {
	service, err := render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	if deployId == "" {
		return render.LatestDeploy(ctx, service.Id)
	}
	return render.api.GetDeploy(ctx, service.Id, deployId)
}

// TriggerDeploy starts a deploy without opening a monitoring session.
func (render *Render) TriggerDeploy(ctx context.Context, clearCache bool) (*models.Deploy, error) {
	service, err := render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	log.Info().Str("service", service.Id).Msgf("Triggering deploy of %s (clear cache: %t)", service.Name, clearCache)
	return render.api.TriggerDeploy(ctx, service.Id, clearCache)
}

func (render *Render) Databases(ctx context.Context) ([]models.Postgres, error) {
	return render.api.ListPostgres(ctx)
}

func (render *Render) Database(ctx context.Context, id string) (*models.Postgres, error) {
	if id == "" {
		return nil, errors.New("database id cannot be empty")
	}
	return render.api.GetPostgres(ctx, id)
}

// GetSessions returns the session history along with the current Render availability.
func (render *Render) GetSessions(ctx context.Context, startTime float64, endTime float64, service string, limit int, offset int) models.SessionsResponse {
	sessions, total := render.State.GetSessions(startTime, endTime, service, limit, offset)

	response := models.SessionsResponse{
		Sessions: sessions,
		Total:    total,
	}
	if _, err := render.Check(ctx); err != nil {
		response.Error = err.Error()
	}

	return response
}

func (render *Render) SimpleHealthCheck() bool {
	return render.State.Check()
}
