package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/render"
)

const defaultLogLines = 100

// watchResponse is returned by redeploy and watch requests that wait for the result.
type watchResponse struct {
	SessionId string               `json:"session_id"`
	DeployId  string               `json:"deploy_id"`
	Result    models.MonitorResult `json:"result"`
	Summary   string               `json:"summary"`
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, models.ApiResponse{
		Success: true,
		Data:    data,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ApiResponse{
		Success: false,
		Message: message,
	})
}

// statusHandler godoc
// @Summary Get the configured service and its latest deploy
// @Tags render
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/status [get]
func (env *Env) statusHandler(c *gin.Context) {
	info, err := env.render.ServiceInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, info)
}

// renderHealthHandler godoc
// @Summary Check that the Render API and the configured service are reachable
// @Tags render
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Failure 503 {object} models.ApiStatus
// @Router /api/v1/render/health [get]
func (env *Env) renderHealthHandler(c *gin.Context) {
	status, err := env.render.Check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ApiStatus{
			Status: status,
			Error:  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, models.HealthStatus{Status: status})
}

// deployStatusHandler godoc
// @Summary Get a deploy of the configured service
// @Tags render
// @Param deploy_id query string false "Deploy id, the latest deploy when omitted"
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/deploy-status [get]
func (env *Env) deployStatusHandler(c *gin.Context) {
	deploy, err := env.render.Deploy(c.Request.Context(), c.Query("deploy_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, deploy)
}

// redeployHandler godoc
// @Summary Trigger a deploy of the configured service and watch it
// @Description Without watch the session runs in the background and 202 is returned at once.
// @Tags render
// @Param clear_cache query bool false "Clear the build cache"
// @Param watch query bool false "Wait for the final result"
// @Param author query string false "Who requested the deploy"
// @Produce json
// @Success 202 {object} models.ApiStatus
// @Success 200 {object} models.ApiResponse
// @Failure 406 {object} models.ApiStatus
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/render/redeploy [post]
func (env *Env) redeployHandler(c *gin.Context) {
	// manual lock or scheduled window
	if env.lockdown.IsLocked() {
		log.Warn().Msg("deploy lock is set, rejecting the redeploy")
		c.JSON(http.StatusNotAcceptable, models.ApiStatus{
			Status: "rejected",
			Error:  "lockdown is active, deployments are not accepted",
		})
		return
	}

	clearCache, err := parseBoolOrDefault(c.Query("clear_cache"), false)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid clear_cache flag: %v", err))
		return
	}
	wait, err := parseBoolOrDefault(c.Query("watch"), false)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid watch flag: %v", err))
		return
	}

	session, err := env.deployer.Redeploy(c.Request.Context(), render.RedeployRequest{
		ClearCache: clearCache,
		Author:     c.Query("author"),
	})
	if err != nil {
		log.Error().Msgf("Couldn't trigger a redeploy. Got the following error: %s", err)
		respondError(c, err)
		return
	}

	env.startWatch(c, session, wait)
}

// watchHandler godoc
// @Summary Watch an existing deploy of the configured service
// @Tags render
// @Param deploy_id query string false "Deploy id, the latest deploy when omitted"
// @Param watch query bool false "Wait for the final result"
// @Param author query string false "Who requested the watch"
// @Produce json
// @Success 202 {object} models.ApiStatus
// @Success 200 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /api/v1/render/watch [post]
func (env *Env) watchHandler(c *gin.Context) {
	wait, err := parseBoolOrDefault(c.Query("watch"), false)
	if err != nil {
		badRequest(c, fmt.Sprintf("invalid watch flag: %v", err))
		return
	}

	session, err := env.deployer.Attach(c.Request.Context(), c.Query("deploy_id"), c.Query("author"))
	if err != nil {
		respondError(c, err)
		return
	}

	env.startWatch(c, session, wait)
}

// startWatch either blocks until the session ends or hands it to a background watch.
func (env *Env) startWatch(c *gin.Context, session *models.Session, wait bool) {
	if wait {
		result := env.deployer.Watch(c.Request.Context(), session, nil)
		c.JSON(http.StatusOK, models.ApiResponse{
			Success: result.Succeeded(),
			Data: watchResponse{
				SessionId: session.Id,
				DeployId:  session.DeployId,
				Result:    result,
				Summary:   result.String(),
			},
		})
		return
	}

	env.deployer.WatchInBackground(env.watchCtx, session)

	c.JSON(http.StatusAccepted, models.ApiStatus{
		Id:       session.Id,
		DeployId: session.DeployId,
		Status:   models.StatusAccepted,
	})
}

// envVarsHandler godoc
// @Summary List environment variables of the configured service with secrets redacted
// @Tags render
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/env-vars [get]
func (env *Env) envVarsHandler(c *gin.Context) {
	envVars, err := env.render.EnvVars(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, envVars)
}

// setEnvVarHandler godoc
// @Summary Set an environment variable of the configured service
// @Tags render
// @Accept json
// @Param key path string true "Variable name"
// @Param payload body models.UpdateEnvVarRequest true "New value"
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/env-vars/{key} [post]
func (env *Env) setEnvVarHandler(c *gin.Context) {
	var payload models.UpdateEnvVarRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, fmt.Sprintf("invalid payload: %v", err))
		return
	}

	envVar, err := env.render.SetEnvVar(c.Request.Context(), c.Param("key"), payload.Value)
	if err != nil {
		respondError(c, err)
		return
	}

	redacted := helpers.RedactEnvVars([]models.EnvVar{*envVar}, env.config.RedactedEnvKeys)
	success(c, http.StatusOK, redacted[0])
}

// logsHandler godoc
// @Summary Get recent log lines of the configured service
// @Tags render
// @Param lines query int false "Number of lines" default(100)
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/logs [get]
func (env *Env) logsHandler(c *gin.Context) {
	lines, err := parseNonNegativeIntOrDefault(c.Query("lines"), defaultLogLines)
	if err != nil || lines == 0 {
		badRequest(c, "lines must be a positive number")
		return
	}

	logs, err := env.render.Logs(c.Request.Context(), lines)
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, logs)
}

// databasesHandler godoc
// @Summary List Render Postgres instances
// @Tags render
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/databases [get]
func (env *Env) databasesHandler(c *gin.Context) {
	databases, err := env.render.Databases(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, databases)
}

// databaseHandler godoc
// @Summary Get a Render Postgres instance
// @Tags render
// @Param id path string true "Postgres id"
// @Produce json
// @Success 200 {object} models.ApiResponse
// @Router /api/v1/render/databases/{id} [get]
func (env *Env) databaseHandler(c *gin.Context) {
	database, err := env.render.Database(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	success(c, http.StatusOK, database)
}
