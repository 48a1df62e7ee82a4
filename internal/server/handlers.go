package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/models"
)

// versionHandler godoc
// @Summary Get the version of the server
// @Tags frontend
// @Success 200 {string} string
// @Router /api/v1/version [get]
func (env *Env) versionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version)
}

// healthz godoc
// @Summary Check if the server is healthy
// @Description Check if the session history backend is reachable
// @Tags service
// @Produce json
// @Success 200 {object} models.HealthStatus
// @Failure 503 {object} models.HealthStatus
// @Router /healthz [get]
func (env *Env) healthz(c *gin.Context) {
	if env.render.SimpleHealthCheck() {
		c.JSON(http.StatusOK, models.HealthStatus{
			Status: "up",
		})
	} else {
		c.JSON(http.StatusServiceUnavailable, models.HealthStatus{
			Status: "down",
		})
	}
}

// configHandler godoc
// @Summary Get the configuration of the server (excluding sensitive data)
// @Tags backend
// @Produce json
// @Success 200 {object} config.ServerConfig
// @Router /api/v1/config [get]
func (env *Env) configHandler(c *gin.Context) {
	c.JSON(http.StatusOK, env.config)
}

// sessionsHandler godoc
// @Summary List monitoring sessions
// @Description Get all sessions that match the provided parameters
// @Tags backend, frontend
// @Param service query string false "Service id or name"
// @Param from_timestamp query number false "From timestamp (seconds since epoch)"
// @Param to_timestamp query number false "To timestamp (seconds since epoch)"
// @Param limit query int false "Maximum number of sessions to return"
// @Param offset query int false "Number of sessions to skip"
// @Success 200 {object} models.SessionsResponse
// @Router /api/v1/sessions [get]
func (env *Env) sessionsHandler(c *gin.Context) {
	startTime, err := parseTimestampOrDefault(c.Query("from_timestamp"), 0)
	if err != nil {
		log.Warn().Msgf("invalid from_timestamp provided, using default: %v", err)
		startTime = 0
	}

	endTime, err := parseTimestampOrDefault(c.Query("to_timestamp"), float64(time.Now().Unix()))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ApiResponse{
			Message: fmt.Sprintf("invalid to_timestamp: %v", err),
		})
		return
	}

	limit, err := parseNonNegativeIntOrDefault(c.Query("limit"), 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ApiResponse{
			Message: fmt.Sprintf("invalid limit: %v", err),
		})
		return
	}

	offset, err := parseNonNegativeIntOrDefault(c.Query("offset"), 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ApiResponse{
			Message: fmt.Sprintf("invalid offset: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, env.render.GetSessions(c.Request.Context(), startTime, endTime, c.Query("service"), limit, offset))
}

// sessionHandler godoc
// @Summary Get a monitoring session
// @Param id path string true "Session id"
// @Tags backend
// @Produce json
// @Success 200 {object} models.Session
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/sessions/{id} [get]
func (env *Env) sessionHandler(c *gin.Context) {
	session, err := env.render.State.GetSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// cancelSessionHandler godoc
// @Summary Stop watching a running session
// @Param id path string true "Session id"
// @Tags backend
// @Produce json
// @Success 202 {object} models.ApiStatus
// @Failure 404 {object} models.ApiResponse
// @Router /api/v1/sessions/{id} [delete]
func (env *Env) cancelSessionHandler(c *gin.Context) {
	id := c.Param("id")
	if err := env.deployer.Cancel(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, models.ApiStatus{
		Id:     id,
		Status: models.StatusCanceledMessage,
	})
}

// SetDeployLock godoc
// @Summary Set deploy lock
// @Tags frontend
// @Success 200 {string} string
// @Router /api/v1/deploy-lock [post]
func (env *Env) SetDeployLock(c *gin.Context) {
	env.lockdown.SetLock()

	log.Debug().Msg("deploy lock is set")

	env.broadcaster.Broadcast([]byte(lockedMessage))

	c.JSON(http.StatusOK, "deploy lock is set")
}

// ReleaseDeployLock godoc
// @Summary Release deploy lock
// @Tags frontend
// @Success 200 {string} string
// @Router /api/v1/deploy-lock [delete]
func (env *Env) ReleaseDeployLock(c *gin.Context) {
	env.lockdown.ReleaseLock()

	log.Debug().Msg("deploy lock is released")

	env.broadcaster.Broadcast([]byte(unlockedMessage))

	c.JSON(http.StatusOK, "deploy lock is released")
}

// isDeployLockSet godoc
// @Summary Check if deploy lock is set
// @Tags frontend
// @Success 200 {boolean} boolean
// @Router /api/v1/deploy-lock [get]
func (env *Env) isDeployLockSet(c *gin.Context) {
	c.JSON(http.StatusOK, env.lockdown.IsLocked())
}
