package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/render"
	"github.com/shini4i/render-watcher/internal/state"
)

// requireAuth rejects requests that no configured strategy accepts.
// Without API_KEY and JWT_SECRET every request passes.
func (env *Env) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !env.authenticator.Enabled() {
			c.Next()
			return
		}

		valid, err := env.authenticator.Validate(c.Request)
		if err != nil {
			log.Debug().Msgf("Token validation failed for [%s] %s: %s", c.Request.Method, c.Request.URL.Path, err)
		}
		if !valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ApiResponse{
				Success: false,
				Message: unauthorizedMessage,
			})
			return
		}

		c.Next()
	}
}

// respondError writes err with the status code matching its kind.
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), models.ApiResponse{
		Success: false,
		Message: err.Error(),
	})
}

func statusForError(err error) int {
	var apiErr *render.APIError

	switch {
	case errors.Is(err, render.ErrDeployInProgress):
		return http.StatusConflict
	case errors.Is(err, state.ErrSessionNotFound),
		errors.Is(err, render.ErrSessionNotRunning),
		errors.Is(err, render.ErrServiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, config.ErrServiceNotConfigured):
		return http.StatusInternalServerError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

func parseTimestampOrDefault(value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseBoolOrDefault(value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

// parseNonNegativeIntOrDefault clamps negative values to zero.
func parseNonNegativeIntOrDefault(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return max(parsed, 0), nil
}
