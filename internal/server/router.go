package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/shini4i/render-watcher/cmd/render-watcher/docs"
	"github.com/shini4i/render-watcher/internal/auth"
)

var version = "local"

// Version returns the build version injected at link time.
func Version() string {
	return version
}

const (
	deployLockEndpoint  = "/deploy-lock"
	unauthorizedMessage = "You are not authorized to perform this action"
	historyExportBatch  = 1000
)

// CreateRouter initialize router.
func (env *Env) CreateRouter() *gin.Engine {
	docs.SwaggerInfo.Title = "Render-Watcher API"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "Triggers and watches Render deploys"

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(env.corsConfig()))

	router.GET("/healthz", env.healthz)
	router.GET("/metrics", prometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ws", env.handleWebSocketConnection)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/version", env.versionHandler)
		v1.GET("/config", env.configHandler)
		v1.GET("/sessions", env.sessionsHandler)
		v1.GET("/sessions/export", env.requireAuth(), env.exportSessions)
		v1.GET("/sessions/:id", env.sessionHandler)
		v1.DELETE("/sessions/:id", env.requireAuth(), env.cancelSessionHandler)
		v1.GET(deployLockEndpoint, env.isDeployLockSet)
		v1.POST(deployLockEndpoint, env.requireAuth(), env.SetDeployLock)
		v1.DELETE(deployLockEndpoint, env.requireAuth(), env.ReleaseDeployLock)
	}

	renderGroup := v1.Group("/render", env.requireAuth())
	{
		renderGroup.GET("/status", env.statusHandler)
		renderGroup.GET("/health", env.renderHealthHandler)
		renderGroup.GET("/deploy-status", env.deployStatusHandler)
		renderGroup.POST("/redeploy", env.redeployHandler)
		renderGroup.POST("/watch", env.watchHandler)
		renderGroup.GET("/env-vars", env.envVarsHandler)
		renderGroup.POST("/env-vars/:key", env.setEnvVarHandler)
		renderGroup.GET("/logs", env.logsHandler)
		renderGroup.GET("/databases", env.databasesHandler)
		renderGroup.GET("/databases/:id", env.databaseHandler)
	}

	return router
}

func (env *Env) corsConfig() cors.Config {
	config := cors.Config{
		AllowMethods:           []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:           []string{"Origin", "Content-Type", "Accept", auth.AuthorizationHeader, auth.ApiKeyHeader},
		ExposeHeaders:          []string{"Content-Length", "Content-Disposition"},
		AllowWebSockets:        true,
		AllowBrowserExtensions: true,
		MaxAge:                 12 * time.Hour,
	}

	if env.config.DevEnvironment {
		config.AllowOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
		config.AllowCredentials = true
	} else {
		config.AllowAllOrigins = true
	}

	return config
}

// prometheusHandler returns the default promhttp handler.
func prometheusHandler() gin.HandlerFunc {
	ph := promhttp.Handler()

	return func(c *gin.Context) {
		ph.ServeHTTP(c.Writer, c.Request)
	}
}
