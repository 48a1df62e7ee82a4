package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/helpers"
	m "github.com/shini4i/render-watcher/internal/models"
)

// each GET of a deploy moves it one step further
var (
	successfulRollout = []m.DeployStatus{m.DeployCreated, m.DeployBuildInProgress, m.DeployUpdateInProgress, m.DeployLive}
	failingRollout    = []m.DeployStatus{m.DeployCreated, m.DeployBuildInProgress, m.DeployBuildFailed}
)

type mockDeploy struct {
	deploy  m.Deploy
	rollout []m.DeployStatus
	polls   int
}

// mockRender is an in-memory stand-in for the parts of the Render API the watcher uses.
type mockRender struct {
	mu        sync.Mutex
	services  []m.Service
	deploys   map[string][]*mockDeploy
	envVars   map[string][]m.EnvVar
	databases []m.Postgres
	counter   int
}

func newMockRender() *mockRender {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &mockRender{
		services: []m.Service{
			{Id: "srv-mock", Name: "mock-app", Type: "web_service", Suspended: "not_suspended", ServiceDetails: m.ServiceDetails{Url: "https://mock-app.onrender.com"}, CreatedAt: created, UpdatedAt: created},
			{Id: "srv-broken", Name: "broken-app", Type: "web_service", Suspended: "not_suspended", CreatedAt: created, UpdatedAt: created},
		},
		deploys: make(map[string][]*mockDeploy),
		envVars: map[string][]m.EnvVar{
			"srv-mock": {{Key: "PORT", Value: "10000"}, {Key: "API_KEY", Value: "mock-secret"}},
		},
		databases: []m.Postgres{
			{Id: "dpg-mock", Name: "mock-db", Status: "available", Plan: "basic_256mb", Region: "frankfurt", Version: "16", DatabaseName: "mock", CreatedAt: created},
		},
	}
}

func setupRouter(mock *mockRender) *gin.Engine {
	router := gin.Default()

	apiGroup := router.Group("/v1", requireBearer)
	apiGroup.GET("/services", mock.listServices)
	apiGroup.GET("/services/:id", mock.getService)
	apiGroup.GET("/services/:id/deploys", mock.listDeploys)
	apiGroup.POST("/services/:id/deploys", mock.triggerDeploy)
	apiGroup.GET("/services/:id/deploys/:deployId", mock.getDeploy)
	apiGroup.GET("/services/:id/env-vars", mock.listEnvVars)
	apiGroup.PUT("/services/:id/env-vars/:key", mock.updateEnvVar)
	apiGroup.GET("/services/:id/logs", mock.logs)
	apiGroup.GET("/postgres", mock.listPostgres)
	apiGroup.GET("/postgres/:id", mock.getPostgres)

	return router
}

func requireBearer(c *gin.Context) {
	if strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, m.RenderApiErrorResponse{Id: "unauthorized", Message: "invalid api key"})
		return
	}
	c.Next()
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, m.RenderApiErrorResponse{Id: "not_found", Message: what + " not found"})
}

func (mock *mockRender) service(id string) (m.Service, bool) {
	for _, service := range mock.services {
		if service.Id == id {
			return service, true
		}
	}
	return m.Service{}, false
}

func (mock *mockRender) listServices(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	name := c.Query("name")
	items := []gin.H{}
	for _, service := range mock.services {
		if name != "" && !strings.Contains(service.Name, name) {
			continue
		}
		items = append(items, gin.H{"cursor": service.Id, "service": service})
	}
	c.JSON(http.StatusOK, items)
}

func (mock *mockRender) getService(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	service, ok := mock.service(c.Param("id"))
	if !ok {
		notFound(c, "service")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (mock *mockRender) listDeploys(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if _, ok := mock.service(c.Param("id")); !ok {
		notFound(c, "service")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}

	deploys := mock.deploys[c.Param("id")]
	items := []gin.H{}
	// newest first
	for index := len(deploys) - 1; index >= 0 && len(items) < limit; index-- {
		items = append(items, gin.H{"cursor": deploys[index].deploy.Id, "deploy": deploys[index].deploy})
	}
	c.JSON(http.StatusOK, items)
}

func (mock *mockRender) triggerDeploy(c *gin.Context) {
	var request m.TriggerDeployRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, m.RenderApiErrorResponse{Id: "invalid_request", Message: err.Error()})
		return
	}

	mock.mu.Lock()
	defer mock.mu.Unlock()

	serviceId := c.Param("id")
	if _, ok := mock.service(serviceId); !ok {
		notFound(c, "service")
		return
	}

	rollout := successfulRollout
	if serviceId == "srv-broken" {
		rollout = failingRollout
	}

	mock.counter++
	now := time.Now().UTC()
	deploy := &mockDeploy{
		deploy: m.Deploy{
			Id:        fmt.Sprintf("dep-mock-%d", mock.counter),
			Status:    rollout[0],
			Trigger:   "api",
			Commit:    &m.Commit{Id: "0123456789abcdef", Message: "mock commit", CreatedAt: now},
			CreatedAt: now,
			UpdatedAt: now,
		},
		rollout: rollout,
	}
	mock.deploys[serviceId] = append(mock.deploys[serviceId], deploy)

	log.Info().Str("service", serviceId).Str("deploy", deploy.deploy.Id).Msgf("Triggered mock deploy (clear cache: %s)", request.ClearCache)
	c.JSON(http.StatusCreated, deploy.deploy)
}

func (mock *mockRender) getDeploy(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	for _, deploy := range mock.deploys[c.Param("id")] {
		if deploy.deploy.Id != c.Param("deployId") {
			continue
		}

		step := deploy.polls
		if step >= len(deploy.rollout) {
			step = len(deploy.rollout) - 1
		}
		deploy.polls++
		deploy.deploy.Status = deploy.rollout[step]
		deploy.deploy.UpdatedAt = time.Now().UTC()
		if deploy.deploy.Status.IsTerminal() && deploy.deploy.FinishedAt == nil {
			finished := deploy.deploy.UpdatedAt
			deploy.deploy.FinishedAt = &finished
		}

		c.JSON(http.StatusOK, deploy.deploy)
		return
	}
	notFound(c, "deploy")
}

func (mock *mockRender) listEnvVars(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	if _, ok := mock.service(c.Param("id")); !ok {
		notFound(c, "service")
		return
	}

	items := []gin.H{}
	for _, envVar := range mock.envVars[c.Param("id")] {
		items = append(items, gin.H{"cursor": envVar.Key, "envVar": envVar})
	}
	c.JSON(http.StatusOK, items)
}

func (mock *mockRender) updateEnvVar(c *gin.Context) {
	var request m.UpdateEnvVarRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, m.RenderApiErrorResponse{Id: "invalid_request", Message: err.Error()})
		return
	}

	mock.mu.Lock()
	defer mock.mu.Unlock()

	serviceId := c.Param("id")
	if _, ok := mock.service(serviceId); !ok {
		notFound(c, "service")
		return
	}

	updated := m.EnvVar{Key: c.Param("key"), Value: request.Value}
	envVars := mock.envVars[serviceId]
	replaced := false
	for index := range envVars {
		if envVars[index].Key == updated.Key {
			envVars[index] = updated
			replaced = true
		}
	}
	if !replaced {
		envVars = append(envVars, updated)
	}
	mock.envVars[serviceId] = envVars

	c.JSON(http.StatusOK, updated)
}

func (mock *mockRender) logs(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	service, ok := mock.service(c.Param("id"))
	if !ok {
		notFound(c, "service")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		limit = 100
	}

	var lines []string
	for _, deploy := range mock.deploys[service.Id] {
		lines = append(lines, fmt.Sprintf("==> Deploy %s is %s", deploy.deploy.Id, deploy.deploy.Status))
		if deploy.deploy.Status == m.DeployBuildFailed {
			lines = append(lines, "==> Build failed: exit status 1")
		}
	}
	lines = append(lines, fmt.Sprintf("==> %s is listening on port 10000", service.Name))

	c.String(http.StatusOK, helpers.TailLines(strings.Join(lines, "\n"), limit))
}

func (mock *mockRender) listPostgres(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	items := []gin.H{}
	for _, database := range mock.databases {
		items = append(items, gin.H{"cursor": database.Id, "postgres": database})
	}
	c.JSON(http.StatusOK, items)
}

func (mock *mockRender) getPostgres(c *gin.Context) {
	mock.mu.Lock()
	defer mock.mu.Unlock()

	for _, database := range mock.databases {
		if database.Id == c.Param("id") {
			c.JSON(http.StatusOK, database)
			return
		}
	}
	notFound(c, "postgres")
}

func main() {
	log.Info().Msg("Starting mock Render API on :8081")

	router := setupRouter(newMockRender())

	if err := router.Run(":8081"); err != nil {
		log.Error().Err(err).Msg("mock server stopped")
		os.Exit(1)
	}
}
