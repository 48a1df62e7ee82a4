package models

import (
	"encoding/json"
	"time"
)

type ServiceDetails struct {
	Url     string `json:"url,omitempty"`
	Plan    string `json:"plan,omitempty"`
	Region  string `json:"region,omitempty"`
	Runtime string `json:"runtime,omitempty"`
}

// Service mirrors the service object of the Render API.
type Service struct {
	Id             string         `json:"id"`
	Name           string         `json:"name"`
	Type           string         `json:"type,omitempty"`
	Suspended      string         `json:"suspended,omitempty"`
	Repo           string         `json:"repo,omitempty"`
	Branch         string         `json:"branch,omitempty"`
	AutoDeploy     string         `json:"autoDeploy,omitempty"`
	DashboardUrl   string         `json:"dashboardUrl,omitempty"`
	ServiceDetails ServiceDetails `json:"serviceDetails"`
	CreatedAt      time.Time      `json:"createdAt,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt,omitempty"`
}

// IsSuspended reports whether Render marked the service as suspended.
func (s *Service) IsSuspended() bool {
	return s.Suspended == "suspended"
}

// ServiceInfo is the flattened view printed by "status" and returned by /render/status.
type ServiceInfo struct {
	Id           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Status       string       `json:"status" yaml:"status"`
	Url          string       `json:"url,omitempty" yaml:"url,omitempty"`
	LatestDeploy *Deploy      `json:"latest_deploy,omitempty" yaml:"latest_deploy,omitempty"`
	CreatedAt    time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" yaml:"updated_at"`
	DeployStatus DeployStatus `json:"deploy_status,omitempty" yaml:"deploy_status,omitempty"`
}

// EnvVar is a single environment variable of a service.
type EnvVar struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// UpdateEnvVarRequest is the payload of PUT /services/{id}/env-vars/{key}.
type UpdateEnvVarRequest struct {
	Value string `json:"value"`
}

// Postgres mirrors the Render Postgres instance object.
type Postgres struct {
	Id           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Status       string    `json:"status" yaml:"status"`
	Plan         string    `json:"plan,omitempty" yaml:"plan,omitempty"`
	Region       string    `json:"region,omitempty" yaml:"region,omitempty"`
	Version      string    `json:"version,omitempty" yaml:"version,omitempty"`
	DatabaseName string    `json:"databaseName,omitempty" yaml:"database_name,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// ListItem is the cursor envelope Render wraps list results in, e.g.
// {"cursor": "...", "service": {...}}. The payload key differs per resource.
type ListItem struct {
	Cursor   string          `json:"cursor"`
	Service  json.RawMessage `json:"service,omitempty"`
	Deploy   json.RawMessage `json:"deploy,omitempty"`
	EnvVar   json.RawMessage `json:"envVar,omitempty"`
	Postgres json.RawMessage `json:"postgres,omitempty"`
}

type RenderApiErrorResponse struct {
	Id      string `json:"id"`
	Message string `json:"message"`
}
