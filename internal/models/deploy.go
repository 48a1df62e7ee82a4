package models

import (
	"strings"
	"time"
)

// DeployStatus is the lifecycle state of a single Render deploy.
type DeployStatus string

const (
	DeployCreated             DeployStatus = "created"
	DeployPreDeployInProgress DeployStatus = "pre_deploy_in_progress"
	DeployBuildInProgress     DeployStatus = "build_in_progress"
	DeployUpdateInProgress    DeployStatus = "update_in_progress"
	DeployLive                DeployStatus = "live"
	DeployDeactivated         DeployStatus = "deactivated"
	DeployBuildFailed         DeployStatus = "build_failed"
	DeployPreDeployFailed     DeployStatus = "pre_deploy_failed"
	DeployUpdateFailed        DeployStatus = "update_failed"
	DeployCanceled            DeployStatus = "canceled"
)

// legacy spellings returned by older API versions and scripts
var deployStatusAliases = map[string]DeployStatus{
	"success":       DeployLive,
	"deploy_failed": DeployUpdateFailed,
	"cancelled":     DeployCanceled,
}

// ParseDeployStatus normalizes a raw status value received from the Render API.
func ParseDeployStatus(raw string) DeployStatus {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := deployStatusAliases[normalized]; ok {
		return alias
	}
	return DeployStatus(normalized)
}

// IsTerminal reports whether no further transition happens after this status.
// Unknown statuses are treated as non-terminal.
func (s DeployStatus) IsTerminal() bool {
	switch s {
	case DeployLive, DeployBuildFailed, DeployPreDeployFailed, DeployUpdateFailed, DeployCanceled:
		return true
	}
	return false
}

// IsSuccess reports whether the deploy reached the live state.
func (s DeployStatus) IsSuccess() bool {
	return s == DeployLive
}

func (s DeployStatus) String() string {
	return string(s)
}

type Commit struct {
	Id        string    `json:"id" yaml:"id"`
	Message   string    `json:"message,omitempty" yaml:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
}

// Deploy mirrors the deploy object of the Render API.
type Deploy struct {
	Id         string       `json:"id" yaml:"id"`
	Commit     *Commit      `json:"commit,omitempty" yaml:"commit,omitempty"`
	Status     DeployStatus `json:"status" yaml:"status"`
	Trigger    string       `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	CreatedAt  time.Time    `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt  time.Time    `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
	FinishedAt *time.Time   `json:"finishedAt,omitempty" yaml:"finished_at,omitempty"`
}

// Normalize lowercases the status and resolves known aliases in place.
func (d *Deploy) Normalize() {
	d.Status = ParseDeployStatus(string(d.Status))
}

// TriggerDeployRequest is the payload of POST /services/{id}/deploys.
type TriggerDeployRequest struct {
	ClearCache string `json:"clearCache"`
}

const (
	ClearCacheClear      = "clear"
	ClearCacheDoNotClear = "do_not_clear"
)
