package models

import "time"

const (
	StatusInProgressMessage = "in progress"
	StatusSucceededMessage  = "succeeded"
	StatusFailedMessage     = "failed"
	StatusTimedOutMessage   = "timed out"
	StatusCanceledMessage   = "canceled"
	StatusAborted           = "aborted"
	StatusAccepted          = "accepted"

	StatusRenderUnavailableMessage = "render api is unavailable"
	StatusConnectionUnavailable    = "cannot connect to database"
)

// StatusFromOutcome maps a monitor outcome to the session status stored in history.
func StatusFromOutcome(outcome Outcome) string {
	switch outcome {
	case OutcomeSucceeded:
		return StatusSucceededMessage
	case OutcomeTimedOut:
		return StatusTimedOutMessage
	case OutcomeCanceled:
		return StatusCanceledMessage
	default:
		return StatusFailedMessage
	}
}

// Transition is one status change recorded during a session.
type Transition struct {
	Status    DeployStatus `json:"status" yaml:"status"`
	ElapsedMs int64        `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Session is the persisted record of a single monitoring session.
type Session struct {
	Id           string       `json:"id,omitempty" yaml:"id,omitempty"`
	Created      float64      `json:"created,omitempty" yaml:"created,omitempty"`
	Updated      float64      `json:"updated,omitempty" yaml:"updated,omitempty"`
	ServiceId    string       `json:"service_id" yaml:"service_id" binding:"required"`
	ServiceName  string       `json:"service_name,omitempty" yaml:"service_name,omitempty"`
	DeployId     string       `json:"deploy_id" yaml:"deploy_id" binding:"required"`
	Author       string       `json:"author,omitempty" yaml:"author,omitempty"`
	Status       string       `json:"status,omitempty" yaml:"status,omitempty"`
	StatusReason string       `json:"status_reason,omitempty" yaml:"status_reason,omitempty"`
	DeployStatus DeployStatus `json:"deploy_status,omitempty" yaml:"deploy_status,omitempty"`
	Transitions  []Transition `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// IsFinished reports whether the session already reached a terminal state.
func (session *Session) IsFinished() bool {
	return session.Status != "" && session.Status != StatusInProgressMessage
}

// ApplyReport folds a monitor report into the session record.
func (session *Session) ApplyReport(report Report) {
	if report.Progress != nil {
		session.DeployStatus = report.Progress.Status
		session.Transitions = append(session.Transitions, Transition{
			Status:    report.Progress.Status,
			ElapsedMs: report.Progress.Elapsed.Milliseconds(),
		})
	}
	if report.Result != nil {
		session.Status = StatusFromOutcome(report.Result.Outcome)
		session.StatusReason = report.Result.Reason
		session.Updated = float64(time.Now().Unix())
	}
}

type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int64     `json:"total"`
	Error    string    `json:"error,omitempty"`
}

type HealthStatus struct {
	Status string `json:"status"`
}

// ApiStatus is the generic response envelope of the HTTP API.
type ApiStatus struct {
	Id       string `json:"id,omitempty"`
	DeployId string `json:"deploy_id,omitempty"`
	Status   string `json:"status,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ApiResponse wraps successful pass-through responses, matching {"success": true, "data": ...}.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}
