package models

import "time"

// Outcome is the terminal state of a monitoring session.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimedOut  Outcome = "timed_out"
	OutcomeCanceled  Outcome = "canceled"
)

const (
	// ReasonAPIUnreachable is reported when consecutive poll failures exhaust the retry budget.
	ReasonAPIUnreachable = "api_unreachable"
	// ReasonInvalidInput is reported when the session was started with unusable arguments.
	ReasonInvalidInput = "invalid_input"
)

// MonitorResult is produced exactly once per monitoring session.
type MonitorResult struct {
	Outcome    Outcome       `json:"outcome" yaml:"outcome"`
	Reason     string        `json:"reason,omitempty" yaml:"reason,omitempty"`
	LastStatus DeployStatus  `json:"last_status,omitempty" yaml:"last_status,omitempty"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
	Polls      int           `json:"polls" yaml:"polls"`
}

func (r MonitorResult) Succeeded() bool {
	return r.Outcome == OutcomeSucceeded
}

// String renders the result the way it is shown to users, e.g. "failed(build_failed)".
func (r MonitorResult) String() string {
	if r.Reason != "" {
		return string(r.Outcome) + "(" + r.Reason + ")"
	}
	return string(r.Outcome)
}

// Progress is a single observed status transition.
type Progress struct {
	Elapsed time.Duration `json:"elapsed"`
	Status  DeployStatus  `json:"status"`
}

// Report is what the monitor hands to its observer. Result is set only on the final report.
type Report struct {
	ServiceId string         `json:"service_id"`
	DeployId  string         `json:"deploy_id"`
	Progress  *Progress      `json:"progress,omitempty"`
	Result    *MonitorResult `json:"result,omitempty"`
}
