package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusFromOutcome(t *testing.T) {
	assert.Equal(t, StatusSucceededMessage, StatusFromOutcome(OutcomeSucceeded))
	assert.Equal(t, StatusFailedMessage, StatusFromOutcome(OutcomeFailed))
	assert.Equal(t, StatusTimedOutMessage, StatusFromOutcome(OutcomeTimedOut))
	assert.Equal(t, StatusCanceledMessage, StatusFromOutcome(OutcomeCanceled))
}

func TestMonitorResultString(t *testing.T) {
	assert.Equal(t, "succeeded", MonitorResult{Outcome: OutcomeSucceeded}.String())
	assert.Equal(t, "failed(build_failed)", MonitorResult{Outcome: OutcomeFailed, Reason: "build_failed"}.String())
}

func TestSessionApplyReport(t *testing.T) {
	session := Session{Id: "id", Status: StatusInProgressMessage}
	assert.False(t, session.IsFinished())

	session.ApplyReport(Report{Progress: &Progress{Elapsed: 5 * time.Second, Status: DeployBuildInProgress}})
	assert.Equal(t, DeployBuildInProgress, session.DeployStatus)
	assert.Equal(t, []Transition{{Status: DeployBuildInProgress, ElapsedMs: 5000}}, session.Transitions)
	assert.False(t, session.IsFinished())

	session.ApplyReport(Report{Result: &MonitorResult{Outcome: OutcomeFailed, Reason: string(DeployBuildFailed)}})
	assert.Equal(t, StatusFailedMessage, session.Status)
	assert.Equal(t, "build_failed", session.StatusReason)
	assert.True(t, session.IsFinished())
	assert.NotZero(t, session.Updated)
}
