package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shini4i/render-watcher/internal/models"
)

func newSession(serviceId, serviceName, deployId string) models.Session {
	return models.Session{
		ServiceId:   serviceId,
		ServiceName: serviceName,
		DeployId:    deployId,
		Author:      "Test Author",
	}
}

func TestInMemoryState_AddAndGetSession(t *testing.T) {
	state := InMemoryState{}

	added, err := state.AddSession(newSession("srv-1", "api", "dep-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, added.Id)
	assert.Equal(t, models.StatusInProgressMessage, added.Status)

	session, err := state.GetSession(added.Id)
	require.NoError(t, err)
	assert.Equal(t, "dep-1", session.DeployId)

	_, err = state.GetSession("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestInMemoryState_GetSessions(t *testing.T) {
	state := InMemoryState{}
	first, _ := state.AddSession(newSession("srv-1", "api", "dep-1"))
	second, _ := state.AddSession(newSession("srv-2", "worker", "dep-2"))
	state.sessions[0].Created -= 5

	now := float64(time.Now().Unix())

	sessions, total := state.GetSessions(now-60, now, "", 0, 0)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{second.Id, first.Id}, []string{sessions[0].Id, sessions[1].Id})

	byName, total := state.GetSessions(now-60, now, "api", 0, 0)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.Id, byName[0].Id)

	byId, total := state.GetSessions(now-60, now, "srv-2", 0, 0)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, second.Id, byId[0].Id)

	paged, total := state.GetSessions(now-60, now, "", 1, 1)
	assert.Equal(t, int64(2), total)
	require.Len(t, paged, 1)
	assert.Equal(t, first.Id, paged[0].Id)

	empty, total := state.GetSessions(now-60, now, "", 1, 5)
	assert.Equal(t, int64(2), total)
	assert.Empty(t, empty)

	none, total := state.GetSessions(now+60, now+120, "", 0, 0)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, none)
}

func TestInMemoryState_RecordReport(t *testing.T) {
	state := InMemoryState{}
	added, _ := state.AddSession(newSession("srv-1", "api", "dep-1"))

	err := state.RecordReport(added.Id, models.Report{
		Progress: &models.Progress{Elapsed: 5 * time.Second, Status: models.DeployBuildInProgress},
	})
	require.NoError(t, err)
	assert.True(t, state.HasActiveSession("srv-1"))

	err = state.RecordReport(added.Id, models.Report{
		Result: &models.MonitorResult{Outcome: models.OutcomeFailed, Reason: "build_failed"},
	})
	require.NoError(t, err)

	session, _ := state.GetSession(added.Id)
	assert.Equal(t, models.StatusFailedMessage, session.Status)
	assert.Equal(t, "build_failed", session.StatusReason)
	assert.Equal(t, models.DeployBuildInProgress, session.DeployStatus)
	assert.Equal(t, []models.Transition{{Status: models.DeployBuildInProgress, ElapsedMs: 5000}}, session.Transitions)
	assert.False(t, state.HasActiveSession("srv-1"))

	assert.ErrorIs(t, state.RecordReport("missing", models.Report{}), ErrSessionNotFound)
}

func TestInMemoryState_ProcessObsoleteSessions(t *testing.T) {
	state := InMemoryState{}
	_, _ = state.AddSession(newSession("srv-1", "api", "dep-1"))
	_, _ = state.AddSession(newSession("srv-2", "worker", "dep-2"))
	state.sessions[1].Updated -= SessionStaleThresholdSeconds + 1

	state.ProcessObsoleteSessions(1)

	assert.Equal(t, models.StatusInProgressMessage, state.sessions[0].Status)
	assert.Equal(t, models.StatusAborted, state.sessions[1].Status)
}

func TestInMemoryState_Check(t *testing.T) {
	state := InMemoryState{}
	assert.True(t, state.Check())
}
