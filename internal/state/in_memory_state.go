package state

import (
	"sort"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
)

const (
	// SessionStaleThresholdSeconds is the age after which an in-progress session without updates is aborted.
	SessionStaleThresholdSeconds = 3600
	// ObsoleteSessionCheckInterval is the interval between checks for obsolete sessions.
	ObsoleteSessionCheckInterval = 60 * time.Minute
)

// InMemoryState keeps sessions in process memory. History is lost on restart.
type InMemoryState struct {
	mu       sync.RWMutex
	sessions []models.Session
}

var _ SessionRepository = (*InMemoryState)(nil)

func (state *InMemoryState) Connect(serverConfig *config.ServerConfig) error {
	log.Debug().Msg("InMemoryState does not connect to anything. Skipping.")
	return nil
}

// AddSession stores a new in-progress session and returns it with the generated id.
func (state *InMemoryState) AddSession(session models.Session) (*models.Session, error) {
	state.mu.Lock()
	defer state.mu.Unlock()

	now := float64(time.Now().Unix())
	session.Id = uuid.New().String()
	session.Created = now
	session.Updated = now
	session.Status = models.StatusInProgressMessage
	state.sessions = append(state.sessions, session)
	return &session, nil
}

// GetSessions returns sessions created within [startTime, endTime], newest first,
// optionally filtered by service id or name, along with the unpaginated total.
func (state *InMemoryState) GetSessions(startTime float64, endTime float64, service string, limit int, offset int) ([]models.Session, int64) {
	state.mu.RLock()
	defer state.mu.RUnlock()

	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	var sessions []models.Session
	for _, session := range state.sessions {
		if session.Created < startTime || session.Created > endTime {
			continue
		}
		if service != "" && service != session.ServiceId && service != session.ServiceName {
			continue
		}
		sessions = append(sessions, session)
	}

	if len(sessions) == 0 {
		return []models.Session{}, 0
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Created > sessions[j].Created
	})

	total := int64(len(sessions))
	if offset >= len(sessions) {
		return []models.Session{}, total
	}

	end := len(sessions)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return sessions[offset:end], total
}

func (state *InMemoryState) GetSession(id string) (*models.Session, error) {
	state.mu.RLock()
	defer state.mu.RUnlock()

	for _, session := range state.sessions {
		if session.Id == id {
			return &session, nil
		}
	}
	return nil, ErrSessionNotFound
}

// RecordReport applies a monitor report to the stored session.
func (state *InMemoryState) RecordReport(id string, report models.Report) error {
	state.mu.Lock()
	defer state.mu.Unlock()

	for idx := range state.sessions {
		if state.sessions[idx].Id == id {
			state.sessions[idx].ApplyReport(report)
			state.sessions[idx].Updated = float64(time.Now().Unix())
			return nil
		}
	}
	return ErrSessionNotFound
}

// HasActiveSession reports whether the service already has a session in progress.
func (state *InMemoryState) HasActiveSession(serviceId string) bool {
	state.mu.RLock()
	defer state.mu.RUnlock()

	for _, session := range state.sessions {
		if session.ServiceId == serviceId && session.Status == models.StatusInProgressMessage {
			return true
		}
	}
	return false
}

func (state *InMemoryState) Check() bool {
	return true
}

// ProcessObsoleteSessions periodically aborts sessions that stopped receiving updates.
// retryTimes of 0 keeps the loop running forever.
func (state *InMemoryState) ProcessObsoleteSessions(retryTimes uint) {
	log.Debug().Msg("Starting watching for obsolete sessions...")
	err := retry.Do(
		func() error {
			state.mu.Lock()
			defer state.mu.Unlock()
			state.sessions = abortObsoleteSessions(state.sessions, float64(time.Now().Unix()))
			return errDesiredRetry
		},
		retry.DelayType(retry.FixedDelay),
		retry.Delay(ObsoleteSessionCheckInterval),
		retry.Attempts(retryTimes),
	)
	if err != nil {
		log.Error().Msgf("Couldn't process obsolete sessions. Got the following error: %s", err)
	}
}

func abortObsoleteSessions(sessions []models.Session, now float64) []models.Session {
	for idx, session := range sessions {
		if session.Status == models.StatusInProgressMessage && session.Updated+SessionStaleThresholdSeconds < now {
			sessions[idx].Status = models.StatusAborted
			sessions[idx].Updated = now
		}
	}
	return sessions
}
