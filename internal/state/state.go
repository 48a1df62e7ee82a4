package state

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
)

var (
	errDesiredRetry = errors.New("desired retry error")

	// ErrSessionNotFound is returned when no session matches the requested id.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository defines the contract for monitoring session persistence.
type SessionRepository interface {
	Connect(serverConfig *config.ServerConfig) error
	AddSession(session models.Session) (*models.Session, error)
	GetSessions(startTime float64, endTime float64, service string, limit int, offset int) ([]models.Session, int64)
	GetSession(id string) (*models.Session, error)
	RecordReport(id string, report models.Report) error
	HasActiveSession(serviceId string) bool
	Check() bool
	ProcessObsoleteSessions(retryTimes uint)
}

// NewState creates a session repository based on the configured STATE_TYPE and connects it.
func NewState(serverConfig *config.ServerConfig) (SessionRepository, error) {
	log.Debug().Msg("Initializing render-watcher state...")
	var state SessionRepository
	switch name := serverConfig.StateType; name {
	case "postgres":
		log.Debug().Msg("Created postgres state..")
		state = &PostgresState{}
	case "in-memory":
		log.Debug().Msg("Created in-memory state..")
		state = &InMemoryState{}
	default:
		return nil, fmt.Errorf("unexpected state type received: %s", name)
	}

	if err := state.Connect(serverConfig); err != nil {
		return nil, err
	}

	return state, nil
}
