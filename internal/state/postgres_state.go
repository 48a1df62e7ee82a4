package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/state/state_models"
)

// PostgresState persists sessions through gorm. The schema is owned by the migrations in db/migrations.
type PostgresState struct {
	orm *gorm.DB
}

var _ SessionRepository = (*PostgresState)(nil)

func (state *PostgresState) Connect(serverConfig *config.ServerConfig) error {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		serverConfig.Db.Host,
		serverConfig.Db.Port,
		serverConfig.Db.User,
		serverConfig.Db.Password,
		serverConfig.Db.Name,
		serverConfig.Db.SslMode,
		serverConfig.Db.TimeZone,
	)

	gormLogLevel := logger.Silent
	if serverConfig.LogLevel == "debug" {
		gormLogLevel = logger.Info
	}

	orm, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return err
	}

	state.orm = orm
	return nil
}

// DB exposes the underlying connection for components sharing the database, such as advisory locks.
func (state *PostgresState) DB() *gorm.DB {
	return state.orm
}

func (state *PostgresState) AddSession(session models.Session) (*models.Session, error) {
	model := state_models.FromSession(session)

	if result := state.orm.Create(model); result.Error != nil {
		log.Error().Msgf("Failed to create session database record with error: %s", result.Error)
		return nil, fmt.Errorf("failed to create session in database: %w", result.Error)
	}

	return model.ConvertToExternalSession(), nil
}

func (state *PostgresState) GetSessions(startTime float64, endTime float64, service string, limit int, offset int) ([]models.Session, int64) {
	startTimeUTC := time.Unix(int64(startTime), 0).UTC()
	endTimeUTC := time.Unix(int64(endTime), 0).UTC()

	filtered := func() *gorm.DB {
		query := state.orm.Model(&state_models.SessionModel{}).
			Where("created >= ?", startTimeUTC).
			Where("created <= ?", endTimeUTC)
		if service != "" {
			query = query.Where("service_id = ? OR service_name = ?", service, service)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		log.Error().Msgf("Failed to count sessions: %s", err)
		return []models.Session{}, 0
	}

	query := filtered().Order("created DESC")
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []state_models.SessionModel
	if err := query.Find(&rows).Error; err != nil {
		log.Error().Msgf("Failed to fetch sessions: %s", err)
		return []models.Session{}, 0
	}

	sessions := make([]models.Session, len(rows))
	for idx := range rows {
		sessions[idx] = *rows[idx].ConvertToExternalSession()
	}

	return sessions, total
}

func (state *PostgresState) GetSession(id string) (*models.Session, error) {
	uuidv4, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var row state_models.SessionModel
	result := state.orm.Where("id = ?", uuidv4).Take(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return row.ConvertToExternalSession(), nil
}

// RecordReport loads the session, folds the report in, and writes the mutable columns back.
func (state *PostgresState) RecordReport(id string, report models.Report) error {
	uuidv4, err := uuid.Parse(id)
	if err != nil {
		return ErrSessionNotFound
	}

	return state.orm.Transaction(func(tx *gorm.DB) error {
		var row state_models.SessionModel
		result := tx.Where("id = ?", uuidv4).Take(&row)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		if result.Error != nil {
			return result.Error
		}

		session := row.ConvertToExternalSession()
		session.ApplyReport(report)

		updated := state_models.FromSession(*session)
		return tx.Model(&row).Updates(map[string]any{
			"status":        session.Status,
			"status_reason": session.StatusReason,
			"deploy_status": updated.DeployStatus,
			"transitions":   updated.Transitions,
		}).Error
	})
}

func (state *PostgresState) HasActiveSession(serviceId string) bool {
	var count int64
	err := state.orm.Model(&state_models.SessionModel{}).
		Where("service_id = ? AND status = ?", serviceId, models.StatusInProgressMessage).
		Count(&count).Error
	if err != nil {
		log.Error().Msgf("Failed to check active sessions for %s: %s", serviceId, err)
		return false
	}
	return count > 0
}

func (state *PostgresState) Check() bool {
	db, err := state.orm.DB()
	if err != nil {
		log.Error().Msg(err.Error())
		return false
	}
	if err := db.Ping(); err != nil {
		log.Error().Msg(err.Error())
		return false
	}
	return true
}

// ProcessObsoleteSessions periodically aborts in-progress sessions older than the stale threshold.
func (state *PostgresState) ProcessObsoleteSessions(retryTimes uint) {
	log.Debug().Msg("Starting watching for obsolete sessions...")
	err := retry.Do(
		func() error {
			threshold := time.Now().UTC().Add(-SessionStaleThresholdSeconds * time.Second)
			result := state.orm.Model(&state_models.SessionModel{}).
				Where("status = ? AND updated < ?", models.StatusInProgressMessage, threshold).
				Update("status", models.StatusAborted)
			if result.Error != nil {
				log.Error().Msgf("Failed to abort obsolete sessions: %s", result.Error)
			}
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
