package state_models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shini4i/render-watcher/internal/models"
	"gorm.io/datatypes"
)

type SessionModel struct {
	Id           uuid.UUID                              `gorm:"column:id;type:uuid;default:gen_random_uuid()"`
	Created      time.Time                              `gorm:"column:created;autoCreateTime;not null;index;"`
	Updated      time.Time                              `gorm:"column:updated;autoUpdateTime;not null;"`
	ServiceId    string                                 `gorm:"column:service_id;type:VARCHAR(64);not null;index;"`
	ServiceName  sql.NullString                         `gorm:"column:service_name;type:VARCHAR(255);"`
	DeployId     string                                 `gorm:"column:deploy_id;type:VARCHAR(64);not null;"`
	Author       sql.NullString                         `gorm:"column:author;type:VARCHAR(255);"`
	Status       string                                 `gorm:"column:status;type:VARCHAR(20);not null;index;"`
	StatusReason sql.NullString                         `gorm:"column:status_reason;default:''"`
	DeployStatus sql.NullString                         `gorm:"column:deploy_status;type:VARCHAR(32);"`
	Transitions  datatypes.JSONSlice[models.Transition] `gorm:"column:transitions;not null;"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

func (model *SessionModel) ConvertToExternalSession() *models.Session {
	session := models.Session{
		Id:           model.Id.String(),
		Created:      float64(model.Created.Unix()),
		Updated:      float64(model.Updated.Unix()),
		ServiceId:    model.ServiceId,
		ServiceName:  model.ServiceName.String,
		DeployId:     model.DeployId,
		Author:       model.Author.String,
		Status:       model.Status,
		StatusReason: model.StatusReason.String,
		DeployStatus: models.DeployStatus(model.DeployStatus.String),
	}
	if len(model.Transitions) > 0 {
		session.Transitions = append([]models.Transition(nil), model.Transitions...)
	}
	return &session
}

// FromSession builds a row from an external session. Id and timestamps are left to the database.
func FromSession(session models.Session) *SessionModel {
	transitions := session.Transitions
	if transitions == nil {
		transitions = []models.Transition{}
	}
	return &SessionModel{
		ServiceId:    session.ServiceId,
		ServiceName:  nullString(session.ServiceName),
		DeployId:     session.DeployId,
		Author:       nullString(session.Author),
		Status:       models.StatusInProgressMessage,
		DeployStatus: nullString(string(session.DeployStatus)),
		Transitions:  transitions,
	}
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
