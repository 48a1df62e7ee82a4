package config

import (
	"errors"
	"net/url"
	"time"

	envConfig "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	LogFormatText = "text"
)

var ErrServiceNotConfigured = errors.New("either RENDER_SERVICE_ID or RENDER_SERVICE_NAME must be set")

type DatabaseConfig struct {
	Host     string `env:"DB_HOST" json:"db_host,omitempty"`
	Port     int    `env:"DB_PORT" envDefault:"5432" json:"db_port,omitempty"`
	Name     string `env:"DB_NAME" json:"db_name,omitempty"`
	User     string `env:"DB_USER" json:"db_user,omitempty"`
	Password string `env:"DB_PASSWORD" json:"-"`
	SslMode  string `env:"DB_SSL_MODE" envDefault:"disable" json:"db_ssl_mode,omitempty"`
	TimeZone string `env:"DB_TIMEZONE" envDefault:"UTC" json:"db_timezone,omitempty"`
}

type WebhookConfig struct {
	Enabled              bool   `env:"WEBHOOK_ENABLED" envDefault:"false" json:"enabled"`
	Url                  string `env:"WEBHOOK_URL" json:"url,omitempty"`
	ContentType          string `env:"WEBHOOK_CONTENT_TYPE" envDefault:"application/json" json:"content_type,omitempty"`
	Format               string `env:"WEBHOOK_FORMAT" envDefault:"{\"id\":\"{{.Id}}\",\"service\":\"{{.ServiceName}}\",\"deploy\":\"{{.DeployId}}\",\"status\":\"{{.Status}}\"}" json:"format,omitempty"`
	AuthorizationHeader  string `env:"WEBHOOK_AUTHORIZATION_HEADER_NAME" envDefault:"Authorization" json:"authorization_header,omitempty"`
	Token                string `env:"WEBHOOK_AUTHORIZATION_HEADER_VALUE" json:"-"`
	AllowedResponseCodes []int  `env:"WEBHOOK_ALLOWED_RESPONSE_CODES" envDefault:"200" json:"allowed_response_codes,omitempty"`
}

// MonitorConfig holds the knobs of the deploy monitoring loop.
type MonitorConfig struct {
	PollInterval           time.Duration `env:"POLL_INTERVAL" envDefault:"5s" validate:"gt=0" json:"poll_interval"`
	Timeout                time.Duration `env:"DEPLOY_TIMEOUT" envDefault:"600s" validate:"gt=0" json:"deploy_timeout"`
	MaxConsecutiveFailures int           `env:"MAX_CONSECUTIVE_FAILURES" envDefault:"3" validate:"gt=0" json:"max_consecutive_failures"`
}

type ServerConfig struct {
	RenderApiUrl     url.URL        `env:"RENDER_API_URL" envDefault:"https://api.render.com/v1" json:"render_api_url"`
	RenderApiKey     string         `env:"RENDER_API_KEY,required" json:"-"`
	RenderApiTimeout time.Duration  `env:"RENDER_API_TIMEOUT" envDefault:"30s" json:"render_api_timeout"`
	ServiceId        string         `env:"RENDER_SERVICE_ID" json:"service_id,omitempty"`
	ServiceName      string         `env:"RENDER_SERVICE_NAME" json:"service_name,omitempty"`
	RedactedEnvKeys  []string       `env:"REDACTED_ENV_KEYS" envDefault:"API_KEY,DATABASE_URL,RENDER_API_KEY" json:"redacted_env_keys"`
	Monitor          MonitorConfig  `json:"monitor"`
	StateType        string         `env:"STATE_TYPE" envDefault:"in-memory" validate:"oneof=postgres in-memory" json:"state_type"`
	LogLevel         string         `env:"LOG_LEVEL" envDefault:"info" json:"log_level"`
	LogFormat        string         `env:"LOG_FORMAT" envDefault:"json" json:"-"`
	Host             string         `env:"HOST" envDefault:"0.0.0.0" json:"-"`
	Port             string         `env:"PORT" envDefault:"8080" json:"-"`
	ApiKey           string         `env:"API_KEY" json:"-"`
	JWTSecret        string         `env:"JWT_SECRET" json:"-"`
	DevEnvironment   bool           `env:"DEV_ENVIRONMENT" envDefault:"false" json:"-"`
	LockdownSchedule string         `env:"LOCKDOWN_SCHEDULE" json:"lockdown_schedule,omitempty"`
	Db               DatabaseConfig `json:"db,omitempty"`
	Webhook          WebhookConfig  `json:"webhook,omitempty"`
}

// NewServerConfig parses the configuration from environment variables and validates it.
func NewServerConfig() (*ServerConfig, error) {
	var config ServerConfig

	if err := envConfig.Parse(&config); err != nil {
		return nil, err
	}

	validate := validator.New()
	if err := validate.Struct(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateServiceTarget ensures a service can be resolved for service-scoped operations.
func (config *ServerConfig) ValidateServiceTarget() error {
	if config.ServiceId == "" && config.ServiceName == "" {
		return ErrServiceNotConfigured
	}
	return nil
}

// HasAuthConfigured reports whether the HTTP API should enforce authentication.
func (config *ServerConfig) HasAuthConfigured() bool {
	return config.ApiKey != "" || config.JWTSecret != ""
}
