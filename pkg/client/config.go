package client

import (
	"time"

	envConfig "github.com/caarlos0/env/v11"
)

type ClientConfig struct {
	Url          string        `env:"RENDER_WATCHER_URL,notEmpty"`
	ApiKey       string        `env:"RENDER_WATCHER_API_KEY"`
	JsonWebToken string        `env:"RENDER_WATCHER_JWT"`
	Author       string        `env:"COMMIT_AUTHOR"`
	DeployId     string        `env:"RENDER_DEPLOY_ID"`
	ClearCache   bool          `env:"CLEAR_CACHE" envDefault:"false"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"60s"`
	PollInterval time.Duration `env:"RENDER_WATCHER_POLL_INTERVAL" envDefault:"15s"`
	Debug        bool          `env:"DEBUG"`
}

func NewClientConfig() (*ClientConfig, error) {
	var config ClientConfig

	if err := envConfig.Parse(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
