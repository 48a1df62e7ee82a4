package server

import (
	"context"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/cmd/render-watcher/prometheus"
	"github.com/shini4i/render-watcher/internal/auth"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/monitor"
	"github.com/shini4i/render-watcher/internal/render"
)

// Deployer starts and stops monitoring sessions.
// It is satisfied by render.DeployWatcher and replaced by a fake in tests.
type Deployer interface {
	Redeploy(ctx context.Context, request render.RedeployRequest) (*models.Session, error)
	Attach(ctx context.Context, deployId string, author string) (*models.Session, error)
	Watch(ctx context.Context, session *models.Session, observer monitor.Observer) models.MonitorResult
	WatchInBackground(parent context.Context, session *models.Session)
	Cancel(sessionId string) error
}

// Env reference: https://www.alexedwards.net/blog/organising-database-access
type Env struct {
	// environment configurations
	config *config.ServerConfig
	// service-scoped render operations
	render *render.Render
	// starts and cancels monitoring sessions
	deployer Deployer
	// metrics
	metrics prometheus.MetricsInterface
	// deploy lock
	lockdown *Lockdown
	// authenticator orchestrates registered strategies
	authenticator *auth.Authenticator
	// websocket clients
	broadcaster *Broadcaster
	// parent of background watches, cancelled on shutdown
	watchCtx context.Context
}

// NewEnv initializes a new Env instance.
func NewEnv(ctx context.Context, serverConfig *config.ServerConfig, render *render.Render, deployer Deployer, metrics prometheus.MetricsInterface, broadcaster *Broadcaster) (*Env, error) {
	lockdown, err := NewLockdown(serverConfig.LockdownSchedule)
	if err != nil {
		return nil, err
	}

	if broadcaster == nil {
		broadcaster = NewBroadcaster()
	}
	lockdown.onRelock = func() {
		broadcaster.Broadcast([]byte(lockedMessage))
	}

	return &Env{
		config:        serverConfig,
		render:        render,
		deployer:      deployer,
		metrics:       metrics,
		lockdown:      lockdown,
		authenticator: auth.NewAuthenticatorFromConfig(serverConfig),
		broadcaster:   broadcaster,
		watchCtx:      ctx,
	}, nil
}
