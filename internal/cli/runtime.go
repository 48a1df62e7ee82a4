package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	prom "github.com/shini4i/render-watcher/cmd/render-watcher/prometheus"
	"github.com/shini4i/render-watcher/internal/monitor"
	"github.com/shini4i/render-watcher/internal/notifications"
	"github.com/shini4i/render-watcher/internal/render"
	"github.com/shini4i/render-watcher/internal/server"
	"github.com/shini4i/render-watcher/internal/state"
)

// Runtime bundles the components the one-shot commands work with.
type Runtime struct {
	Config  *config.ServerConfig
	Render  *render.Render
	Watcher *render.DeployWatcher
}

// NewRuntime wires the Render client, session state and deploy watcher for a single CLI invocation.
// Metrics go to a private registry since nothing scrapes a CLI process.
func NewRuntime(cfg *config.ServerConfig) (*Runtime, error) {
	metrics := prom.NewMetrics(prometheus.NewRegistry())

	api := &render.RenderApi{}
	if err := api.Init(cfg); err != nil {
		return nil, err
	}

	s, err := state.NewState(cfg)
	if err != nil {
		return nil, err
	}

	r := &render.Render{}
	r.Init(s, api, metrics, cfg)

	locker, err := server.NewLocker(cfg, s)
	if err != nil {
		return nil, err
	}

	notifier, err := notifications.NewNotifierFromConfig(&cfg.Webhook)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	deployMonitor := monitor.NewDeployMonitor(api, monitor.ConfigFrom(cfg.Monitor))

	return &Runtime{
		Config:  cfg,
		Render:  r,
		Watcher: render.NewDeployWatcher(r, deployMonitor, locker, notifier, nil),
	}, nil
}
