package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	prom "github.com/shini4i/render-watcher/cmd/render-watcher/prometheus"
	"github.com/shini4i/render-watcher/internal/lock"
	"github.com/shini4i/render-watcher/internal/monitor"
	"github.com/shini4i/render-watcher/internal/notifications"
	"github.com/shini4i/render-watcher/internal/render"
	"github.com/shini4i/render-watcher/internal/state"
)

const shutdownTimeout = 30 * time.Second

type Server struct {
	router        *gin.Engine
	config        *config.ServerConfig
	render        *render.Render
	watcher       *render.DeployWatcher
	env           *Env
	cancelWatches context.CancelFunc
}

// NewServer creates a new server instance with the given configuration and prometheus registerer.
func NewServer(serverConfig *config.ServerConfig, reg prometheus.Registerer) (*Server, error) {
	// initialize metrics on the provided prometheus registry
	metrics := prom.NewMetrics(reg)

	// create API client
	api := &render.RenderApi{}
	if err := api.Init(serverConfig); err != nil {
		return nil, err
	}

	// create state management
	s, err := state.NewState(serverConfig)
	if err != nil {
		return nil, err
	}
	// start cleanup go routine
	go s.ProcessObsoleteSessions(0)

	r := &render.Render{}
	r.Init(s, api, metrics, serverConfig)

	locker, err := NewLocker(serverConfig, s)
	if err != nil {
		return nil, err
	}

	notifier, err := notifications.NewNotifierFromConfig(&serverConfig.Webhook)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}

	deployMonitor := monitor.NewDeployMonitor(api, monitor.ConfigFrom(serverConfig.Monitor))

	broadcaster := NewBroadcaster()
	watcher := render.NewDeployWatcher(r, deployMonitor, locker, notifier, broadcaster)

	watchCtx, cancelWatches := context.WithCancel(context.Background())
	env, err := NewEnv(watchCtx, serverConfig, r, watcher, metrics, broadcaster)
	if err != nil {
		cancelWatches()
		return nil, err
	}

	return &Server{
		router:        env.CreateRouter(),
		config:        serverConfig,
		render:        r,
		watcher:       watcher,
		env:           env,
		cancelWatches: cancelWatches,
	}, nil
}

// NewLocker picks postgres advisory locks for the postgres state and process-local locks otherwise.
func NewLocker(serverConfig *config.ServerConfig, s state.SessionRepository) (lock.Locker, error) {
	if serverConfig.StateType != "postgres" {
		log.Warn().Msg("Using in-memory lock. This is not suitable for HA setups.")
		return lock.NewInMemoryLocker(), nil
	}

	pgState, ok := s.(*state.PostgresState)
	if !ok {
		return nil, fmt.Errorf("state type is postgres but state object is not a PostgresState instance (got %T)", s)
	}
	db := pgState.DB()
	if db == nil {
		return nil, errors.New("could not get a valid DB connection from the postgres state")
	}

	log.Info().Msg("Using Postgres advisory locks for distributed locking.")
	return lock.NewPostgresLocker(db), nil
}

// Run serves HTTP until ctx is done, then stops accepting requests and
// cancels the sessions still being watched.
func (s *Server) Run(ctx context.Context) error {
	bind := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
	httpServer := &http.Server{
		Addr:              bind,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Starting web server on %s", bind)
		errCh <- httpServer.ListenAndServe()
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		log.Info().Msg("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		serveErr = httpServer.Shutdown(shutdownCtx)
	}

	s.cancelWatches()
	s.watcher.Wait()

	if errors.Is(serveErr, http.ErrServerClosed) {
		return nil
	}
	return serveErr
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// InitLogs configures the global logger level and output format.
func InitLogs(logLevel string, logFormat string) {
	if logFormat == config.LogFormatText {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if lvl, err := zerolog.ParseLevel(logLevel); err != nil {
		log.Warn().Msgf("Couldn't parse log level. Got the following error: %s", err)
	} else {
		zerolog.SetGlobalLevel(lvl)
		log.Debug().Msgf("Configured log level: %s", lvl)
	}
}
