package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/cmd/render-watcher/config"
	"github.com/shini4i/render-watcher/internal/models"
)

// StatusFetcher returns the current status of a deploy.
type StatusFetcher interface {
	GetDeployStatus(ctx context.Context, serviceId, deployId string) (models.DeployStatus, error)
}

// Observer receives progress reports and, last, the final result of a session.
type Observer interface {
	Report(report models.Report)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(report models.Report)

func (f ObserverFunc) Report(report models.Report) {
	f(report)
}

// Config bounds a monitoring session.
type Config struct {
	PollInterval           time.Duration
	Timeout                time.Duration
	MaxConsecutiveFailures int
}

// DefaultConfig polls every 5s for up to 10 minutes and gives up after 3 failed polls in a row.
func DefaultConfig() Config {
	return Config{
		PollInterval:           5 * time.Second,
		Timeout:                600 * time.Second,
		MaxConsecutiveFailures: 3,
	}
}

// ConfigFrom converts the environment driven monitor settings.
func ConfigFrom(cfg config.MonitorConfig) Config {
	return Config{
		PollInterval:           cfg.PollInterval,
		Timeout:                cfg.Timeout,
		MaxConsecutiveFailures: cfg.MaxConsecutiveFailures,
	}
}

func (c Config) validate() error {
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.MaxConsecutiveFailures <= 0 {
		return errors.New("max consecutive failures must be positive")
	}
	return nil
}

// Option customizes a DeployMonitor created by NewDeployMonitor.
type Option func(*DeployMonitor)

// WithClock replaces the wall clock used for elapsed time and poll suspension.
func WithClock(clock Clock) Option {
	return func(monitor *DeployMonitor) {
		monitor.clock = clock
	}
}

// DeployMonitor polls a single deploy until it reaches a terminal outcome.
// It holds no per-session state, so one instance can run any number of sessions concurrently.
type DeployMonitor struct {
	client StatusFetcher
	config Config
	clock  Clock
}

// NewDeployMonitor creates a monitor using the wall clock unless WithClock is given.
func NewDeployMonitor(client StatusFetcher, config Config, options ...Option) *DeployMonitor {
	monitor := &DeployMonitor{
		client: client,
		config: config,
		clock:  realClock{},
	}
	for _, option := range options {
		option(monitor)
	}
	return monitor
}

// Config returns the settings every session of this monitor runs with.
func (m *DeployMonitor) Config() Config {
	return m.config
}

// Start runs one monitoring session. The result is reported to the observer and returned exactly once.
// Cancelling ctx stops the session before the next poll and yields OutcomeCanceled.
func (m *DeployMonitor) Start(ctx context.Context, serviceId, deployId string, observer Observer) models.MonitorResult {
	if observer == nil {
		observer = LogObserver{}
	}

	session := session{
		monitor:   m,
		serviceId: serviceId,
		deployId:  deployId,
		observer:  observer,
		started:   m.clock.Now(),
	}

	if serviceId == "" || deployId == "" {
		log.Error().Str("service", serviceId).Str("deploy", deployId).Msg("Service and deploy ids are required")
		return session.finish(models.OutcomeFailed, models.ReasonInvalidInput)
	}
	if err := m.config.validate(); err != nil {
		log.Error().Str("deploy", deployId).Msgf("Invalid monitor configuration: %s", err)
		return session.finish(models.OutcomeFailed, models.ReasonInvalidInput)
	}

	return session.run(ctx)
}

type session struct {
	monitor   *DeployMonitor
	serviceId string
	deployId  string
	observer  Observer
	started   time.Time

	lastStatus models.DeployStatus
	failures   int
	polls      int
}

func (s *session) run(ctx context.Context) models.MonitorResult {
	config := s.monitor.config

	for {
		if ctx.Err() != nil {
			return s.finish(models.OutcomeCanceled, "")
		}

		s.polls++
		status, err := s.monitor.client.GetDeployStatus(ctx, s.serviceId, s.deployId)
		if err != nil {
			if ctx.Err() != nil {
				return s.finish(models.OutcomeCanceled, "")
			}
			s.failures++
			log.Warn().Str("deploy", s.deployId).Msgf("Failed to fetch deploy status (%d/%d): %s", s.failures, config.MaxConsecutiveFailures, err)
			if s.failures >= config.MaxConsecutiveFailures {
				return s.finish(models.OutcomeFailed, models.ReasonAPIUnreachable)
			}
		} else {
			s.failures = 0
			if status != s.lastStatus {
				s.lastStatus = status
				s.observer.Report(models.Report{
					ServiceId: s.serviceId,
					DeployId:  s.deployId,
					Progress:  &models.Progress{Elapsed: s.elapsed(), Status: status},
				})
			}
			if status.IsTerminal() {
				if status.IsSuccess() {
					return s.finish(models.OutcomeSucceeded, "")
				}
				return s.finish(models.OutcomeFailed, string(status))
			}
		}

		remaining := config.Timeout - s.elapsed()
		if remaining <= 0 {
			return s.finish(models.OutcomeTimedOut, "")
		}

		select {
		case <-ctx.Done():
			return s.finish(models.OutcomeCanceled, "")
		case <-s.monitor.clock.After(min(config.PollInterval, remaining)):
		}

		// no poll at or past the deadline
		if s.elapsed() >= config.Timeout {
			return s.finish(models.OutcomeTimedOut, "")
		}
	}
}

func (s *session) elapsed() time.Duration {
	return s.monitor.clock.Now().Sub(s.started)
}

func (s *session) finish(outcome models.Outcome, reason string) models.MonitorResult {
	result := models.MonitorResult{
		Outcome:    outcome,
		Reason:     reason,
		LastStatus: s.lastStatus,
		Elapsed:    s.elapsed(),
		Polls:      s.polls,
	}
	s.observer.Report(models.Report{
		ServiceId: s.serviceId,
		DeployId:  s.deployId,
		Result:    &result,
	})
	return result
}
