package render

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/lock"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/monitor"
	"github.com/shini4i/render-watcher/internal/notifications"
)

const failedToRecordReportTemplate = "Failed to record monitor report: %s"

var (
	// ErrDeployInProgress is returned when the service already has a watched deploy running.
	ErrDeployInProgress = errors.New("a deploy of this service is already being watched")
	// ErrSessionNotRunning is returned when cancelling a session that is not watched by this process.
	ErrSessionNotRunning = errors.New("session is not running")
)

// RedeployRequest describes a deploy trigger.
type RedeployRequest struct {
	ClearCache bool
	Author     string
}

// DeployWatcher triggers deploys and drives monitoring sessions for them.
type DeployWatcher struct {
	render   *Render
	monitor  *monitor.DeployMonitor
	locker   lock.Locker
	notifier *notifications.Notifier
	observer monitor.Observer

	mu      sync.Mutex
	running map[string]context.CancelFunc
	wg      sync.WaitGroup
}

// NewDeployWatcher wires the watcher. observer receives every report in addition to
// the session history and may be nil.
func NewDeployWatcher(render *Render, deployMonitor *monitor.DeployMonitor, locker lock.Locker, notifier *notifications.Notifier, observer monitor.Observer) *DeployWatcher {
	return &DeployWatcher{
		render:   render,
		monitor:  deployMonitor,
		locker:   locker,
		notifier: notifier,
		observer: observer,
		running:  make(map[string]context.CancelFunc),
	}
}

// Redeploy triggers a new deploy of the configured service and opens a session for it.
// Only one session per service may be in progress at a time.
func (watcher *DeployWatcher) Redeploy(ctx context.Context, request RedeployRequest) (*models.Session, error) {
	service, err := watcher.render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	var session *models.Session
	err = watcher.locker.WithLock(service.Id, func() error {
		if watcher.render.State.HasActiveSession(service.Id) {
			return ErrDeployInProgress
		}

		deploy, err := watcher.render.api.TriggerDeploy(ctx, service.Id, request.ClearCache)
		if err != nil {
			return fmt.Errorf("failed to trigger deploy: %w", err)
		}

		log.Info().Str("service", service.Id).Str("deploy", deploy.Id).Msgf("Triggered deploy of %s (clear cache: %t)", service.Name, request.ClearCache)

		session, err = watcher.openSession(service, deploy.Id, request.Author)
		return err
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Attach opens a session for an existing deploy. An empty deployId selects the latest deploy.
// Like Redeploy, it fails with ErrDeployInProgress while the service has a session in progress.
func (watcher *DeployWatcher) Attach(ctx context.Context, deployId string, author string) (*models.Session, error) {
	service, err := watcher.render.ResolveService(ctx)
	if err != nil {
		return nil, err
	}

	var session *models.Session
	err = watcher.locker.WithLock(service.Id, func() error {
		if watcher.render.State.HasActiveSession(service.Id) {
			return ErrDeployInProgress
		}

		if deployId == "" {
			deploy, err := watcher.render.LatestDeploy(ctx, service.Id)
			if err != nil {
				return err
			}
			deployId = deploy.Id
		}

		session, err = watcher.openSession(service, deployId, author)
		return err
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (watcher *DeployWatcher) openSession(service *models.Service, deployId string, author string) (*models.Session, error) {
	session, err := watcher.render.State.AddSession(models.Session{
		ServiceId:   service.Id,
		ServiceName: service.Name,
		DeployId:    deployId,
		Author:      author,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", session.Id).Msgf("A new monitoring session was opened for deploy %s", deployId)
	watcher.render.metrics.AddProcessedDeployment(service.Name)

	if err := watcher.notifier.Send(context.Background(), *session); err != nil {
		log.Warn().Str("id", session.Id).Msgf("Failed to send start notification: %s", err)
	}

	return session, nil
}

// Watch runs the monitoring loop for session and blocks until it ends.
func (watcher *DeployWatcher) Watch(ctx context.Context, session *models.Session, observer monitor.Observer) models.MonitorResult {
	watcher.render.metrics.AddInProgressSession()
	defer watcher.render.metrics.RemoveInProgressSession()

	recorder := monitor.ObserverFunc(func(report models.Report) {
		if err := watcher.render.State.RecordReport(session.Id, report); err != nil {
			log.Error().Str("id", session.Id).Msgf(failedToRecordReportTemplate, err)
		}
	})

	observers := monitor.MultiObserver{recorder, monitor.LogObserver{}, watcher.observer, observer}
	result := watcher.monitor.Start(ctx, session.ServiceId, session.DeployId, observers)

	watcher.processResult(session, result)
	return result
}

// WatchInBackground runs Watch in its own goroutine under parent. The session can be stopped with Cancel.
func (watcher *DeployWatcher) WatchInBackground(parent context.Context, session *models.Session) {
	ctx, cancel := context.WithCancel(parent)

	watcher.mu.Lock()
	watcher.running[session.Id] = cancel
	watcher.mu.Unlock()

	watcher.wg.Add(1)
	go func() {
		defer watcher.wg.Done()
		defer func() {
			watcher.mu.Lock()
			delete(watcher.running, session.Id)
			watcher.mu.Unlock()
			cancel()
		}()
		watcher.Watch(ctx, session, nil)
	}()
}

// Cancel stops a session started with WatchInBackground.
func (watcher *DeployWatcher) Cancel(sessionId string) error {
	watcher.mu.Lock()
	cancel, ok := watcher.running[sessionId]
	watcher.mu.Unlock()

	if !ok {
		return ErrSessionNotRunning
	}

	log.Info().Str("id", sessionId).Msg("Cancelling monitoring session")
	cancel()
	return nil
}

// Wait blocks until every background session has finished.
func (watcher *DeployWatcher) Wait() {
	watcher.wg.Wait()
}

func (watcher *DeployWatcher) processResult(session *models.Session, result models.MonitorResult) {
	metrics := watcher.render.metrics

	switch {
	case result.Succeeded():
		metrics.ResetFailedDeployment(session.ServiceName)
		metrics.SetRenderUnavailable(false)
	case result.Reason == models.ReasonAPIUnreachable:
		metrics.AddFailedDeployment(session.ServiceName)
		metrics.SetRenderUnavailable(true)
	case result.Outcome == models.OutcomeCanceled:
	default:
		metrics.AddFailedDeployment(session.ServiceName)
	}
	metrics.ObserveDeployDuration(session.ServiceName, string(result.Outcome), result.Elapsed.Seconds())

	finished := *session
	finished.ApplyReport(models.Report{ServiceId: session.ServiceId, DeployId: session.DeployId, Result: &result})
	if stored, err := watcher.render.State.GetSession(session.Id); err == nil {
		finished = *stored
	}

	if err := watcher.notifier.Send(context.Background(), finished); err != nil {
		log.Warn().Str("id", session.Id).Msgf("Failed to send finish notification: %s", err)
	}
}
