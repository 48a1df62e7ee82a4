package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/shini4i/render-watcher/internal/mock"
	"github.com/shini4i/render-watcher/internal/models"
)

const (
	testServiceId = "srv-1"
	testDeployId  = "dep-1"
)

var errNetwork = errors.New("connection reset by peer")

// fakeClock advances instantly whenever the monitor waits.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.sleeps = append(c.sleeps, d)
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

type recordingObserver struct {
	reports []models.Report
}

func (o *recordingObserver) Report(report models.Report) {
	o.reports = append(o.reports, report)
}

func (o *recordingObserver) statuses() []models.DeployStatus {
	var statuses []models.DeployStatus
	for _, report := range o.reports {
		if report.Progress != nil {
			statuses = append(statuses, report.Progress.Status)
		}
	}
	return statuses
}

func (o *recordingObserver) results() []models.MonitorResult {
	var results []models.MonitorResult
	for _, report := range o.reports {
		if report.Result != nil {
			results = append(results, *report.Result)
		}
	}
	return results
}

type poll struct {
	status models.DeployStatus
	err    error
}

func expectPolls(client *mock.MockRenderApiInterface, polls ...poll) {
	calls := make([]any, 0, len(polls))
	for _, p := range polls {
		calls = append(calls, client.EXPECT().GetDeployStatus(gomock.Any(), testServiceId, testDeployId).Return(p.status, p.err))
	}
	gomock.InOrder(calls...)
}

func testConfig() Config {
	return Config{
		PollInterval:           5 * time.Second,
		Timeout:                60 * time.Second,
		MaxConsecutiveFailures: 3,
	}
}

func TestDeployMonitor_Succeeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	clock := newFakeClock()
	observer := &recordingObserver{}

	expectPolls(client,
		poll{status: models.DeployCreated},
		poll{status: models.DeployCreated},
		poll{status: models.DeployBuildInProgress},
		poll{status: models.DeployBuildInProgress},
		poll{status: models.DeployLive},
	)

	result := NewDeployMonitor(client, testConfig(), WithClock(clock)).Start(context.Background(), testServiceId, testDeployId, observer)

	assert.Equal(t, models.OutcomeSucceeded, result.Outcome)
	assert.True(t, result.Succeeded())
	assert.Equal(t, 5, result.Polls)
	assert.Equal(t, 20*time.Second, result.Elapsed)
	assert.Equal(t, models.DeployLive, result.LastStatus)
	assert.Equal(t, []models.DeployStatus{models.DeployCreated, models.DeployBuildInProgress, models.DeployLive}, observer.statuses())
	assert.Equal(t, []models.MonitorResult{result}, observer.results())
	assert.Equal(t, []time.Duration{5 * time.Second, 5 * time.Second, 5 * time.Second, 5 * time.Second}, clock.sleeps)

	progress := observer.reports[1].Progress
	require.NotNil(t, progress)
	assert.Equal(t, 10*time.Second, progress.Elapsed)
	assert.Equal(t, testServiceId, observer.reports[1].ServiceId)
	assert.Equal(t, testDeployId, observer.reports[1].DeployId)
}

func TestDeployMonitor_FailedStatus(t *testing.T) {
	testCases := []models.DeployStatus{
		models.DeployBuildFailed,
		models.DeployUpdateFailed,
		models.DeployPreDeployFailed,
		models.DeployCanceled,
	}

	for _, terminal := range testCases {
		t.Run(string(terminal), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock.NewMockRenderApiInterface(ctrl)
			observer := &recordingObserver{}

			expectPolls(client,
				poll{status: models.DeployCreated},
				poll{status: models.DeployBuildInProgress},
				poll{status: terminal},
			)

			result := NewDeployMonitor(client, testConfig(), WithClock(newFakeClock())).Start(context.Background(), testServiceId, testDeployId, observer)

			assert.Equal(t, models.OutcomeFailed, result.Outcome)
			assert.Equal(t, string(terminal), result.Reason)
			assert.Equal(t, "failed("+string(terminal)+")", result.String())
			assert.Len(t, observer.results(), 1)
		})
	}
}

func TestDeployMonitor_TimedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	clock := newFakeClock()
	observer := &recordingObserver{}

	config := testConfig()
	config.Timeout = 30 * time.Second

	client.EXPECT().
		GetDeployStatus(gomock.Any(), testServiceId, testDeployId).
		Return(models.DeployBuildInProgress, nil).
		Times(6)

	result := NewDeployMonitor(client, config, WithClock(clock)).Start(context.Background(), testServiceId, testDeployId, observer)

	assert.Equal(t, models.OutcomeTimedOut, result.Outcome)
	assert.Equal(t, 6, result.Polls)
	assert.Equal(t, 30*time.Second, result.Elapsed)
	assert.Equal(t, []models.DeployStatus{models.DeployBuildInProgress}, observer.statuses())
	assert.Len(t, clock.sleeps, 6)
}

func TestDeployMonitor_TimeoutNotMultipleOfInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	clock := newFakeClock()

	config := testConfig()
	config.PollInterval = 7 * time.Second
	config.Timeout = 10 * time.Second

	// the deploy would turn live on a third poll, which must never happen
	expectPolls(client,
		poll{status: models.DeployBuildInProgress},
		poll{status: models.DeployBuildInProgress},
	)

	result := NewDeployMonitor(client, config, WithClock(clock)).Start(context.Background(), testServiceId, testDeployId, nil)

	assert.Equal(t, models.OutcomeTimedOut, result.Outcome)
	assert.Equal(t, 2, result.Polls)
	assert.Equal(t, 10*time.Second, result.Elapsed)
	assert.Equal(t, []time.Duration{7 * time.Second, 3 * time.Second}, clock.sleeps)
}

func TestDeployMonitor_ApiUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	observer := &recordingObserver{}

	client.EXPECT().
		GetDeployStatus(gomock.Any(), testServiceId, testDeployId).
		Return(models.DeployStatus(""), errNetwork).
		Times(3)

	result := NewDeployMonitor(client, testConfig(), WithClock(newFakeClock())).Start(context.Background(), testServiceId, testDeployId, observer)

	assert.Equal(t, models.OutcomeFailed, result.Outcome)
	assert.Equal(t, models.ReasonAPIUnreachable, result.Reason)
	assert.Equal(t, 3, result.Polls)
	assert.Empty(t, observer.statuses())
	assert.Len(t, observer.results(), 1)
}

func TestDeployMonitor_FailureCounterResetsOnSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	observer := &recordingObserver{}

	expectPolls(client,
		poll{err: errNetwork},
		poll{err: errNetwork},
		poll{status: models.DeployBuildInProgress},
		poll{err: errNetwork},
		poll{err: errNetwork},
		poll{status: models.DeployLive},
	)

	result := NewDeployMonitor(client, testConfig(), WithClock(newFakeClock())).Start(context.Background(), testServiceId, testDeployId, observer)

	assert.Equal(t, models.OutcomeSucceeded, result.Outcome)
	assert.Equal(t, 6, result.Polls)
	assert.Equal(t, []models.DeployStatus{models.DeployBuildInProgress, models.DeployLive}, observer.statuses())
}

func TestDeployMonitor_CanceledMidPoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	observer := &recordingObserver{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gomock.InOrder(
		client.EXPECT().GetDeployStatus(gomock.Any(), testServiceId, testDeployId).Return(models.DeployCreated, nil),
		client.EXPECT().GetDeployStatus(gomock.Any(), testServiceId, testDeployId).
			DoAndReturn(func(ctx context.Context, _, _ string) (models.DeployStatus, error) {
				cancel()
				return "", ctx.Err()
			}),
	)

	result := NewDeployMonitor(client, testConfig(), WithClock(newFakeClock())).Start(ctx, testServiceId, testDeployId, observer)

	assert.Equal(t, models.OutcomeCanceled, result.Outcome)
	assert.Equal(t, 2, result.Polls)
	assert.Equal(t, models.DeployCreated, result.LastStatus)
	assert.Len(t, observer.results(), 1)
}

func TestDeployMonitor_CanceledDuringWait(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config := testConfig()
	config.PollInterval = time.Hour
	config.Timeout = 2 * time.Hour

	client.EXPECT().GetDeployStatus(gomock.Any(), testServiceId, testDeployId).
		DoAndReturn(func(context.Context, string, string) (models.DeployStatus, error) {
			cancel()
			return models.DeployBuildInProgress, nil
		})

	started := time.Now()
	result := NewDeployMonitor(client, config).Start(ctx, testServiceId, testDeployId, nil)

	assert.Equal(t, models.OutcomeCanceled, result.Outcome)
	assert.Equal(t, 1, result.Polls)
	assert.Less(t, time.Since(started), time.Minute)
}

func TestDeployMonitor_CanceledBeforeStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockRenderApiInterface(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewDeployMonitor(client, testConfig(), WithClock(newFakeClock())).Start(ctx, testServiceId, testDeployId, nil)

	assert.Equal(t, models.OutcomeCanceled, result.Outcome)
	assert.Equal(t, 0, result.Polls)
}

func TestDeployMonitor_InvalidInput(t *testing.T) {
	zeroInterval := testConfig()
	zeroInterval.PollInterval = 0
	zeroTimeout := testConfig()
	zeroTimeout.Timeout = 0
	zeroFailures := testConfig()
	zeroFailures.MaxConsecutiveFailures = 0

	testCases := []struct {
		name      string
		serviceId string
		deployId  string
		config    Config
	}{
		{"missing service", "", testDeployId, testConfig()},
		{"missing deploy", testServiceId, "", testConfig()},
		{"zero poll interval", testServiceId, testDeployId, zeroInterval},
		{"zero timeout", testServiceId, testDeployId, zeroTimeout},
		{"zero failure budget", testServiceId, testDeployId, zeroFailures},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := mock.NewMockRenderApiInterface(ctrl)
			observer := &recordingObserver{}

			result := NewDeployMonitor(client, tc.config, WithClock(newFakeClock())).Start(context.Background(), tc.serviceId, tc.deployId, observer)

			assert.Equal(t, models.OutcomeFailed, result.Outcome)
			assert.Equal(t, models.ReasonInvalidInput, result.Reason)
			assert.Equal(t, 0, result.Polls)
			assert.Len(t, observer.results(), 1)
		})
	}
}

func TestDeployMonitor_Idempotent(t *testing.T) {
	run := func() ([]models.DeployStatus, models.MonitorResult) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockRenderApiInterface(ctrl)
		observer := &recordingObserver{}

		expectPolls(client,
			poll{status: models.DeployCreated},
			poll{err: errNetwork},
			poll{status: models.DeployUpdateInProgress},
			poll{status: models.DeployUpdateFailed},
		)

		result := NewDeployMonitor(client, testConfig(), WithClock(newFakeClock())).Start(context.Background(), testServiceId, testDeployId, observer)
		return observer.statuses(), result
	}

	firstStatuses, firstResult := run()
	secondStatuses, secondResult := run()

	assert.Equal(t, firstStatuses, secondStatuses)
	assert.Equal(t, firstResult, secondResult)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 5*time.Second, config.PollInterval)
	assert.Equal(t, 600*time.Second, config.Timeout)
	assert.Equal(t, 3, config.MaxConsecutiveFailures)
	assert.NoError(t, config.validate())
}

func TestMultiObserver(t *testing.T) {
	first := &recordingObserver{}
	second := &recordingObserver{}
	var calls int

	observer := MultiObserver{first, nil, second, ObserverFunc(func(models.Report) { calls++ })}
	observer.Report(models.Report{DeployId: testDeployId})

	assert.Len(t, first.reports, 1)
	assert.Len(t, second.reports, 1)
	assert.Equal(t, 1, calls)
}
