package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsInterface defines the interface for the metrics service. This is required
// for dependency injection and mocking in tests.
type MetricsInterface interface {
	AddProcessedDeployment(service string)
	AddFailedDeployment(service string)
	ResetFailedDeployment(service string)
	SetRenderUnavailable(unavailable bool)
	AddInProgressSession()
	RemoveInProgressSession()
	ObserveDeployDuration(service string, outcome string, seconds float64)
}

// Metrics contains all the prometheus collectors.
type Metrics struct {
	FailedDeployment     *prometheus.GaugeVec
	ProcessedDeployments *prometheus.CounterVec
	RenderUnavailable    prometheus.Gauge
	InProgressSessions   prometheus.Gauge
	DeployDuration       *prometheus.HistogramVec
}

// NewMetrics creates and registers the metrics with the provided Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FailedDeployment: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "failed_deployment",
			Help: "Per service failed deployment count before first success.",
		}, []string{"service"}),
		ProcessedDeployments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "processed_deployments",
			Help: "The amount of deployments processed since startup.",
		}, []string{"service"}),
		RenderUnavailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "render_unavailable",
			Help: "Whether the Render API is unreachable for render-watcher.",
		}),
		InProgressSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "in_progress_sessions",
			Help: "The number of monitoring sessions currently in progress.",
		}),
		DeployDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deploy_duration_seconds",
			Help:    "Time from deploy trigger to terminal outcome.",
			Buckets: []float64{15, 30, 60, 120, 180, 300, 450, 600},
		}, []string{"service", "outcome"}),
	}

	reg.MustRegister(m.FailedDeployment, m.ProcessedDeployments, m.RenderUnavailable, m.InProgressSessions, m.DeployDuration)

	return m
}

// AddProcessedDeployment increments the ProcessedDeployments counter.
func (m *Metrics) AddProcessedDeployment(service string) {
	m.ProcessedDeployments.WithLabelValues(service).Inc()
}

// AddFailedDeployment increments the FailedDeployment gauge for the given service.
func (m *Metrics) AddFailedDeployment(service string) {
	m.FailedDeployment.WithLabelValues(service).Inc()
}

// ResetFailedDeployment resets the FailedDeployment gauge for the given service.
func (m *Metrics) ResetFailedDeployment(service string) {
	m.FailedDeployment.WithLabelValues(service).Set(0)
}

func (m *Metrics) SetRenderUnavailable(unavailable bool) {
	if unavailable {
		m.RenderUnavailable.Set(1)
	} else {
		m.RenderUnavailable.Set(0)
	}
}

func (m *Metrics) AddInProgressSession() {
	m.InProgressSessions.Inc()
}

func (m *Metrics) RemoveInProgressSession() {
	m.InProgressSessions.Dec()
}

// ObserveDeployDuration records how long a monitored deploy took to settle.
func (m *Metrics) ObserveDeployDuration(service string, outcome string, seconds float64) {
	m.DeployDuration.WithLabelValues(service, outcome).Observe(seconds)
}
