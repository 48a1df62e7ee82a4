package monitor

import (
	"github.com/rs/zerolog/log"
	"github.com/shini4i/render-watcher/internal/models"
)

// LogObserver writes every report as a structured log line.
type LogObserver struct{}

func (LogObserver) Report(report models.Report) {
	if report.Progress != nil {
		log.Info().
			Str("service", report.ServiceId).
			Str("deploy", report.DeployId).
			Dur("elapsed", report.Progress.Elapsed).
			Msgf("Deploy status changed to %s", report.Progress.Status)
	}
	if report.Result != nil {
		event := log.Info()
		if !report.Result.Succeeded() {
			event = log.Warn()
		}
		event.Str("service", report.ServiceId).
			Str("deploy", report.DeployId).
			Int("polls", report.Result.Polls).
			Dur("elapsed", report.Result.Elapsed).
			Msgf("Deploy monitoring finished: %s", report.Result)
	}
}

// MultiObserver fans a report out to several observers in order.
type MultiObserver []Observer

func (observers MultiObserver) Report(report models.Report) {
	for _, observer := range observers {
		if observer != nil {
			observer.Report(report)
		}
	}
}
