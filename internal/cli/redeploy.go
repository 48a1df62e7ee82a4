package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
	"github.com/shini4i/render-watcher/internal/monitor"
	"github.com/shini4i/render-watcher/internal/render"
)

const failureLogLines = 30

// watchSummary is the structured result of a watched deploy.
type watchSummary struct {
	SessionId string               `json:"session_id" yaml:"session_id"`
	DeployId  string               `json:"deploy_id" yaml:"deploy_id"`
	Result    models.MonitorResult `json:"result" yaml:"result"`
	Summary   string               `json:"summary" yaml:"summary"`
	Logs      string               `json:"logs,omitempty" yaml:"logs,omitempty"`
}

func (a *app) redeployCommand() *cobra.Command {
	var (
		watch      bool
		clearCache bool
		author     string
	)

	cmd := &cobra.Command{
		Use:   "redeploy",
		Short: "Trigger a new deploy of the service",
		Long: `Trigger a new deploy of the service.

With --watch the deploy is followed until it finishes and the exit code
reflects the outcome: 0 live, 1 failed, 2 timed out, 130 canceled.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			if !watch {
				deploy, err := runtime.Render.TriggerDeploy(cmd.Context(), clearCache)
				if err != nil {
					return fmt.Errorf("failed to trigger deploy: %w", err)
				}
				return a.printer(cmd).print(deploy, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s Deploy %s triggered (%s)\n", green("✓"), deploy.Id, deploy.Status)
				})
			}

			session, err := runtime.Watcher.Redeploy(cmd.Context(), render.RedeployRequest{
				ClearCache: clearCache,
				Author:     author,
			})
			if err != nil {
				return fmt.Errorf("failed to trigger deploy: %w", err)
			}

			return a.follow(cmd, runtime, session)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Wait until the deploy finishes")
	cmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Clear the build cache before deploying")
	cmd.Flags().StringVar(&author, "author", "", "Who requested the deploy, stored in the session history")

	return cmd
}

func (a *app) watchCommand() *cobra.Command {
	var author string

	cmd := &cobra.Command{
		Use:   "watch [deploy-id]",
		Short: "Follow an existing deploy until it finishes",
		Long: `Follow an existing deploy until it finishes. Without a deploy id the latest
deploy of the service is followed. The exit code reflects the outcome.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			var deployId string
			if len(args) == 1 {
				deployId = args[0]
			}

			session, err := runtime.Watcher.Attach(cmd.Context(), deployId, author)
			if err != nil {
				return fmt.Errorf("failed to attach to deploy: %w", err)
			}

			return a.follow(cmd, runtime, session)
		},
	}

	cmd.Flags().StringVar(&author, "author", "", "Who requested the watch, stored in the session history")

	return cmd
}

// follow watches session in the foreground and reports its result.
func (a *app) follow(cmd *cobra.Command, runtime *Runtime, session *models.Session) error {
	p := a.printer(cmd)

	var observer monitor.Observer
	if !p.structured() {
		_, _ = fmt.Fprintf(p.out, "Watching deploy %s of %s\n", bold(session.DeployId), session.ServiceName)
		observer = progressPrinter(p.out)
	}

	result := runtime.Watcher.Watch(cmd.Context(), session, observer)

	summary := watchSummary{
		SessionId: session.Id,
		DeployId:  session.DeployId,
		Result:    result,
		Summary:   result.String(),
	}
	if !result.Succeeded() && result.Outcome != models.OutcomeCanceled {
		summary.Logs = logTail(cmd, runtime)
	}

	if err := p.print(summary, func(w io.Writer) {
		printResult(w, summary)
	}); err != nil {
		return err
	}

	if result.Succeeded() {
		return nil
	}
	return &exitError{
		code: exitCodeFor(result),
		err:  fmt.Errorf("deploy %s %s", session.DeployId, result),
	}
}

func progressPrinter(out io.Writer) monitor.Observer {
	return monitor.ObserverFunc(func(report models.Report) {
		if report.Progress == nil {
			return
		}
		_, _ = fmt.Fprintf(out, "  [%6s] %s\n", report.Progress.Elapsed.Round(time.Second), colorStatus(report.Progress.Status))
	})
}

func printResult(w io.Writer, summary watchSummary) {
	elapsed := summary.Result.Elapsed.Round(time.Second)

	switch summary.Result.Outcome {
	case models.OutcomeSucceeded:
		_, _ = fmt.Fprintf(w, "%s Deploy %s is live after %s\n", green("✓"), summary.DeployId, elapsed)
	case models.OutcomeCanceled:
		_, _ = fmt.Fprintf(w, "%s Stopped watching deploy %s after %s\n", yellow("!"), summary.DeployId, elapsed)
	default:
		_, _ = fmt.Fprintf(w, "%s Deploy %s %s after %s\n", red("✗"), summary.DeployId, summary.Summary, elapsed)
	}

	if summary.Logs != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n%s\n", bold("Recent logs:"), summary.Logs)
	}
}

// logTail fetches the last service log lines to help diagnose a failed deploy.
func logTail(cmd *cobra.Command, runtime *Runtime) string {
	logs, err := runtime.Render.Logs(cmd.Context(), failureLogLines)
	if err != nil {
		log.Warn().Msgf("Couldn't fetch service logs: %s", err)
		return ""
	}
	return helpers.TailLines(logs, failureLogLines)
}

func exitCodeFor(result models.MonitorResult) int {
	switch result.Outcome {
	case models.OutcomeSucceeded:
		return ExitOK
	case models.OutcomeTimedOut:
		return ExitTimedOut
	case models.OutcomeCanceled:
		return ExitCanceled
	default:
		return ExitError
	}
}
