package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/shini4i/render-watcher/internal/export/history"
	"github.com/shini4i/render-watcher/internal/models"
)

const exportBatchSize = 500

func (a *app) sessionsCommand() *cobra.Command {
	var (
		service   string
		since     time.Duration
		limit     int
		export    string
		anonymize bool
	)

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Show the history of watched deploys",
		Long: `Show the history of watched deploys. The history is only shared between
invocations when STATE_TYPE=postgres.

With --export the matching sessions are written as csv or json instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if export != "" && export != "csv" && export != "json" {
				return fmt.Errorf("unsupported export format %q, expected csv or json", export)
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			var startTime float64
			if since > 0 {
				startTime = float64(now.Add(-since).Unix())
			}
			endTime := float64(now.Unix())

			if export != "" {
				var writer history.RowWriter
				if export == "json" {
					writer = history.NewJSONWriter(cmd.OutOrStdout())
				} else {
					writer = history.NewCSVWriter(cmd.OutOrStdout(), anonymize)
				}

				filter := history.Filter{StartTime: startTime, EndTime: endTime, Service: service, Anonymize: anonymize}
				if err := history.Stream(runtime.Render.State, filter, writer, exportBatchSize); err != nil {
					return fmt.Errorf("failed to export sessions: %w", err)
				}
				return writer.Close()
			}

			sessions, total := runtime.Render.State.GetSessions(startTime, endTime, service, limit, 0)
			response := models.SessionsResponse{Sessions: sessions, Total: total}

			return a.printer(cmd).print(response, func(w io.Writer) {
				if len(sessions) == 0 {
					_, _ = fmt.Fprintln(w, "no sessions")
					return
				}
				table(w, "ID\tSERVICE\tDEPLOY\tAUTHOR\tCREATED\tSTATUS", func(w io.Writer) {
					for _, session := range sessions {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
							session.Id,
							orDash(session.ServiceName),
							session.DeployId,
							orDash(session.Author),
							formatUnix(session.Created),
							colorSessionStatus(session.Status),
						)
					}
				})
				if int64(len(sessions)) < total {
					_, _ = fmt.Fprintf(w, "\nshowing %d of %d sessions\n", len(sessions), total)
				}
			})
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "Filter by service id or name")
	cmd.Flags().DurationVar(&since, "since", 0, "Only show sessions created within this duration, e.g. 24h")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of sessions to show, 0 for all")
	cmd.Flags().StringVar(&export, "export", "", "Export format: csv or json")
	cmd.Flags().BoolVar(&anonymize, "anonymize", true, "Leave out authors and status reasons in exports")

	return cmd
}
