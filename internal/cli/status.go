package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shini4i/render-watcher/internal/server"
)

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the configured service and its latest deploy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			info, err := runtime.Render.ServiceInfo(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch service status: %w", err)
			}

			return a.printer(cmd).print(info, func(w io.Writer) {
				_, _ = fmt.Fprintf(w, "%s %s (%s)\n", bold("Service:"), info.Name, info.Id)
				_, _ = fmt.Fprintf(w, "%s %s\n", bold("Status: "), info.Status)
				_, _ = fmt.Fprintf(w, "%s %s\n", bold("URL:    "), orDash(info.Url))
				_, _ = fmt.Fprintf(w, "%s %s\n", bold("Created:"), formatTime(info.CreatedAt))
				_, _ = fmt.Fprintf(w, "%s %s\n", bold("Updated:"), formatTime(info.UpdatedAt))
				if info.LatestDeploy != nil {
					_, _ = fmt.Fprintf(w, "%s %s %s\n", bold("Deploy: "), info.LatestDeploy.Id, colorStatus(info.LatestDeploy.Status))
				} else {
					_, _ = fmt.Fprintf(w, "%s %s\n", bold("Deploy: "), "-")
				}
			})
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the render-watcher version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), server.Version())
		},
	}
}
