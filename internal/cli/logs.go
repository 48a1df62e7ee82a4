package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) logsCommand() *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the recent log lines of the service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines <= 0 {
				return errors.New("--lines must be a positive number")
			}

			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			logs, err := runtime.Render.Logs(cmd.Context(), lines)
			if err != nil {
				return fmt.Errorf("failed to fetch logs: %w", err)
			}

			return a.printer(cmd).print(map[string]string{"logs": logs}, func(w io.Writer) {
				_, _ = fmt.Fprintln(w, logs)
			})
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 100, "Number of log lines to fetch")

	return cmd
}
