package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shini4i/render-watcher/internal/helpers"
	"github.com/shini4i/render-watcher/internal/models"
)

func (a *app) envCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage environment variables of the service",
	}

	cmd.AddCommand(a.envListCommand(), a.envSetCommand())

	return cmd
}

func (a *app) envListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List environment variables with secrets redacted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			envVars, err := runtime.Render.EnvVars(cmd.Context(), true)
			if err != nil {
				return fmt.Errorf("failed to list environment variables: %w", err)
			}

			return a.printer(cmd).print(envVars, func(w io.Writer) {
				if len(envVars) == 0 {
					_, _ = fmt.Fprintln(w, "no environment variables")
					return
				}
				table(w, "KEY\tVALUE", func(w io.Writer) {
					for _, envVar := range envVars {
						_, _ = fmt.Fprintf(w, "%s\t%s\n", envVar.Key, envVar.Value)
					}
				})
			})
		},
	}
}

func (a *app) envSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Create or update an environment variable",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			updated, err := runtime.Render.SetEnvVar(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to set %s: %w", args[0], err)
			}

			redacted := helpers.RedactEnvVars([]models.EnvVar{*updated}, runtime.Config.RedactedEnvKeys)[0]
			return a.printer(cmd).print(redacted, func(w io.Writer) {
				_, _ = fmt.Fprintf(w, "%s %s updated\n", green("✓"), redacted.Key)
			})
		},
	}
}
