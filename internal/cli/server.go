package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/shini4i/render-watcher/internal/migrate"
	"github.com/shini4i/render-watcher/internal/server"
	"github.com/shini4i/render-watcher/pkg/client"
)

func (a *app) serverCommand() *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the HTTP API and background deploy watches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			if runMigrations && cfg.StateType == "postgres" {
				if err := applyMigrations(); err != nil {
					return err
				}
			}

			s, err := server.NewServer(cfg, prometheus.DefaultRegisterer)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&runMigrations, "migrate", false, "Apply database migrations before serving when STATE_TYPE=postgres")

	return cmd
}

func (a *app) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations of the postgres session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyMigrations(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Migrations applied\n", green("✓"))
			return nil
		},
	}
}

func applyMigrations() error {
	migrationConfig, err := migrate.NewMigrationConfig()
	if err != nil {
		return err
	}

	migrator, err := migrate.NewMigrator(migrationConfig)
	if err != nil {
		return err
	}

	return migrator.Run()
}

func (a *app) clientCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "client",
		Short: "Redeploy through a running render-watcher server and wait for the result",
		Long: `Redeploy through a running render-watcher server and wait for the result.

Configured with RENDER_WATCHER_URL, RENDER_WATCHER_API_KEY or RENDER_WATCHER_JWT,
COMMIT_AUTHOR, CLEAR_CACHE and RENDER_DEPLOY_ID to follow an existing deploy.
Meant for CI jobs that should not hold a Render API key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return client.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
}
