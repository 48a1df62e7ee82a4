package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) databasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "databases [id]",
		Aliases: []string{"db"},
		Short:   "List Postgres instances or show one of them",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.runtimeFor()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				database, err := runtime.Render.Database(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("failed to fetch database %s: %w", args[0], err)
				}
				return a.printer(cmd).print(database, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s %s (%s)\n", bold("Database:"), database.Name, database.Id)
					_, _ = fmt.Fprintf(w, "%s %s\n", bold("Status:  "), database.Status)
					_, _ = fmt.Fprintf(w, "%s %s\n", bold("Plan:    "), orDash(database.Plan))
					_, _ = fmt.Fprintf(w, "%s %s\n", bold("Region:  "), orDash(database.Region))
					_, _ = fmt.Fprintf(w, "%s %s\n", bold("Version: "), orDash(database.Version))
					_, _ = fmt.Fprintf(w, "%s %s\n", bold("Created: "), formatTime(database.CreatedAt))
				})
			}

			databases, err := runtime.Render.Databases(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list databases: %w", err)
			}

			return a.printer(cmd).print(databases, func(w io.Writer) {
				if len(databases) == 0 {
					_, _ = fmt.Fprintln(w, "no databases")
					return
				}
				table(w, "ID\tNAME\tPLAN\tREGION\tSTATUS", func(w io.Writer) {
					for _, database := range databases {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", database.Id, database.Name, orDash(database.Plan), orDash(database.Region), database.Status)
					}
				})
			})
		},
	}
}
