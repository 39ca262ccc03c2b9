package migrate

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"stockdesk/internal/infrastructure/database"
	"stockdesk/internal/infrastructure/migration"
	"stockdesk/internal/interfaces/cli/bootstrap"
	"stockdesk/internal/shared/biztime"
	"stockdesk/internal/shared/logger"
)

var steps int

func NewCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Apply, roll back and inspect the versioned schema migrations.`,
	}

	cmd.AddCommand(
		newUpCommand(configPath),
		newDownCommand(configPath),
		newStatusCommand(configPath),
		newVersionCommand(configPath),
	)

	return cmd
}

func newUpCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				applied, err := m.Up(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
				return nil
			})
		},
	}
}

func newDownCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				log.Infow("rolling back migrations", "steps", steps)
				return m.Down(ctx, steps)
			})
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")

	return cmd
}

func newStatusCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show every migration with its applied state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				rows, err := m.Status(ctx)
				if err != nil {
					return err
				}
				return printStatus(cmd.OutOrStdout(), rows)
			})
		},
	}
}

func newVersionCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), *configPath, func(ctx context.Context, m *migration.Migrator, log logger.Interface) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), version)
				return nil
			})
		},
	}
}

func withMigrator(ctx context.Context, configPath string, fn func(context.Context, *migration.Migrator, logger.Interface) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	_, log, err := bootstrap.OpenDatabase(configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	m, err := migration.NewMigrator(database.Get(), log)
	if err != nil {
		return err
	}
	return fn(ctx, m, log)
}

func printStatus(w io.Writer, rows []migration.Status) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
	for _, row := range rows {
		state, appliedAt := "pending", "-"
		if row.Applied {
			state = "applied"
			appliedAt = biztime.Format(&row.AppliedAt, nil)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Version, state, appliedAt, row.Source)
	}
	return tw.Flush()
}
