package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"blog/migrations"
	"blog/utils/migration"
	"blog/utils/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
	Long: `Apply, roll back, or inspect schema migrations.

Examples:
  blog migrate up                # Apply every pending migration
  blog migrate down --steps 1    # Roll back the latest migration
  blog migrate status            # List migrations and their state`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(false)
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error {
			n, err := m.Up(cmd.Context())
			if err != nil {
				return err
			}
			printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if n == 0 {
				printer.Info("schema is up to date")
				return nil
			}
			printer.Success("applied %d migration(s)", n)
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1, got %d", steps)
		}
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error {
			n, err := m.Down(cmd.Context(), steps)
			if err != nil {
				return err
			}
			printer := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if n == 0 {
				printer.Warning("no applied migrations to roll back")
				return nil
			}
			printer.Success("rolled back %d migration(s)", n)
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withMigrator(cmd.Context(), func(m *migration.Migrator) error {
			statuses, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			renderStatus(output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr()), output.NewTable(cmd.OutOrStdout(), []string{"Version", "Name", "State", "Applied At"}), statuses)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	migrateDownCmd.Flags().Int("steps", 1, "number of migrations to roll back")
}

func withMigrator(ctx context.Context, fn func(m *migration.Migrator) error) error {
	db, err := migration.Open(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer func(db *sql.DB) { _ = db.Close() }(db)

	return fn(migration.NewMigrator(db, log, migrations.FS))
}

func renderStatus(printer *output.Printer, table *output.Table, statuses []migration.Status) {
	for _, s := range statuses {
		appliedAt := "-"
		if s.Applied {
			appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		table.AddRow(strconv.Itoa(s.Version), s.Name, printer.Status(s.Applied), appliedAt)
	}
	table.Render()
}
