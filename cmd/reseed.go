package cmd

import (
	"time"

	"github.com/Rana718/stockseed/internal/backup"
	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/reseeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reseedBackup bool

var reseedCmd = &cobra.Command{
	Use:   "reseed",
	Short: "Clear every table and load the fixtures again",
	Long: `
Reset the dashboard data. This is a destructive operation that will:

1. Prompt for confirmation (unless --force is used)
2. Optionally export the current rows to backup_dir (--backup)
3. Suspend foreign key enforcement on Sales, Purchases and ExpenseByCategory
4. Delete all rows from the nine tables, children first
5. Restore foreign key enforcement
6. Load each table from its fixture file, parents first

A table that cannot be cleared is reported and skipped. Any seeding
failure stops the run and exits non-zero.

⚠️  WARNING: This will permanently delete all rows in these tables!`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if !confirm(cmd, "⚠️  This will delete all dashboard data. Continue?") {
			return nil
		}

		return withDatabase(cmd.Context(), cfg, func(a *database.Adapter) error {
			if reseedBackup {
				if _, err := backup.Create(cmd.Context(), a, cfg.BackupDir, time.Now()); err != nil {
					return err
				}
			}

			color.Cyan("🔌 Connected to %s", a.Provider())
			r := reseeder.New(a, reseeder.Options{FixturesDir: cfg.FixturesDir})
			return r.Run(cmd.Context())
		})
	},
}

func init() {
	rootCmd.AddCommand(reseedCmd)
	reseedCmd.Flags().BoolVar(&reseedBackup, "backup", false, "Export current rows to backup_dir before clearing")
}
