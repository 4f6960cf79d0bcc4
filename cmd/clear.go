package cmd

import (
	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/reseeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all rows from the dashboard tables",
	Long: `
Delete all rows from the nine dashboard tables in dependency order without
loading fixtures afterwards. Tables that cannot be cleared are reported
and skipped.`,
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
			report, err := reseeder.New(a, reseeder.Options{}).ClearAll(cmd.Context())
			if err != nil {
				return err
			}

			if len(report.Failed) > 0 {
				color.Yellow("\n⚠️  Cleared %d tables, %d failed", len(report.Cleared), len(report.Failed))
				return nil
			}
			color.Green("\n✅ Cleared %d tables", len(report.Cleared))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
