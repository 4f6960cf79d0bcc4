package cmd

import (
	"os"
	"strconv"

	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/fixtures"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts and fixture files",
	Long: `
Show, for every dashboard table in load order, the number of rows in the
database and the fixture file that would be loaded into it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return withDatabase(cmd.Context(), cfg, func(a *database.Adapter) error {
			var rows [][]string
			for _, t := range tables.LoadOrder {
				count := "missing"
				n, err := a.CountRows(cmd.Context(), t.Name())
				switch {
				case err == nil:
					count = strconv.FormatInt(n, 10)
				case !database.IsUndefinedTable(err):
					return err
				}

				fixture := fixtures.Resolve(cfg.FixturesDir, t)
				if _, err := os.Stat(fixture); err != nil {
					fixture += " (not found)"
				}
				rows = append(rows, []string{t.Name(), count, fixture})
			}

			color.Cyan("📊 %s database status", a.Provider())
			utils.RenderTable(os.Stdout, []string{"Table", "Rows", "Fixture"}, rows)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
