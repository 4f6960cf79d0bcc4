package cmd

import (
	"time"

	"github.com/Rana718/stockseed/internal/backup"
	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/export"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportOut  string
	exportYAML bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard tables as fixture files",
	Long: `
Write the current rows of every dashboard table as fixture files, one per
table. The output directory can be used as a fixtures directory.

Examples:
  stockseed export
  stockseed export --out db/seedData
  stockseed export --yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = backup.Dir(cfg.BackupDir, time.Now())
		}
		format := export.FormatJSON
		if exportYAML {
			format = export.FormatYAML
		}

		return withDatabase(cmd.Context(), cfg, func(a *database.Adapter) error {
			counts, err := export.PerformExport(cmd.Context(), a, out, format)
			if err != nil {
				return err
			}

			total := 0
			for _, n := range counts {
				total += n
			}
			color.Green("\n✅ Export completed: %s (%d rows)", out, total)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (default is a timestamped directory in backup_dir)")
	exportCmd.Flags().BoolVar(&exportYAML, "yaml", false, "Write YAML instead of JSON")
}
