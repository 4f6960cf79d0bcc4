package cmd

import (
	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/reseeder"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedTables string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixtures without clearing",
	Long: `
Load fixture files into the dashboard tables without clearing them first.
Rows whose primary key already exists are skipped.

Use --tables to load a subset; the tables are always loaded parents first.

Examples:
  stockseed seed
  stockseed seed --tables products,sales`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		order := tables.LoadOrder
		if seedTables != "" {
			order, err = tables.ParseList(seedTables)
			if err != nil {
				return err
			}
			warnMissingParents(order)
		}

		return withDatabase(cmd.Context(), cfg, func(a *database.Adapter) error {
			r := reseeder.New(a, reseeder.Options{FixturesDir: cfg.FixturesDir, Order: order})
			if err := r.Seed(cmd.Context()); err != nil {
				return err
			}
			color.Green("\n✅ Seeded %d tables", len(order))
			return nil
		})
	},
}

func warnMissingParents(order []tables.Table) {
	selected := make(map[tables.Table]bool, len(order))
	for _, t := range order {
		selected[t] = true
	}
	for _, t := range order {
		for _, parent := range t.Parents() {
			if !selected[parent] {
				color.Yellow("⚠️  %s references %s, which is not being seeded", t.Name(), parent.Name())
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&seedTables, "tables", "", "Comma separated tables to seed (e.g. users,products)")
}
