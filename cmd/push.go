package cmd

import (
	"github.com/Rana718/stockseed/internal/database"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Create the dashboard tables",
	Long: `
Create the nine dashboard tables and their foreign keys for the configured
provider. Existing tables are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return withDatabase(cmd.Context(), cfg, func(a *database.Adapter) error {
			color.Cyan("📦 Applying %s schema...", a.Provider())
			if err := a.ApplySchema(cmd.Context()); err != nil {
				return err
			}
			color.Green("✅ Schema is up to date")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(pushCmd)
}
