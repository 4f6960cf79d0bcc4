package cmd

import (
	"errors"
	"fmt"

	"github.com/Rana718/stockseed/internal/config"
	"github.com/Rana718/stockseed/internal/reseeder"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	Version = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "stockseed",
	Short: "Reset and reseed the inventory dashboard database",
	Long: `
stockseed clears the inventory dashboard tables in dependency order and
loads them again from fixture files.

Tables:
  Users, Products, Sales, Purchases, Expenses,
  SalesSummary, PurchaseSummary, ExpenseSummary, ExpenseByCategory

Database Support:
- PostgreSQL
- MySQL
- SQLite`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors are returned to main, which
// prints them unless AlreadyReported says otherwise.
func Execute() error {
	return rootCmd.Execute()
}

// AlreadyReported reports whether err was printed by the command that
// returned it. Seed failures are printed by the reseeder as they happen.
func AlreadyReported(err error) bool {
	var seedErr *reseeder.TableSeedError
	return errors.As(err, &seedErr)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolP("force", "f", false, "Skip confirmations")
	rootCmd.PersistentFlags().String("fixtures", "", "fixtures directory (overrides fixtures_dir)")

	viper.BindPFlag("fixtures_dir", rootCmd.PersistentFlags().Lookup("fixtures"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
	}
	godotenv.Load(".env.local")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("stockseed.config")
	}

	viper.SetEnvPrefix("STOCKSEED")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Printf("⚠️  Could not read config file %s: %v\n", cfgFile, err)
	}
}
