package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/stockseed/internal/config"
	"github.com/Rana718/stockseed/internal/database"
	"github.com/Rana718/stockseed/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// withDatabase connects with the configured provider, runs fn and always
// releases the connection.
func withDatabase(ctx context.Context, cfg *config.Config, fn func(*database.Adapter) error) error {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return err
	}

	return database.WithAdapter(ctx, cfg.Database.Provider, dbURL, func(a *database.Adapter) error {
		a.SetBatchSize(cfg.BatchSize)
		return fn(a)
	})
}

// confirm asks before a destructive command unless --force is set.
func confirm(cmd *cobra.Command, message string) bool {
	force, _ := cmd.Flags().GetBool("force")
	if utils.NewInputUtils().AskConfirmation(message, force) {
		return true
	}
	color.Yellow("❌ Operation cancelled")
	return false
}
