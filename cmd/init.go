package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/stockseed/internal/config"
	"github.com/Rana718/stockseed/internal/tables"
	"github.com/Rana718/stockseed/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sqliteFlag     bool
	postgresqlFlag bool
	mysqlFlag      bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a stockseed project",
	Long: `
Create stockseed.config.json, the fixtures and backup directories, an
empty fixture file for every table and a DATABASE_URL entry in .env.
Existing files are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbType := template.PostgreSQL
		flagCount := 0

		if sqliteFlag {
			dbType = template.SQLite
			flagCount++
		}
		if postgresqlFlag {
			dbType = template.PostgreSQL
			flagCount++
		}
		if mysqlFlag {
			dbType = template.MySQL
			flagCount++
		}

		if flagCount > 1 {
			return fmt.Errorf("please specify only one database type (--sqlite, --postgresql, or --mysql)")
		}

		return initializeProject(dbType)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&sqliteFlag, "sqlite", false, "Initialize project for SQLite database")
	initCmd.Flags().BoolVar(&postgresqlFlag, "postgresql", false, "Initialize project for PostgreSQL database")
	initCmd.Flags().BoolVar(&mysqlFlag, "mysql", false, "Initialize project for MySQL database")
}

func initializeProject(dbType template.DatabaseType) error {
	tmpl := template.NewProjectTemplate(dbType)

	if _, err := os.Stat(config.FileName); err == nil {
		color.Yellow("ℹ️  %s already exists, keeping it", config.FileName)
	} else {
		content, err := tmpl.GetConfig()
		if err != nil {
			return err
		}
		if err := os.WriteFile(config.FileName, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", config.FileName, err)
		}
	}

	// initConfig ran before the file existed, so read it now. Values from
	// an existing file and --fixtures win over the defaults.
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", config.FileName, err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	created := 0
	for _, t := range tables.LoadOrder {
		path := filepath.Join(cfg.FixturesDir, t.FixtureFile())
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
			return fmt.Errorf("failed to create file %s: %w", path, err)
		}
		created++
	}

	if err := handleEnvFile(tmpl.GetEnvTemplate()); err != nil {
		return fmt.Errorf("failed to handle .env file: %w", err)
	}

	color.Green("✅ Initialized stockseed project with %s database support", dbType)
	fmt.Println()
	fmt.Println("📁 Fixtures directory:", cfg.FixturesDir, fmt.Sprintf("(%d new files)", created))
	fmt.Println("📝 Configuration file:", config.FileName)
	fmt.Println()
	fmt.Printf("🚀 Next steps:\n")
	fmt.Printf("   stockseed push      # Create the tables\n")
	fmt.Printf("   stockseed reseed    # Clear and load the fixtures\n")

	return nil
}

func handleEnvFile(defaultEnvContent string) error {
	envPath := ".env"

	existingContent, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(envPath, []byte(defaultEnvContent), 0644)
		}
		return err
	}

	existingStr := string(existingContent)
	if strings.Contains(existingStr, "DATABASE_URL") {
		return nil
	}

	if len(existingStr) > 0 && !strings.HasSuffix(existingStr, "\n") {
		existingStr += "\n"
	}

	existingStr += "\n# Added by stockseed\n" + defaultEnvContent

	return os.WriteFile(envPath, []byte(existingStr), 0644)
}
