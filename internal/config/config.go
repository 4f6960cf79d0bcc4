package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/Rana718/stockseed/internal/database"
	"github.com/spf13/viper"
)

// FileName is the project config file looked up in the working directory.
const FileName = "stockseed.config.json"

type Config struct {
	FixturesDir string   `json:"fixtures_dir" mapstructure:"fixtures_dir"`
	BackupDir   string   `json:"backup_dir" mapstructure:"backup_dir"`
	BatchSize   int      `json:"batch_size" mapstructure:"batch_size"`
	Database    Database `json:"database" mapstructure:"database"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.FixturesDir == "" {
		c.FixturesDir = "db/seedData"
	}
	if c.BackupDir == "" {
		c.BackupDir = "db/backup"
	}
	if c.BatchSize == 0 {
		c.BatchSize = database.DefaultBatchSize
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(database.SupportedProviders, c.Database.Provider) {
		return fmt.Errorf("unsupported database provider: %s. Supported providers: %v", c.Database.Provider, database.SupportedProviders)
	}

	if c.BatchSize <= 0 || c.BatchSize > database.MaxBatchSize {
		return fmt.Errorf("batch_size must be between 1 and %d, got %d", database.MaxBatchSize, c.BatchSize)
	}

	if c.FixturesDir == "" {
		return fmt.Errorf("fixtures_dir cannot be empty")
	}

	return nil
}

// EnsureDirectories creates the fixtures and backup directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.FixturesDir, c.BackupDir} {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
