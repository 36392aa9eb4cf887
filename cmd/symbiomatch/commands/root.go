package commands

import (
	"fmt"
	"os"
	"time"

	"symbiomatch-backend/internal/config"
	"symbiomatch-backend/internal/database"
	"symbiomatch-backend/internal/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbURL      string
	logLevel   string
	retries    int
	jsonOutput bool

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "symbiomatch",
	Short: "SymbioMatch - industrial symbiosis matching backend",
	Long: `SymbioMatch connects companies that produce by-products with companies that can
use them as raw material.

This tool manages the relational store behind the platform:
  - create or update the schema
  - load seed data from YAML files
  - run the read-side queries for products and user profiles`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load environment variables from .env file in development
		if err := godotenv.Load(); err != nil {
			logrus.Debug("No .env file found, using system environment variables")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dbURL != "" {
			cfg.DatabaseURL = dbURL
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}

		logger.Setup(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&retries, "retries", 1, "Connection attempts before giving up, one second apart")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// connect opens the database, retrying while Postgres is still starting up
func connect(skipMigrate bool) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel:     database.ParseLogLevel(cfg.DatabaseLogLevel),
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
		SkipMigrate:  skipMigrate,
	}

	attempts := retries
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := database.Initialize(cfg.DatabaseURL, opts)
		if err == nil {
			return db, nil
		}
		lastErr = err
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == attempts {
			logrus.Warnf("Database not ready (%d/%d): %v", attempt, attempts, err)
		}
		if attempt < attempts {
			time.Sleep(time.Second)
		}
	}
	return nil, fmt.Errorf("database not ready after %d attempts: %w", attempts, lastErr)
}
