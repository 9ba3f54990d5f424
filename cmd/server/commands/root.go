package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbDriver   string
	sqlitePath string
	logLevel   string
)

// rootCmd runs the HTTP server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "nutrition-backend",
	Short: "REST backend for users, foods and meals",
	Long: `nutrition-backend serves a JSON API over users, foods and meals and keeps
meal-food links consistent with the rows they reference.

Configuration is read from the environment (and a .env file when present);
the flags below override the matching variables.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
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
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite or postgres (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite-path", "", "SQLite database file (overrides SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")
}

// loadConfig reads the environment, applies flag overrides and validates
// the result.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if dbDriver != "" {
		cfg.DBDriver = strings.ToLower(dbDriver)
	}
	if sqlitePath != "" {
		cfg.SQLitePath = sqlitePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openDatabase connects and migrates the schema.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func setupLogging(cfg *config.Config) {
	logging.Setup(cfg.LogLevel)
}
