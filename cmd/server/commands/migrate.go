package commands

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Create the users, foods, meals, meal_foods and system_logs tables, or add
missing columns and indexes to existing ones. Nothing is dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg)

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		slog.Info("migration completed", "driver", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
