package commands

import (
	"fmt"

	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nutrition-backend/internal/seed"
	"github.com/spf13/cobra"
)

var forceSeed bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset",
	Long: `Insert 10 users, 10 foods and 10 meals with their food links.

Examples:
  nutrition-backend seed
  nutrition-backend seed --force   # seed even when users already exist`,
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

		res, err := seed.Run(cmd.Context(), db, forceSeed)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d foods, %d meals, %d links\n",
			res.Users, res.Foods, res.Meals, res.Links)
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&forceSeed, "force", false, "Seed even when the database already holds users")
	rootCmd.AddCommand(seedCmd)
}
