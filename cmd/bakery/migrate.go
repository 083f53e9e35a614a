package main

import (
	"github.com/cakebakery/backend/internal/database"
	"github.com/cakebakery/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// bakery migrate up|down
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.RunMigrations(db); err != nil {
			return err
		}
		logger.Logger.Info("migrations applied")
		return nil
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if err := database.RollbackMigrations(db, migrateDownSteps); err != nil {
			return err
		}
		logger.Logger.Info("migrations rolled back", zap.Int("steps", migrateDownSteps))
		return nil
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}
