package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/cakebakery/backend/internal/config"
	"github.com/cakebakery/backend/internal/database"
	"github.com/cakebakery/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bakery",
	Short:         "Cake bakery storefront",
	Long:          "Runs the cake bakery storefront and its maintenance tasks: schema migrations and seeding.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}

// bootstrap loads configuration, initializes the logger and connects to the database.
// The returned cleanup closes the database and flushes the logger.
func bootstrap(ctx context.Context) (*config.Config, *sql.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		logger.Sync()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Logger.Warn("failed to close database", zap.Error(err))
		}
		logger.Sync()
	}
	return cfg, db, cleanup, nil
}
