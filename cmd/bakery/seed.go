package main

import (
	"fmt"

	"github.com/cakebakery/backend/internal/logger"
	"github.com/cakebakery/backend/internal/repositories"
	"github.com/cakebakery/backend/internal/services"
	"github.com/spf13/cobra"
)

// bakery seed admin|cakes
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert initial data",
}

var (
	seedAdminUsername string
	seedAdminPassword string
)

var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create an admin account unless the username is already taken",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, cleanup, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		username, password := cfg.Admin.Username, cfg.Admin.Password
		if seedAdminUsername != "" {
			username = seedAdminUsername
		}
		if seedAdminPassword != "" {
			password = seedAdminPassword
		}

		seeder := services.NewSeedService(
			repositories.NewUserRepository(db, logger.Logger),
			repositories.NewCakeRepository(db, logger.Logger),
			logger.Logger,
		)
		created, err := seeder.SeedAdmin(cmd.Context(), username, password)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", username)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q already exists\n", username)
		}
		return nil
	},
}

var seedCakesCmd = &cobra.Command{
	Use:   "cakes",
	Short: "Load the starter catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		seeder := services.NewSeedService(
			repositories.NewUserRepository(db, logger.Logger),
			repositories.NewCakeRepository(db, logger.Logger),
			logger.Logger,
		)
		n, err := seeder.SeedCakes(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d cakes added\n", n)
		return nil
	},
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedAdminUsername, "username", "", "admin username (default ADMIN_USERNAME)")
	seedAdminCmd.Flags().StringVar(&seedAdminPassword, "password", "", "admin password (default ADMIN_PASSWORD)")
	seedCmd.AddCommand(seedAdminCmd)
	seedCmd.AddCommand(seedCakesCmd)
}
