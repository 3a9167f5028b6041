package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/database/seeders"
	"github.com/siddharthaBojanki/greenCart/pkg/database"
)

// greencart seed — run all registered seeders.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalogue with starter products",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(cmd.Context()); err != nil {
			return fmt.Errorf("store connection failed: %w", err)
		}
		defer database.Disconnect(cmd.Context())

		fmt.Println("Seeding database …")
		return seeders.RunAll(cmd.Context())
	},
}
