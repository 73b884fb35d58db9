package main

import (
	"fmt"

	"ninjashop/internal/infra/db"

	"github.com/spf13/cobra"
)

var skipSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update tables and seed default statuses and permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}

		if err := db.Migrate(cmd.Context(), gormDB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrated")

		if skipSeed {
			return nil
		}
		if err := db.Seed(cmd.Context(), gormDB); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		log.Info("seeded")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "only migrate the schema")
}
