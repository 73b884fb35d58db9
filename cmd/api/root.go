package main

import (
	"errors"
	"io/fs"

	"ninjashop/internal/config"
	"ninjashop/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile string

	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "ninjashop",
	Short:         "ninjashop API server and admin commands",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		//.envは無くてもよい
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}

		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c

		l, err := logger.New(cfg.GoEnv, cfg.LogLevel)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	rootCmd.AddCommand(serveCmd, migrateCmd, createSuperuserCmd, grantCmd)
}
