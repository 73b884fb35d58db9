package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"ninjashop/internal/infra/db"
	"ninjashop/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		gormDB, err := db.Connect(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}

		a := buildApp(cfg, gormDB, log)
		defer func() {
			if err := a.publisher.Close(); err != nil {
				log.Warn("close event publisher", zap.Error(err))
			}
		}()

		e := server.New(cfg, log, a.handlers, a.auth)
		return server.Start(ctx, e, ":"+cfg.Port, log)
	},
}
