package main

import (
	"fmt"

	"ninjashop/internal/infra/db"
	"ninjashop/internal/usecase"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var superuser usecase.RegisterInput

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create a user that holds every permission",
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		a := buildApp(cfg, gormDB, log)

		in := superuser
		in.Password2 = in.Password1
		u, err := a.auth.CreateSuperuser(cmd.Context(), in)
		if err != nil {
			return err
		}
		log.Info("superuser created", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
		return nil
	},
}

var grantCmd = &cobra.Command{
	Use:   "grant <username> <codename>...",
	Short: "Grant permissions to a user",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		gormDB, err := db.Connect(cfg)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		a := buildApp(cfg, gormDB, log)

		if err := a.auth.GrantPermissions(cmd.Context(), args[0], args[1:]); err != nil {
			return err
		}
		log.Info("permissions granted", zap.String("username", args[0]), zap.Strings("permissions", args[1:]))
		return nil
	},
}

func init() {
	f := createSuperuserCmd.Flags()
	f.StringVar(&superuser.Username, "username", "", "login name")
	f.StringVar(&superuser.Email, "email", "", "email address")
	f.StringVar(&superuser.Password1, "password", "", "password (min 8 chars)")
	f.StringVar(&superuser.FirstName, "first-name", "", "")
	f.StringVar(&superuser.LastName, "last-name", "", "")
	_ = createSuperuserCmd.MarkFlagRequired("username")
	_ = createSuperuserCmd.MarkFlagRequired("password")
}
