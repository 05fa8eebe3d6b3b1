// Command backofficectl runs one-off maintenance tasks against the back
// office database.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"backoffice/internal/app"
	authservice "backoffice/internal/auth/service"
	"backoffice/internal/auth/token"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
)

var Version = "dev"

var errNoDatabase = errors.New("DATABASE_URL is not set")

func main() {
	if err := newRootCmd(config.FromEnv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(load func() config.Server) *cobra.Command {
	root := &cobra.Command{
		Use:           "backofficectl",
		Short:         "Back office maintenance commands",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(migrateCmd(load))
	root.AddCommand(seedAdminCmd(load))
	return root
}

func migrateCmd(load func() config.Server) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := load()
			stores, err := openDatabase(cmd.Context(), cfg, logger.New(cfg.LogFormat))
			if err != nil {
				return err
			}
			stores.Pool.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func seedAdminCmd(load func() config.Server) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create or refresh the configured admin account",
		Long: `Upserts APP_LOGIN_EMAIL as an active ADMIN whose password is
APP_LOGIN_PASSWORD. Running it again resets the password and reactivates
the account.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := load()
			if email, _ := cmd.Flags().GetString("email"); email != "" {
				cfg.Auth.AdminEmail = email
			}
			log := logger.New(cfg.LogFormat)
			stores, err := openDatabase(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer stores.Pool.Close()

			auth := authservice.New(stores.Users, token.NewJWTService(cfg.Auth.JWTSigningKey), cfg.Auth,
				authservice.WithLogger(log))
			user, err := auth.SeedAdmin(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (id %s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().String("email", "", "admin email, overriding APP_LOGIN_EMAIL")
	return cmd
}

func openDatabase(ctx context.Context, cfg config.Server, log *slog.Logger) (*app.Stores, error) {
	if cfg.Database.URL == "" {
		return nil, errNoDatabase
	}
	return app.OpenStores(ctx, cfg.Database, log)
}
