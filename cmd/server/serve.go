package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, db, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			// The API still starts without a database; store-backed routes
			// answer 503 and /health reports the failure.
			if err := db.Connect(ctx); err != nil {
				log.Error().Err(err).
					Str("endpoint", db.Endpoint()).
					Msg("failed to connect to database")
			} else {
				log.Info().
					Str("endpoint", db.Endpoint()).
					Str("namespace", cfg.Database.Namespace).
					Str("database", cfg.Database.Database).
					Msg("connected to database")

				applied, err := database.Migrate(ctx, db)
				if err != nil {
					log.Error().Err(err).Msg("failed to apply migrations")
				} else {
					log.Info().Strs("migrations", applied).Msg("schema up to date")
				}
			}

			srv := server.New(cfg, log, db)

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				_ = db.Close()
				return err
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("shutting down server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server forced to shutdown")
				return err
			}

			log.Info().Msg("server stopped")
			return nil
		},
	}
}
