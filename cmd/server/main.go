package main

import (
	"fmt"
	"os"

	"github.com/forgo/madoka/api/internal/config"
	"github.com/forgo/madoka/api/internal/database"
	"github.com/forgo/madoka/api/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "madoka",
		Short:         "Magical girl and witch registry API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd())
	return root
}

// setup loads and validates configuration, then builds the logger and an
// unconnected database handle from it
func setup() (*config.Config, zerolog.Logger, *database.SurrealDB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logger.New(cfg)
	db := database.NewSurrealDB(database.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Namespace:      cfg.Database.Namespace,
		Database:       cfg.Database.Database,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	return cfg, log, db, nil
}
