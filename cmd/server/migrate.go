package main

import (
	"fmt"

	"github.com/forgo/madoka/api/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, log, db, err := setup()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := db.Connect(ctx); err != nil {
				return fmt.Errorf("connect to %s: %w", db.Endpoint(), err)
			}
			defer func() { _ = db.Close() }()

			applied, err := database.Migrate(ctx, db)
			for _, name := range applied {
				log.Info().Str("migration", name).Msg("applied")
			}
			return err
		},
	}
}
