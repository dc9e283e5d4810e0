package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/config"
	"github.com/akinankarali/upwork-job-api/internal/database/migration"
	dbpostgres "github.com/akinankarali/upwork-job-api/internal/database/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the search run schema to the configured Postgres database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			runner := migration.Runner{}

			if dryRun {
				migs, err := runner.Pending()
				if err != nil {
					return err
				}
				for _, m := range migs {
					fmt.Fprintf(cmd.OutOrStdout(), "V%d %s %s\n", m.Version, m.Name, m.Checksum[:12])
				}
				return nil
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errors.New("DB_HOST is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			db, err := dbpostgres.Connect(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer db.Close()

			if err := runner.Run(ctx, db.SQLDB()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the embedded migrations without connecting")

	return cmd
}
