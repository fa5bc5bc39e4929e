package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spherical/question-splitter/internal/storage"
	"github.com/spherical/question-splitter/internal/ui"
)

// newMigrateCmd creates the migrate subcommand.
func newMigrateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dbCfg := cfg.Output.Database

			dbCfg.AutoMigrate = false

			db, err := openDatabase(ctx, dbCfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			out := ui.NewWithWriters(cmd.OutOrStdout(), cmd.ErrOrStderr(), false)
			mgr := storage.NewMigrationManager(db)

			status, err := mgr.CheckMigrations(ctx)
			if err != nil {
				return fmt.Errorf("check migrations: %w", err)
			}

			if status.UpToDate {
				out.Success("%s is up to date (%d migrations)", describeDatabase(dbCfg), status.Total)
				return nil
			}

			if checkOnly {
				for _, name := range status.Pending {
					out.Warning("pending: %s", name)
				}
				return nil
			}

			if err := mgr.RunMigrations(ctx, status); err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}
			out.Success("Applied %d migrations to %s", len(status.Pending), describeDatabase(dbCfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "list pending migrations without applying them")
	return cmd
}
