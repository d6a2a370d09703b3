package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookswap-hub/bookswap/shared/shell/config"
	"github.com/bookswap-hub/bookswap/shared/shell/telemetry"
)

var errMigrateNeedsPostgres = errors.New("migrate needs a postgres adapter")

func newMigrateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the events table and its indexes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			if cfg.Database.AdapterType == config.AdapterMemory {
				return errMigrateNeedsPostgres
			}

			ctx := cmd.Context()
			logger := telemetry.NewJSONLogger(os.Stdout, cfg.Log.Level)

			handle, err := config.OpenEventStore(ctx, cfg.Database, config.Observability{Logger: logger})
			if err != nil {
				return err
			}
			defer handle.Close()

			if err = handle.Postgres.CreateSchema(ctx); err != nil {
				return err
			}

			logger.InfoContext(ctx, logMsgSchemaEnsured, "table", cfg.Database.EventsTable)

			return nil
		},
	}
}
