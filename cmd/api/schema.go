// AngelaMos | 2026
// schema.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/articlehub/internal/core"
	"github.com/carterperez-dev/articlehub/internal/schema"
)

func newSchemaCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, logger, err := opts.loadConfig()
			if err != nil {
				return err
			}

			db, err := core.NewDatabase(ctx, cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close() //nolint:errcheck // process is exiting

			return schema.NewInitializer(db, logger).Ensure(ctx)
		},
	}
}
