// AngelaMos | 2026
// seed.go

package main

import (
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/articlehub/internal/article"
	"github.com/carterperez-dev/articlehub/internal/core"
	"github.com/carterperez-dev/articlehub/internal/schema"
	"github.com/carterperez-dev/articlehub/internal/seed"
	"github.com/carterperez-dev/articlehub/internal/user"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and the welcome article",
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

			if err := schema.NewInitializer(db, logger).Ensure(ctx); err != nil {
				return err
			}

			seeder := seed.NewSeeder(
				user.NewService(user.NewRepository(db)),
				article.NewRepository(db),
				cfg.Seed,
				logger,
			)

			report, err := seeder.Run(ctx)
			if err != nil {
				return err
			}

			if report.AdminCreated {
				logger.Info("admin login", "email", cfg.Seed.AdminEmail)
			}

			return nil
		},
	}
}
