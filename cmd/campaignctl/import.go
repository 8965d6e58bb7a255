package main

import (
	"errors"
	"fmt"

	"github.com/questboard/backend/internal/db"
	"github.com/questboard/backend/internal/events"
	"github.com/questboard/backend/internal/models"
	"github.com/questboard/backend/internal/repositories"
	"github.com/questboard/backend/internal/seed"
	"github.com/questboard/backend/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Append campaigns from YAML or JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var campaigns []models.Campaign
			for _, path := range args {
				loaded, err := seed.LoadFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				campaigns = append(campaigns, loaded...)
			}

			if dryRun {
				var invalid int
				for i, c := range campaigns {
					if err := c.Validate(); err != nil {
						invalid++
						fmt.Fprintf(out, "#%d %q: %v\n", i+1, c.Name, err)
					}
				}
				fmt.Fprintf(out, "%d campaigns, %d invalid\n", len(campaigns), invalid)
				if invalid > 0 {
					return errors.New("validation failed")
				}
				return nil
			}

			// Announce imports to running API servers when they share Redis.
			var publisher events.Publisher
			if a.cfg.RedisEnabled() {
				rdb, err := db.NewRedisClient(ctx, a.cfg.RedisURL, a.log)
				if err != nil {
					a.log.Warn("redis unavailable, imported campaigns will not be announced", zap.Error(err))
				} else {
					defer rdb.Close()
					publisher = events.NewRedisPublisher(rdb, a.log)
				}
			}

			svc := services.NewCampaignService(
				a.repo(),
				repositories.NewMemoryIdempotencyRepo(a.cfg.IdempotencyTTL),
				repositories.NewAuditRepo(a.log),
				publisher,
				a.log,
			)

			created, _, err := svc.Import(ctx, campaigns, services.CreateMeta{Actor: "cli"})
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			for _, c := range created {
				fmt.Fprintf(out, "imported %s %s\n", c.ID, c.Name)
			}
			fmt.Fprintf(out, "%d campaigns imported\n", len(created))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate only, do not write")
	return cmd
}
