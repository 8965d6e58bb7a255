// Command campaignctl inspects and bulk-loads the campaign data file.
//
//	campaignctl list [--json]
//	campaignctl import FILE...
//	campaignctl check
//
// It writes through the same store as the API, so appends stay serialized
// within one process only. Stop the API or import through POST /campaigns
// when both must write at once.
package main

import (
	"fmt"
	"os"

	"github.com/questboard/backend/internal/config"
	"github.com/questboard/backend/internal/repositories"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg      *config.Config
	log      *zap.Logger
	dataFile string
	verbose  bool
}

func (a *app) repo() *repositories.CampaignRepo {
	return repositories.NewCampaignRepo(a.dataFile, a.log)
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:           "campaignctl",
		Short:         "Inspect and import campaigns",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			if a.dataFile == "" {
				a.dataFile = cfg.DataFile
			}
			if a.verbose {
				log, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				a.log = log
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dataFile, "data", "", "campaign data file (default $CAMPAIGNS_DATA_FILE)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(newListCmd(a), newImportCmd(a), newCheckCmd(a))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
