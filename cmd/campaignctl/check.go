package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the data file and every stored campaign",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := a.repo().LoadAll(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			problems := 0
			seen := make(map[string]int, col.Len())
			for i, c := range col.Campaigns {
				switch prev, dup := seen[c.ID]; {
				case c.ID == "":
					problems++
					fmt.Fprintf(out, "campaigns[%d] %q: missing id\n", i, c.Name)
				case dup:
					problems++
					fmt.Fprintf(out, "campaigns[%d] %q: id %s already used by campaigns[%d]\n", i, c.Name, c.ID, prev)
				default:
					seen[c.ID] = i
				}
				if err := c.Validate(); err != nil {
					problems++
					fmt.Fprintf(out, "campaigns[%d] %q: %v\n", i, c.Name, err)
				}
			}

			if problems > 0 {
				return fmt.Errorf("%s: %d problems", a.dataFile, problems)
			}
			fmt.Fprintf(out, "%s: %d campaigns ok\n", a.dataFile, col.Len())
			return nil
		},
	}
}
