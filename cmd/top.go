package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTopCmd(a *app) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Print the best unrated names for the current feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, engine, choices, err := a.session()
			if err != nil {
				return err
			}
			ranked := engine.Top(choices.History(), k)
			if len(ranked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "every name has been rated")
				return nil
			}
			for i, r := range ranked {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d. %-24s %+.4f\n", i+1, names[r.Index], r.Score)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&k, "count", "k", 10, "number of names to print")
	return cmd
}
