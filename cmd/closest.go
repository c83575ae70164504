package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/namesake/internal/recommend"
	"github.com/trknhr/namesake/internal/store"
)

func newClosestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "closest <name>",
		Short: "Print the unrated name nearest to the given one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, engine, choices, err := a.session()
			if err != nil {
				return err
			}
			from, err := store.NewNameStore(a.db).IndexOf(args[0])
			if err != nil {
				return err
			}

			j, err := engine.Closest(from, choices.History())
			if errors.Is(err, recommend.ErrExhausted) {
				fmt.Fprintln(cmd.OutOrStdout(), "every name has been rated")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), names[j])
			return nil
		},
	}
}
