package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/namesake/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print stored choices, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, _, err := a.loadNames()
			if err != nil {
				return err
			}
			choices, err := store.NewSQLFeedbackStore(a.db).Load(names)
			if err != nil {
				return err
			}
			for _, c := range choices {
				mark := "-"
				if c.Liked {
					mark = "+"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, c.Name)
			}
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget every stored choice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.NewSQLFeedbackStore(a.db).Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "feedback cleared")
			return nil
		},
	}
}
