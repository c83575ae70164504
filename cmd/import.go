package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trknhr/namesake/internal/source"
	"github.com/trknhr/namesake/internal/store"
	"github.com/trknhr/namesake/internal/worker"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the names list with the content of a file",
		Long: `Replace the names list with a plain text file: one name per line,
optionally followed by a tab or ';' and an occurrence count. Counts become
popularity weights when every line has one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := store.NewNameStore(a.db)
			w := worker.NewNamesSyncWorker(names, store.NewMetaStore(a.db), source.NewFileLoader(args[0]), true)
			if err := worker.RunSyncWorkers(w); err != nil {
				return err
			}
			n, err := names.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d names from %s\n", n, args[0])
			return nil
		},
	}
}
