package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/trknhr/namesake/internal/recommend"
	"github.com/trknhr/namesake/internal/store"
	"github.com/trknhr/namesake/internal/tui"
)

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "namesake",
		Short:         "Find a name by liking and disliking suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			names, weights, err := a.loadNames()
			if err != nil {
				return err
			}
			fb := store.NewSQLFeedbackStore(a.db)
			choices, err := fb.Load(names)
			if err != nil {
				return fmt.Errorf("failed to load previous choices: %w", err)
			}

			session := tui.NewSession(names, choices.History(), fb,
				func(onProgress func(done, total int)) (*recommend.Engine, error) {
					return a.buildEngine(names, weights, onProgress)
				})
			p := tea.NewProgram(session, tea.WithOutput(os.Stderr))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run TUI: %w", err)
			}
			return session.Err()
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (default: $NAMESAKE_CONFIG or <config dir>/namesake/config.yaml)")
	f.StringVar(&a.flags.db, "db", "", "database path")
	f.StringVar(&a.flags.source, "names", "", "names file to import when it changed")
	f.IntVar(&a.flags.workers, "workers", 0, "graph build workers (0 = one per CPU)")
	f.Float64Var(&a.flags.commonness, "commonness", 0, "how much popular names are favored, in [0,1]")
	f.StringVar(&a.flags.logLevel, "log-level", "", "debug, info, warn, error or none")
	f.StringVar(&a.flags.logFile, "log-file", "", "append JSON logs to this file")

	cmd.AddCommand(
		newImportCmd(a),
		newTopCmd(a),
		newClosestCmd(a),
		newHistoryCmd(a),
		newResetCmd(a),
		newBenchCmd(a),
	)
	return cmd
}

func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
