package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/trknhr/namesake/internal/graph"
)

type benchResult struct {
	Workers int
	Elapsed time.Duration
	store   *graph.Store
}

func newBenchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Time the graph build with one worker and with the configured pool",
		Long: `Build the distance graph twice, with a single worker and with the
configured pool size, print both timings and check that the two graphs are
identical.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, _, err := a.loadNames()
			if err != nil {
				return err
			}

			pool := a.cfg.Graph.Workers
			if pool <= 0 {
				pool = runtime.NumCPU()
			}

			var results []benchResult
			for _, workers := range []int{1, pool} {
				s := graph.NewStore(len(names))
				start := time.Now()
				if err := (&graph.Builder{Workers: workers}).Fill(s, names); err != nil {
					return err
				}
				results = append(results, benchResult{Workers: workers, Elapsed: time.Since(start), store: s})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d names, %d pairs\n", len(names), len(names)*(len(names)-1)/2)
			for _, r := range results {
				fmt.Fprintf(out, "workers=%-3d %s\n", r.Workers, r.Elapsed.Round(time.Microsecond))
			}

			if i, j := sameGraph(results[0].store, results[1].store); i >= 0 {
				return fmt.Errorf("graphs differ at (%d,%d)", i, j)
			}
			fmt.Fprintln(out, "graphs identical")
			return nil
		},
	}
}

// sameGraph returns (-1,-1) when both stores hold the same distances, or the
// first differing pair.
func sameGraph(x, y *graph.Store) (int, int) {
	for i := 0; i < x.Len(); i++ {
		for j := i + 1; j < x.Len(); j++ {
			if x.Get(i, j) != y.Get(i, j) {
				return i, j
			}
		}
	}
	return -1, -1
}
