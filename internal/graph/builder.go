package graph

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/trknhr/namesake/internal/distance"
	"github.com/trknhr/namesake/internal/logger"
)

// Builder fills a Store with a pool of workers. Each worker pulls a row
// index from a shared queue and computes the whole row; the calling goroutine
// installs finished rows as they arrive.
type Builder struct {
	// Workers is the pool size. Zero means runtime.NumCPU().
	Workers int

	// OnProgress is called after each installed row.
	OnProgress func(done, total int)

	// Distance defaults to distance.Between.
	Distance func(a, b string) distance.Distance
}

type rowResult struct {
	index  int
	values []distance.Distance
}

func (b *Builder) Fill(s *Store, names []string) error {
	if s.filled {
		return ErrAlreadyFilled
	}
	n := len(names)
	if n == 0 {
		return ErrEmpty
	}
	if n != len(s.rows) {
		return fmt.Errorf("%w: %d names for %d slots", ErrCapacityMismatch, n, len(s.rows))
	}

	dist := b.Distance
	if dist == nil {
		dist = distance.Between
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	total := n - 1
	workers = max(1, min(workers, total))

	logger.Debug("building graph: %d names, %d pairs, %d workers", n, n*(n-1)/2, workers)
	start := time.Now()

	rows := make([][]distance.Distance, n)
	rows[n-1] = []distance.Distance{}

	work := make(chan int)
	results := make(chan rowResult, workers)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		defer close(work)
		for i := 0; i < total; i++ {
			select {
			case work <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range work {
				values, err := computeRow(i, names, dist)
				if err != nil {
					return err
				}
				select {
				case results <- rowResult{index: i, values: values}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(results)
	}()

	done := 0
	for r := range results {
		rows[r.index] = r.values
		done++
		if b.OnProgress != nil {
			b.OnProgress(done, total)
		}
	}
	if err := <-waitErr; err != nil {
		logger.Error("graph build aborted after %d/%d rows: %v", done, total, err)
		return err
	}
	if done != total {
		return fmt.Errorf("graph: received %d of %d rows", done, total)
	}

	s.rows = rows
	s.filled = true
	logger.Debug("graph built in %s", time.Since(start))
	return nil
}

func computeRow(i int, names []string, dist func(a, b string) distance.Distance) (values []distance.Distance, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("graph: row %d: %v", i, r)
		}
	}()

	values = make([]distance.Distance, 0, len(names)-i-1)
	for j := i + 1; j < len(names); j++ {
		values = append(values, dist(names[i], names[j]))
	}
	return values, nil
}
