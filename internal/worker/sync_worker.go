package worker

import (
	"errors"
	"fmt"

	"github.com/trknhr/namesake/internal/logger"
)

type SyncWorker interface {
	Key() string
	Path() string
	NeedsReload() bool
	Sync() error
}

// RunSyncWorkers runs every syncer that reports stale data, in order. The
// graph is built from the synced data, so this blocks until all are done.
func RunSyncWorkers(syncers ...SyncWorker) error {
	var allErr error
	for _, s := range syncers {
		if !s.NeedsReload() {
			logger.Debug("[%s] sync skipped (up-to-date)", s.Key())
			continue
		}
		if err := s.Sync(); err != nil {
			logger.Error("[%s] sync failed: %v", s.Key(), err)
			allErr = errors.Join(allErr, fmt.Errorf("sync %s: %w", s.Key(), err))
			continue
		}
		logger.Info("[%s] sync done from %s", s.Key(), s.Path())
	}
	return allErr
}
