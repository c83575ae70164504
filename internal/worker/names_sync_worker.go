package worker

import (
	"fmt"

	"github.com/trknhr/namesake/internal/logger"
	"github.com/trknhr/namesake/internal/source"
	"github.com/trknhr/namesake/internal/store"
)

// NamesSyncWorker imports a names file into the database.
type NamesSyncWorker struct {
	names  *store.NameStore
	meta   *store.MetaStore
	loader source.Loader
	force  bool
}

func NewNamesSyncWorker(names *store.NameStore, meta *store.MetaStore, loader source.Loader, force bool) *NamesSyncWorker {
	return &NamesSyncWorker{names: names, meta: meta, loader: loader, force: force}
}

func (w *NamesSyncWorker) Key() string  { return w.loader.Key() }
func (w *NamesSyncWorker) Path() string { return w.loader.Path() }
func (w *NamesSyncWorker) NeedsReload() bool {
	return w.force || w.meta.NeedsReload(w.Key(), w.Path())
}

func (w *NamesSyncWorker) Sync() error {
	entries, err := w.loader.Load()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no names found in %s", w.Path())
	}
	if err := w.names.ReplaceNames(entries); err != nil {
		return err
	}
	logger.Debug("imported %d names (weighted=%v)", len(entries), source.HasWeights(entries))
	return w.meta.TouchMeta(w.Key(), w.Path())
}
