package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/trknhr/namesake/internal/config"
	"github.com/trknhr/namesake/internal/graph"
	"github.com/trknhr/namesake/internal/logger"
	"github.com/trknhr/namesake/internal/recommend"
	"github.com/trknhr/namesake/internal/source"
	"github.com/trknhr/namesake/internal/store"
	"github.com/trknhr/namesake/internal/worker"
)

var errNoNames = errors.New("no names imported yet: run `namesake import <file>` or pass --names")

// app carries what every command needs once flags are parsed.
type app struct {
	configPath string
	flags      struct {
		db         string
		source     string
		workers    int
		commonness float64
		logLevel   string
		logFile    string
	}

	cfg *config.Config
	db  *sql.DB
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Log.File, cfg.Log.Level); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := openDB(cfg.DB.Path)
	if err != nil {
		return err
	}
	if err := store.Migrate(db); err != nil {
		db.Close()
		return err
	}
	a.db = db
	return nil
}

func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flag(name)
		return f != nil && f.Changed
	}
	if changed("db") {
		cfg.DB.Path = a.flags.db
	}
	if changed("names") {
		cfg.Source.Path = a.flags.source
	}
	if changed("workers") {
		cfg.Graph.Workers = a.flags.workers
	}
	if changed("commonness") {
		cfg.Recommend.Commonness = a.flags.commonness
	}
	if changed("log-level") {
		cfg.Log.Level = a.flags.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = a.flags.logFile
	}
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database dir: %w", err)
	}
	db, err := sql.Open("libsql", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadNames imports the configured names file when it changed, then returns
// the names list stored in the database.
func (a *app) loadNames() ([]string, []float64, error) {
	names := store.NewNameStore(a.db)
	if a.cfg.Source.Path != "" {
		w := worker.NewNamesSyncWorker(names, store.NewMetaStore(a.db), source.NewFileLoader(a.cfg.Source.Path), false)
		if err := worker.RunSyncWorkers(w); err != nil {
			return nil, nil, err
		}
	}

	list, weights, err := names.LoadNames()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load names: %w", err)
	}
	if len(list) == 0 {
		return nil, nil, errNoNames
	}
	return list, weights, nil
}

func (a *app) buildEngine(names []string, weights []float64, onProgress func(done, total int)) (*recommend.Engine, error) {
	s := graph.NewStore(len(names))
	b := &graph.Builder{Workers: a.cfg.Graph.Workers, OnProgress: onProgress}
	if err := b.Fill(s, names); err != nil {
		return nil, err
	}

	opts := []recommend.Option{
		recommend.WithCommonness(a.cfg.Recommend.Commonness),
		recommend.WithSeed(a.cfg.Recommend.Seed),
	}
	if weights != nil {
		opts = append(opts, recommend.WithWeights(weights))
	}
	return recommend.New(s, opts...)
}

// session loads names, builds the engine and replays stored feedback.
func (a *app) session() ([]string, *recommend.Engine, store.Choices, error) {
	names, weights, err := a.loadNames()
	if err != nil {
		return nil, nil, nil, err
	}
	engine, err := a.buildEngine(names, weights, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	choices, err := store.NewSQLFeedbackStore(a.db).Load(names)
	if err != nil {
		return nil, nil, nil, err
	}
	return names, engine, choices, nil
}
