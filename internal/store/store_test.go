package store_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/trknhr/namesake/internal/recommend"
	"github.com/trknhr/namesake/internal/source"
	"github.com/trknhr/namesake/internal/store"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, store.Migrate(db))
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, store.Migrate(db))

	for _, table := range []string{"names", "feedback", "meta"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s to exist: %v", table, err)
		}
	}
}

func TestNameStore_ReplaceAndLoad(t *testing.T) {
	db := setupTestDB(t)
	names := store.NewNameStore(db)

	require.NoError(t, names.ReplaceNames([]source.Entry{{Name: "John"}, {Name: "Johnny"}, {Name: "Bob"}}))
	got, weights, err := names.LoadNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Johnny", "Bob"}, got)
	assert.Nil(t, weights)

	require.NoError(t, names.ReplaceNames([]source.Entry{{Name: "Jade", Weight: 1}, {Name: "Ambre", Weight: 0.25}}))
	got, weights, err = names.LoadNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Jade", "Ambre"}, got)
	assert.Equal(t, []float64{1, 0.25}, weights)

	n, err := names.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	i, err := names.IndexOf("Ambre")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = names.IndexOf("John")
	assert.ErrorIs(t, err, store.ErrUnknownName)
}

func TestFeedbackStore_SaveLoadReset(t *testing.T) {
	db := setupTestDB(t)
	fb := store.NewSQLFeedbackStore(db)

	require.NoError(t, fb.Save("Bob", false))
	require.NoError(t, fb.Save("Gone", true))
	require.NoError(t, fb.Save("John", true))
	require.NoError(t, fb.Save("Bob", true))

	choices, err := fb.Load([]string{"John", "Johnny", "Bob"})
	require.NoError(t, err)
	assert.Equal(t, store.Choices{
		{Name: "Bob", Index: 2, Liked: false},
		{Name: "John", Index: 0, Liked: true},
		{Name: "Bob", Index: 2, Liked: true},
	}, choices)
	assert.Equal(t, recommend.History{0: true, 2: true}, choices.History())

	require.NoError(t, fb.Reset())
	choices, err = fb.Load([]string{"John"})
	require.NoError(t, err)
	assert.Empty(t, choices)
}

func TestMetaStore_TouchMetaAndNeedsReload(t *testing.T) {
	db := setupTestDB(t)
	meta := store.NewMetaStore(db)

	tmpfile := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(tmpfile, []byte("John\n"), 0644))

	assert.True(t, meta.NeedsReload("names", tmpfile))
	require.NoError(t, meta.TouchMeta("names", tmpfile))
	assert.False(t, meta.NeedsReload("names", tmpfile))

	other := filepath.Join(t.TempDir(), "other.txt")
	require.NoError(t, os.WriteFile(other, []byte("Bob\n"), 0644))
	assert.True(t, meta.NeedsReload("names", other))

	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(tmpfile, future, future))
	assert.True(t, meta.NeedsReload("names", tmpfile))
}
