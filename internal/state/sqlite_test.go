package state

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmod-labs/qmod/internal/testutil"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(testutil.NewTestLogger(t))
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())
	return store
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".qmod", "state.db")
	store := NewSQLiteStore(nil)
	require.NoError(t, store.Open(path))
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate())
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := openStore(t)

	require.NoError(t, store.Migrate())

	version, err := store.GetMigrationVersion()
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
}

func TestCreateAndGetRun(t *testing.T) {
	store := openStore(t)

	run, err := store.CreateRun("prune.by_mask", []string{"mask", "wire"}, "model.json")
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, RunStatusRunning, run.Status)
	assert.Equal(t, "mask wire", run.Args)

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "prune.by_mask", got.Macro)
	assert.Equal(t, "model.json", got.ModelPath)
	assert.Nil(t, got.CompletedAt)
	assert.Empty(t, got.Error)
}

func TestGetRunNotFound(t *testing.T) {
	store := openStore(t)

	_, err := store.GetRun("no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run not found")
}

func TestCompleteRun(t *testing.T) {
	store := openStore(t)

	run, err := store.CreateRun("params.set_pair", nil, "")
	require.NoError(t, err)

	require.NoError(t, store.CompleteRun(run.ID, RunStatusFailed, "boom"))

	got, err := store.GetRun(run.ID)
	require.NoError(t, err)
	assert.Equal(t, RunStatusFailed, got.Status)
	assert.Equal(t, "boom", got.Error)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, got.CompletedAt.Before(got.StartedAt))
}

func TestGetLatestRunEmpty(t *testing.T) {
	store := openStore(t)

	run, err := store.GetLatestRun()
	require.NoError(t, err)
	assert.Nil(t, run)
}

func TestListRuns(t *testing.T) {
	store := openStore(t)

	var ids []string
	for _, macro := range []string{"a.one", "b.two", "c.three"} {
		run, err := store.CreateRun(macro, nil, "")
		require.NoError(t, err)
		ids = append(ids, run.ID)
		require.NoError(t, store.CompleteRun(run.ID, RunStatusCompleted, ""))
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	latest, err := store.GetLatestRun()
	require.NoError(t, err)
	assert.Equal(t, runs[0].ID, latest.ID)
	assert.Contains(t, ids, latest.ID)
}

func TestOperationsRequireOpen(t *testing.T) {
	store := NewSQLiteStore(nil)

	_, err := store.CreateRun("x.y", nil, "")
	assert.ErrorContains(t, err, "database not opened")
	_, err = store.ListRuns(1)
	assert.ErrorContains(t, err, "database not opened")
	assert.ErrorContains(t, store.Migrate(), "database not opened")
	_, err = store.GetMigrationVersion()
	assert.ErrorContains(t, err, "database not opened")
}
