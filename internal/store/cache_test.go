package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmorel/habitude/internal/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitude.json")
	fc, err := NewFileCache(path)
	require.NoError(t, err)

	completedAt := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	items := []*Item{
		{ID: uuid.New(), Title: "Buy milk", Completed: true, CreatedAt: completedAt.Add(-time.Hour), CompletedAt: &completedAt, Status: StatusLocalOnly},
		{ID: uuid.New(), Title: "Walk the dog", CreatedAt: completedAt},
	}
	days := []ledger.Day{"2026-08-29", "2026-08-30"}
	require.NoError(t, fc.SaveTodos(items))
	require.NoError(t, fc.SaveDays(days))

	// A fresh cache against the same file sees both collections
	reopened, err := NewFileCache(path)
	require.NoError(t, err)
	gotItems, err := reopened.LoadTodos()
	require.NoError(t, err)
	require.Len(t, gotItems, 2)
	assert.Equal(t, items[0].ID, gotItems[0].ID)
	assert.Equal(t, StatusLocalOnly, gotItems[0].Status)
	assert.True(t, gotItems[0].Completed)
	require.NotNil(t, gotItems[0].CompletedAt)
	gotDays, err := reopened.LoadDays()
	require.NoError(t, err)
	assert.Equal(t, days, gotDays)
}

func TestFileCacheSavingOneSlotKeepsTheOther(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitude.json")
	fc, err := NewFileCache(path)
	require.NoError(t, err)
	require.NoError(t, fc.SaveDays([]ledger.Day{"2026-08-30"}))
	require.NoError(t, fc.SaveTodos([]*Item{{ID: uuid.New(), Title: "Buy milk"}}))

	reopened, err := NewFileCache(path)
	require.NoError(t, err)
	days, err := reopened.LoadDays()
	require.NoError(t, err)
	assert.Equal(t, []ledger.Day{"2026-08-30"}, days)
	items, err := reopened.LoadTodos()
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestFileCacheMissingFileIsEmpty(t *testing.T) {
	fc, err := NewFileCache(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	items, err := fc.LoadTodos()
	require.NoError(t, err)
	assert.Empty(t, items)
	days, err := fc.LoadDays()
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestFileCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habitude.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := NewFileCache(path)
	assert.Error(t, err)
}

func TestFileCacheLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	fc, err := NewFileCache(filepath.Join(dir, "habitude.json"))
	require.NoError(t, err)
	require.NoError(t, fc.SaveTodos(nil))
	require.NoError(t, fc.SaveDays(nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "habitude.json", entries[0].Name())
}
