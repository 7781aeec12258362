package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "balances.json"))
}

func TestFileStore_UntouchedUserHasZeroBalance(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	balance, err := store.GetBalance(ctx, "never-seen")

	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestFileStore_UpdateThenGet(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	newBalance, err := store.UpdateBalance(ctx, "user-1", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), newBalance)

	// A negative delta may drive the balance below zero; the store applies
	// no floor.
	newBalance, err = store.UpdateBalance(ctx, "user-1", -8)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), newBalance)

	balance, err := store.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), balance)
}

func TestFileStore_LoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	_, err := store.UpdateBalance(ctx, "user-1", 3)
	require.NoError(t, err)
	_, err = store.UpdateBalance(ctx, "user-2", 7)
	require.NoError(t, err)

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]int64{"user-1": 3, "user-2": 7}, first)
}

func TestFileStore_MissingFileIsEmptyLedger(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))

	ledger, err := store.Load(ctx)

	assert.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestFileStore_CorruptFileIsTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "balances.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)

	balance, err := store.GetBalance(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	// Writing through the store replaces the corrupt snapshot.
	newBalance, err := store.UpdateBalance(ctx, "user-1", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), newBalance)
}

func TestFileStore_SnapshotFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "balances.json")
	store := NewFileStore(path)

	_, err := store.UpdateBalance(ctx, "1323511767552491570", 42)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The snapshot is a JSON object of user-ID string to integer balance,
	// indented with four spaces.
	var parsed map[string]int64
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, map[string]int64{"1323511767552491570": 42}, parsed)
	assert.Contains(t, string(data), "\n    \"1323511767552491570\": 42")
}

func TestFileStore_ReadsExistingSnapshot(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "balances.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
    "user-1": 10,
    "user-2": -2
}`), 0o644))

	store := NewFileStore(path)

	balance, err := store.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)

	balance, err = store.GetBalance(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, int64(-2), balance)
}

// Regression test for the lost-update anomaly: concurrent increments that
// race through load-modify-save must all land in the final balance.
func TestFileStore_ConcurrentUpdatesAreNotLost(t *testing.T) {
	ctx := context.Background()
	store := newTestFileStore(t)

	const workers = 20

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.UpdateBalance(ctx, "user-1", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := store.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), balance)
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "balances.json"))

	for range 5 {
		_, err := store.UpdateBalance(ctx, "user-1", 1)
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".ledger-"), "leftover temp file %s", entry.Name())
	}
}
