package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/explain-go/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "explain_history.sqlite")
	store, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func entryAt(input string, at time.Time) domain.HistoryEntry {
	return domain.HistoryEntry{
		InputText:        input,
		OutputText:       "answer to " + input,
		ModelName:        "gpt-4o-mini",
		PromptTokens:     3,
		CompletionTokens: 4,
		TotalTokens:      7,
		RecordedAt:       at,
	}
}

func TestSQLiteStoreCreatesDirectory(t *testing.T) {
	store := newTestStore(t)

	info, err := os.Stat(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSQLiteStoreLatestOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, entryAt("first", base)))
	require.NoError(t, store.Add(ctx, entryAt("third", base.Add(2*time.Minute))))
	require.NoError(t, store.Add(ctx, entryAt("second", base.Add(time.Minute))))

	entries, err := store.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].InputText)
	assert.Equal(t, "second", entries[1].InputText)

	assert.Equal(t, "answer to third", entries[0].OutputText)
	assert.Equal(t, "gpt-4o-mini", entries[0].ModelName)
	assert.Equal(t, 7, entries[0].TotalTokens)
	assert.True(t, base.Add(2*time.Minute).Equal(entries[0].RecordedAt))
}

func TestSQLiteStoreTiesBreakOnInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, entryAt("older", at)))
	require.NoError(t, store.Add(ctx, entryAt("newer", at)))

	entries, err := store.Latest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "newer", entries[0].InputText)
}

func TestSQLiteStoreSubsecondOrdering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Add(ctx, entryAt("later", at.Add(500*time.Millisecond))))
	require.NoError(t, store.Add(ctx, entryAt("earlier", at.Add(90*time.Millisecond))))

	entries, err := store.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "later", entries[0].InputText)
}

func TestSQLiteStoreNonPositiveLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Add(ctx, entryAt("only", time.Now())))

	for _, limit := range []int{0, -5} {
		entries, err := store.Latest(ctx, limit)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	}
}

func TestSQLiteStoreRejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	invalid := entryAt("", time.Now())
	assert.Error(t, store.Add(ctx, invalid))

	negative := entryAt("q", time.Now())
	negative.PromptTokens = -1
	assert.Error(t, store.Add(ctx, negative))

	entries, err := store.Latest(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteStoreClear(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Add(ctx, entryAt("a", time.Now())))
	require.NoError(t, store.Add(ctx, entryAt("b", time.Now())))

	require.NoError(t, store.Clear(ctx))

	entries, err := store.Latest(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteStoreReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.sqlite")

	first, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Add(ctx, entryAt("persisted", time.Now())))
	require.NoError(t, first.Close())

	second, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer second.Close()

	entries, err := second.Latest(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "persisted", entries[0].InputText)
}

func TestNewSQLiteStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("", nil)
	assert.Error(t, err)
}
