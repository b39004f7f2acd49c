package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "planit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	doc := []byte(`{"currency":{"code":"USD"}}`)
	require.NoError(t, store.Save(ctx, KeySettings, doc))

	got, err := store.Load(ctx, KeySettings)
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestSQLiteStoreLoadAbsent(t *testing.T) {
	store := newTestSQLiteStore(t)

	_, err := store.Load(context.Background(), KeyTransactions)
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestSQLiteStoreUpsert(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyGoals, []byte(`[]`)))
	require.NoError(t, store.Save(ctx, KeyGoals, []byte(`[{"id":"g1"}]`)))

	got, err := store.Load(ctx, KeyGoals)
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"g1"}]`), got)
}
