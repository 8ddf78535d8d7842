package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/phrazzld/emory/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, path string) *KVStore {
	t.Helper()

	s, err := Open(context.Background(), path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "  ", nil)
	assert.Error(t, err)
}

func TestKVStore(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, filepath.Join(t.TempDir(), "emory.db"))

	_, err := s.Get(ctx, "ranking-emory")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, "ranking-emory", []byte(`[]`)))
	got, err := s.Get(ctx, "ranking-emory")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	require.NoError(t, s.Put(ctx, "ranking-emory", []byte(`[{"name":"Mark","time":50,"errors":3}]`)))
	got, err = s.Get(ctx, "ranking-emory")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Mark","time":50,"errors":3}]`, string(got))

	assert.ErrorIs(t, s.Put(ctx, "", []byte("x")), store.ErrInvalidKey)
}

func TestKVStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "emory.db")

	first, err := Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "k", []byte("v")))
	require.NoError(t, first.Close())

	// Reopening must not re-run or fail on already applied migrations.
	second := openTestStore(t, path)
	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestKVStoreClosed(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "emory.db"), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = s.Get(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
