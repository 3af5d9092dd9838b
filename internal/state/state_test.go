package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSourceHash_UnknownPathIsEmpty(t *testing.T) {
	store := openTestStore(t)

	hash, err := store.SourceHash(context.Background(), "posts/a.md")
	require.NoError(t, err)
	require.Empty(t, hash)
}

func TestSetSourceHash_Upserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSourceHash(ctx, "posts/a.md", "h1"))
	require.NoError(t, store.SetSourceHash(ctx, "posts/a.md", "h2"))

	hash, err := store.SourceHash(ctx, "posts/a.md")
	require.NoError(t, err)
	require.Equal(t, "h2", hash)
}

func TestPruneSources_DropsStaleEntries(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetSourceHash(ctx, "a.md", "h"))
	require.NoError(t, store.SetSourceHash(ctx, "b.md", "h"))

	require.NoError(t, store.PruneSources(ctx, map[string]struct{}{"a.md": {}}))

	kept, err := store.SourceHash(ctx, "a.md")
	require.NoError(t, err)
	require.Equal(t, "h", kept)

	dropped, err := store.SourceHash(ctx, "b.md")
	require.NoError(t, err)
	require.Empty(t, dropped)
}

func TestRecordBuild_And_LastBuild(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	last, err := store.LastBuild(ctx)
	require.NoError(t, err)
	require.Nil(t, last)

	now := time.Now().Truncate(time.Second)
	require.NoError(t, store.RecordBuild(ctx, BuildRecord{
		ID: "one", StartedAt: now.Add(-2 * time.Minute), FinishedAt: now.Add(-2 * time.Minute), Posts: 2, Errors: 0,
	}))
	require.NoError(t, store.RecordBuild(ctx, BuildRecord{
		ID: "two", StartedAt: now, FinishedAt: now, Posts: 3, Errors: 1,
	}))

	last, err = store.LastBuild(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, "two", last.ID)
	require.Equal(t, 3, last.Posts)
	require.Equal(t, 1, last.Errors)
}

func TestHashContent_Deterministic(t *testing.T) {
	a := HashContent([]byte("body"))
	b := HashContent([]byte("body"))
	c := HashContent([]byte("other"))
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
	require.Len(t, a, 64)
}
