package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestGetResponse_Missing(t *testing.T) {
	db := openTestDB(t)

	r, err := db.GetResponse(context.Background(), "https://api.github.com/nope")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestPutResponse_RoundTripAndReplace(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	url := "https://api.github.com/repos/o/r/contents/README.md"
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, db.PutResponse(ctx, &CachedResponse{
		URL: url, ETag: `"v1"`, Status: 200, Body: []byte("one"), FetchedAt: at,
	}))
	require.NoError(t, db.PutResponse(ctx, &CachedResponse{
		URL: url, ETag: `"v2"`, LastModified: "Mon, 02 Mar 2026 00:00:00 GMT", Status: 200, Body: []byte("two"), FetchedAt: at,
	}))

	got, err := db.GetResponse(ctx, url)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `"v2"`, got.ETag)
	assert.Equal(t, "Mon, 02 Mar 2026 00:00:00 GMT", got.LastModified)
	assert.Equal(t, []byte("two"), got.Body)
	assert.True(t, got.FetchedAt.Equal(at))

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(3), stats.Bytes)
}

func TestPrune_RemovesOldEntries(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, db.PutResponse(ctx, &CachedResponse{URL: "old", Status: 200, FetchedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, db.PutResponse(ctx, &CachedResponse{URL: "new", Status: 200, FetchedAt: now}))

	n, err := db.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	old, err := db.GetResponse(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)

	fresh, err := db.GetResponse(ctx, "new")
	require.NoError(t, err)
	assert.NotNil(t, fresh)
}

func TestTouch_RefreshesFetchedAt(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, db.PutResponse(ctx, &CachedResponse{URL: "u", Status: 200, FetchedAt: old}))
	require.NoError(t, db.Touch(ctx, "u", later))

	got, err := db.GetResponse(ctx, "u")
	require.NoError(t, err)
	assert.True(t, got.FetchedAt.Equal(later))
}

func TestClear(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.PutResponse(ctx, &CachedResponse{URL: "a", Status: 200}))
	require.NoError(t, db.PutResponse(ctx, &CachedResponse{URL: "b", Status: 200}))

	n, err := db.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Entries)
	assert.True(t, stats.Oldest.IsZero())
}

func TestOpen_CreatesFileAndMigratesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.PutResponse(context.Background(), &CachedResponse{URL: "keep", Status: 200}))
	require.NoError(t, db.Close())

	// Reopening must not drop existing data.
	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.GetResponse(context.Background(), "keep")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
