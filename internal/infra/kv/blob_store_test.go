package kv

import (
	"context"
	"testing"

	"sapa/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore_RoundTrip(t *testing.T) {
	store := NewBlobStore(OpenMemoryBucket())
	ctx := context.Background()

	// Missing key
	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	// Write then read back
	err = store.Set(ctx, "snapshot", []byte(`[{"id":"1"}]`))
	require.NoError(t, err)

	data, err := store.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), data)

	// Overwrite replaces wholesale
	err = store.Set(ctx, "snapshot", []byte(`[]`))
	require.NoError(t, err)

	data, err = store.Get(ctx, "snapshot")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), data)
}

func TestBlobStore_DeleteIsIdempotent(t *testing.T) {
	store := NewBlobStore(OpenMemoryBucket())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", []byte("value")))
	require.NoError(t, store.Delete(ctx, "key"))

	_, err := store.Get(ctx, "key")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	// Deleting a missing key is not an error
	assert.NoError(t, store.Delete(ctx, "key"))
}

func TestFileBucket_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	bucket, err := OpenFileBucket(dir)
	require.NoError(t, err)

	store := NewBlobStore(bucket)
	require.NoError(t, store.Set(ctx, "profiles", []byte(`["a","b"]`)))
	require.NoError(t, bucket.Close())

	// Reopen the same directory, the snapshot must still be there
	reopened, err := OpenFileBucket(dir)
	require.NoError(t, err)
	defer reopened.Close()

	data, err := NewBlobStore(reopened).Get(ctx, "profiles")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a","b"]`), data)
}
