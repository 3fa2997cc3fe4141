// Package kv provides KeyValueStore implementations backed by blob
// buckets (local files, in-memory) and redis.
package kv

import (
	"context"
	"os"

	"sapa/internal/domain/repository"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"
)

// blobStore adapts a gocloud blob bucket to the KeyValueStore contract.
// Each key holds one whole-collection snapshot.
type blobStore struct {
	bucket *blob.Bucket
}

// NewBlobStore wraps an opened bucket as a KeyValueStore.
func NewBlobStore(bucket *blob.Bucket) repository.KeyValueStore {
	return &blobStore{bucket: bucket}
}

// OpenFileBucket opens (creating if needed) a directory-backed bucket.
// This is the device-local default.
func OpenFileBucket(path string) (*blob.Bucket, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create storage directory %q", path)
	}

	bucket, err := fileblob.OpenBucket(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open file bucket at %q", path)
	}

	return bucket, nil
}

// OpenMemoryBucket opens an ephemeral in-memory bucket. Used by tests
// and by the "memory" storage provider.
func OpenMemoryBucket() *blob.Bucket {
	return memblob.OpenBucket(nil)
}

// Get returns the snapshot stored under key.
func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, repository.ErrKeyNotFound
		}

		return nil, errors.Wrapf(repository.ErrStorageUnavailable, "read %q: %v", key, err)
	}

	return data, nil
}

// Set replaces the snapshot stored under key.
func (s *blobStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.bucket.WriteAll(ctx, key, value, nil); err != nil {
		return errors.Wrapf(repository.ErrStorageUnavailable, "write %q: %v", key, err)
	}

	return nil
}

// Delete removes the snapshot stored under key. Missing keys are fine.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(repository.ErrStorageUnavailable, "delete %q: %v", key, err)
	}

	return nil
}
