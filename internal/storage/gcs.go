// Package storage wraps the Google Cloud Storage client used for avatar images.
package storage

import (
	"context"
	"fmt"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewClient builds a GCS client. When credentialsJSON is non-empty it is used
// as the service-account key; otherwise Application Default Credentials apply.
// The client is safe for concurrent use and should be created once per process.
func NewClient(ctx context.Context, credentialsJSON string) (*gcs.Client, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return client, nil
}

// Bucket writes objects into a single GCS bucket.
type Bucket struct {
	handle *gcs.BucketHandle
}

// NewBucket returns a Bucket for the named bucket. No network call is made.
func NewBucket(client *gcs.Client, name string) *Bucket {
	return &Bucket{handle: client.Bucket(name)}
}

// Put writes data to key in a single request, replacing any existing object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte, contentType, cacheControl string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := b.handle.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = cacheControl
	// ChunkSize 0 disables resumable uploads; avatars are small.
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		// Cancelling before Close aborts the upload instead of committing a partial object.
		cancel()
		_ = w.Close()
		return fmt.Errorf("storage.Bucket.Put: write %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("storage.Bucket.Put: close %q: %w", key, err)
	}
	return nil
}

// MakePublic grants allUsers read access to key.
// Fails on buckets with uniform bucket-level access enabled.
func (b *Bucket) MakePublic(ctx context.Context, key string) error {
	if err := b.handle.Object(key).ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader); err != nil {
		return fmt.Errorf("storage.Bucket.MakePublic: %q: %w", key, err)
	}
	return nil
}
