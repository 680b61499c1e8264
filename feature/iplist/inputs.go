package iplist

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
)

// BucketRefPrefix marks an input stored in the configured bucket.
const BucketRefPrefix = "bucket:"

// Folders of the bucket layout.
const (
	ExportsFolder = "exports"
	RunsFolder    = "runs"
)

// Open opens an input reference: "bucket:<key>" reads an object of the
// configured bucket, anything else is a local path.
func (s *Service) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if key, ok := strings.CutPrefix(ref, BucketRefPrefix); ok {
		key = strings.TrimPrefix(key, "/")
		if key == "" {
			return nil, fmt.Errorf("empty bucket reference")
		}
		if s.client == nil {
			return nil, fmt.Errorf("storage is not configured for %s", ref)
		}
		reader, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s: %w", key, err)
		}
		return reader, nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", ref, err)
	}
	return f, nil
}
