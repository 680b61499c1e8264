package checks

import (
	"context"
	"strings"

	"iplist-automanage/core/storage"
	"iplist-automanage/feature/iplist"

	"github.com/minio/minio-go/v7"
)

// CheckExports returns the bucket input references whose object is missing.
// Local path references are not checked.
func CheckExports(ctx context.Context, client storage.Client, bucket string, refs []string) ([]string, error) {
	var missing []string

	if err := requireBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	for _, ref := range refs {
		key, ok := strings.CutPrefix(ref, iplist.BucketRefPrefix)
		if !ok {
			continue
		}
		key = strings.TrimPrefix(key, "/")

		opts := minio.ListObjectsOptions{
			Prefix:    key,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == key {
				found = true
			}
			break
		}

		if !found {
			missing = append(missing, key)
		}
	}

	return missing, nil
}
