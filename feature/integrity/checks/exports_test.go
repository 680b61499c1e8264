package checks

import (
	"context"
	"testing"

	"iplist-automanage/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckExports(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "iplists").Return(true, nil)

	present := make(chan minio.ObjectInfo, 1)
	present <- minio.ObjectInfo{Key: "exports/traffic.csv"}
	close(present)
	mockClient.On("ListObjects", mock.Anything, "iplists", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "exports/traffic.csv"
	})).Return((<-chan minio.ObjectInfo)(present))

	// A prefix match on another key does not count.
	other := make(chan minio.ObjectInfo, 1)
	other <- minio.ObjectInfo{Key: "exports/iplists.csv.bak"}
	close(other)
	mockClient.On("ListObjects", mock.Anything, "iplists", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "exports/iplists.csv"
	})).Return((<-chan minio.ObjectInfo)(other))

	missing, err := CheckExports(context.Background(), mockClient, "iplists", []string{
		"bucket:exports/traffic.csv",
		"bucket:/exports/iplists.csv",
		"/local/evidence.csv",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"exports/iplists.csv"}, missing)
	mockClient.AssertNumberOfCalls(t, "ListObjects", 2)
}

func TestCheckExports_BucketMissing(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "iplists").Return(false, nil)

	_, err := CheckExports(context.Background(), mockClient, "iplists", nil)
	assert.ErrorIs(t, err, ErrBucketMissing)
}
