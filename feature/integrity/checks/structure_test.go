package checks

import (
	"context"
	"errors"
	"testing"

	"iplist-automanage/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "iplists")
		assert.ErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(false, errors.New("timeout"))

		_, err := CheckStructure(context.Background(), mockClient, "iplists")
		assert.ErrorContains(t, err, "timeout")
		assert.NotErrorIs(t, err, ErrBucketMissing)
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "iplists", mock.Anything).Return(emptyListing())

		missing, err := CheckStructure(context.Background(), mockClient, "iplists")
		assert.NoError(t, err)
		assert.Equal(t, []string{"exports", "runs"}, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(true, nil)

		for _, folder := range RequiredFolders {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: folder + "/"}
			close(ch)
			prefix := folder + "/"
			mockClient.On("ListObjects", mock.Anything, "iplists", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == prefix
			})).Return((<-chan minio.ObjectInfo)(ch))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "iplists")
		assert.NoError(t, err)
		assert.Len(t, missing, 0)
	})
}

func TestEnsureBucket(t *testing.T) {
	logger := zap.NewNop()

	t.Run("Exists", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(true, nil)

		created, err := EnsureBucket(context.Background(), mockClient, "iplists", "", logger)
		assert.NoError(t, err)
		assert.False(t, created)
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Created", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "iplists", minio.MakeBucketOptions{Region: "eu-west-3"}).Return(nil)

		created, err := EnsureBucket(context.Background(), mockClient, "iplists", "eu-west-3", logger)
		assert.NoError(t, err)
		assert.True(t, created)
	})

	t.Run("MakeBucketFails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "iplists").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "iplists", mock.Anything).Return(errors.New("denied"))

		_, err := EnsureBucket(context.Background(), mockClient, "iplists", "", logger)
		assert.ErrorContains(t, err, "denied")
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()
	mockClient := new(mocks.Client)

	mockClient.On("PutObject", mock.Anything, "iplists", "runs/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "iplists", logger, []string{"runs"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}
