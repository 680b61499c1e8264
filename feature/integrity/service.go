package integrity

import (
	"context"
	"errors"

	"iplist-automanage/core/storage"
	"iplist-automanage/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	db     *gorm.DB
	inputs []string
}

// NewService creates a new integrity service.
// inputs are the configured export references checked by CheckExports.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB, inputs []string) *Service {
	return &Service{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		logger: logger,
		db:     db,
		inputs: inputs,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the bucket if needed and then the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	created, err := checks.EnsureBucket(ctx, s.client, s.bucket, s.region, s.logger)
	if err != nil {
		return err
	}
	if created {
		missing = checks.RequiredFolders
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckExports returns the configured bucket inputs that are missing.
func (s *Service) CheckExports(ctx context.Context) ([]string, error) {
	return checks.CheckExports(ctx, s.client, s.bucket, s.inputs)
}

// CheckSchema compares the history tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// FixSchema migrates the history tables.
func (s *Service) FixSchema() error {
	return checks.FixSchema(s.db)
}

// IsBucketMissing reports whether err comes from a missing bucket.
func IsBucketMissing(err error) bool {
	return errors.Is(err, checks.ErrBucketMissing)
}
