package cmd

import (
	"fmt"

	"iplist-automanage/core/config"
	"iplist-automanage/core/database"
	"iplist-automanage/core/logger"
	"iplist-automanage/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// cliEnv bundles what every command needs.
type cliEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*cliEnv, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &cliEnv{cfg: cfg, logger: l}, nil
}

// storageClient creates the storage client, or returns nil when it cannot.
func (r *cliEnv) storageClient() storage.Client {
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		r.logger.Warn("Storage unavailable", zap.Error(err))
		return nil
	}
	return client
}

// historyDB connects to the history database. When required is false a
// failure is logged and nil is returned.
func (r *cliEnv) historyDB(required bool) (*gorm.DB, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		if required {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		r.logger.Warn("Optional database connection failed", zap.Error(err))
		return nil, nil
	}
	return db, nil
}
