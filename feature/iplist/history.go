package iplist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"iplist-automanage/core/reconcile"
	"iplist-automanage/feature/iplist/models"

	"gorm.io/gorm"
)

var (
	// ErrHistoryDisabled is returned when no history database is configured.
	ErrHistoryDisabled = errors.New("run history is disabled")
	// ErrRunNotFound is returned for an unknown run id.
	ErrRunNotFound = errors.New("run not found")
)

// DefaultHistoryLimit bounds run listings without an explicit limit.
const DefaultHistoryLimit = 20

// History stores reconciliation runs and their change events.
type History struct {
	db *gorm.DB
}

// NewHistory returns a history backed by db. A nil db disables it.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Enabled reports whether a database is configured.
func (h *History) Enabled() bool {
	return h != nil && h.db != nil
}

// Migrate creates or updates the history tables.
func (h *History) Migrate(ctx context.Context) error {
	if !h.Enabled() {
		return ErrHistoryDisabled
	}
	if err := h.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// Record stores a run and its events in one transaction.
func (h *History) Record(ctx context.Context, run *models.Run, events []reconcile.ChangeEvent) error {
	if !h.Enabled() {
		return ErrHistoryDisabled
	}

	rows := make([]models.RunEvent, 0, len(events))
	for i, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode event %d: %w", i, err)
		}
		rows = append(rows, models.RunEvent{
			RunID:    run.RunID,
			Seq:      i + 1,
			Kind:     string(e.Kind),
			ListName: e.Name,
			Payload:  string(payload),
		})
	}

	return h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Events").Create(run).Error; err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&rows, 200).Error; err != nil {
			return fmt.Errorf("failed to record run events: %w", err)
		}
		return nil
	})
}

// List returns the most recent runs first, without their events.
func (h *History) List(ctx context.Context, limit int) ([]models.Run, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var runs []models.Run
	if err := h.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its events in order.
func (h *History) Get(ctx context.Context, runID string) (*models.Run, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}

	var run models.Run
	err := h.db.WithContext(ctx).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("seq ASC") }).
		Where("run_id = ?", runID).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", runID, err)
	}
	return &run, nil
}
