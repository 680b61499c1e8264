package iplist

import (
	"context"
	"fmt"

	"iplist-automanage/core/reconcile"
)

// FileApplier hands a plan to the policy engine by writing its import files.
// The workloader CLI picks them up from the run directory.
type FileApplier struct {
	sink Sink
}

// NewFileApplier returns an applier writing to sink.
func NewFileApplier(sink Sink) *FileApplier {
	return &FileApplier{sink: sink}
}

// Create writes the import file for new lists.
func (a *FileApplier) Create(ctx context.Context, lists []reconcile.ListState) error {
	data, err := WriteCreates(lists)
	if err != nil {
		return err
	}
	if err := a.sink.Put(ctx, CreateFile, data); err != nil {
		return fmt.Errorf("failed to write create file: %w", err)
	}
	return nil
}

// Update writes the import file for existing lists.
func (a *FileApplier) Update(ctx context.Context, lists []reconcile.ListState) error {
	data, err := WriteUpdates(lists)
	if err != nil {
		return err
	}
	if err := a.sink.Put(ctx, UpdateFile, data); err != nil {
		return fmt.Errorf("failed to write update file: %w", err)
	}
	return nil
}
