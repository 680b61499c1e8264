package reconcile

import (
	"context"
	"fmt"
)

// ApplyPlan hands the creates and updates of a plan to the applier.
// Returns the number of lists submitted and any error encountered.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, plan *Plan, applier Applier, opts ApplyOptions) (executed int, err error) {
	// Safety check: do not execute if not confirmed or dry-run
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}
	if plan == nil {
		return 0, nil
	}
	if applier == nil {
		return 0, fmt.Errorf("no applier configured")
	}

	if err := VerifyUniqueOwnership(finalLists(plan)); err != nil {
		return 0, fmt.Errorf("refusing to apply plan: %w", err)
	}
	for _, l := range plan.Updates {
		if !l.Persisted() {
			return 0, fmt.Errorf("refusing to apply plan: update of %s has no external reference", l.Name)
		}
	}

	if len(plan.Creates) > 0 {
		if err := applier.Create(ctx, plan.Creates); err != nil {
			return executed, fmt.Errorf("failed to submit %d creates: %w", len(plan.Creates), err)
		}
		executed += len(plan.Creates)
	}

	if len(plan.Updates) > 0 {
		if err := applier.Update(ctx, plan.Updates); err != nil {
			return executed, fmt.Errorf("failed to submit %d updates: %w", len(plan.Updates), err)
		}
		executed += len(plan.Updates)
	}

	return executed, nil
}

// finalLists indexes the lists a plan submits by name.
func finalLists(plan *Plan) map[string]ListState {
	lists := make(map[string]ListState, len(plan.Creates)+len(plan.Updates))
	for _, l := range plan.Creates {
		lists[l.Name] = l
	}
	for _, l := range plan.Updates {
		lists[l.Name] = l
	}
	return lists
}
