package reconcile

import (
	"context"
	"fmt"
	"time"
)

// Reconcile computes the plan for one run over a fixed snapshot of inputs.
// It performs no mutation; use ApplyPlan for that.
//
// The stages run in order: aggregate flows into candidate groups, merge
// groups sharing an address signature, arbitrate addresses claimed by more
// than one list, diff against the persisted lists and finally flag stale
// lists over the persisted lists overlaid with this run's output.
func Reconcile(ctx context.Context, spec *Spec, in Inputs, now time.Time) (*Plan, error) {
	naming := spec.Naming
	if naming.Prefix == "" && naming.Suffix == "" {
		naming = DefaultNaming()
	}
	preference := spec.EnvPreference
	if len(preference) == 0 {
		preference = DefaultEnvPreference
	}
	persisted := in.Persisted
	if persisted == nil {
		persisted = map[string]ListState{}
	}

	groups := Aggregate(ctx, in.Flows, spec.AvailabilityZones, spec.Resolver)

	merged, regrouped := Merge(groups, persisted, naming)

	desired, reassigned := Arbitrate(merged, OwnershipMap(persisted), preference)
	if err := VerifyUniqueOwnership(desired); err != nil {
		return nil, fmt.Errorf("arbitration: %w", err)
	}

	recent := Set{}
	if spec.Evidence != nil {
		if candidates := RemovalCandidates(desired, persisted); candidates.Len() > 0 {
			recent = spec.Evidence.RecentAddresses(ctx, candidates)
		}
	}

	diff := Diff(ctx, desired, persisted, spec.Resolver, recent)

	stamp := func(lists []ListState) []ListState {
		for i := range lists {
			lists[i].LastSeen = dayOf(now)
			lists[i].Description = Description(now)
		}
		return lists
	}

	plan := &Plan{
		Creates: stamp(diff.Creates),
		Updates: stamp(diff.Updates),
	}
	refreshes := 0
	if spec.RefreshUnchanged {
		refreshes = len(diff.Unchanged)
		plan.Updates = mergeByName(plan.Updates, stamp(diff.Unchanged))
	}

	final := make(map[string]ListState, len(persisted)+len(plan.Creates))
	for name, list := range persisted {
		final[name] = list
	}
	for _, list := range plan.Creates {
		final[list.Name] = list
	}
	for _, list := range plan.Updates {
		final[list.Name] = list
	}

	plan.Stale = FindStale(final, spec.StaleAfterDays, now)
	plan.Duplicates = DuplicateAddresses(final)

	plan.Events = make([]ChangeEvent, 0, len(regrouped)+len(reassigned)+len(diff.Events)+len(plan.Stale))
	plan.Events = append(plan.Events, regrouped...)
	plan.Events = append(plan.Events, reassigned...)
	plan.Events = append(plan.Events, diff.Events...)
	plan.Events = append(plan.Events, StaleEvents(plan.Stale)...)

	plan.Summary = PlanSummary{
		Groups:     len(groups),
		Lists:      len(desired),
		Creates:    len(plan.Creates),
		Updates:    len(diff.Updates),
		Refreshes:  refreshes,
		Regrouped:  len(regrouped),
		Reassigned: len(reassigned),
		Stale:      len(plan.Stale),
		Duplicates: len(plan.Duplicates),
	}
	for _, e := range diff.Events {
		if e.Kind != EventKept {
			continue
		}
		switch e.Reason {
		case KeepDNS:
			plan.Summary.KeptDNS += len(e.Addresses)
		case KeepFlow:
			plan.Summary.KeptFlow += len(e.Addresses)
		}
	}

	return plan, nil
}

// mergeByName returns a and b combined in name order.
func mergeByName(a, b []ListState) []ListState {
	byName := make(map[string]ListState, len(a)+len(b))
	for _, list := range a {
		byName[list.Name] = list
	}
	for _, list := range b {
		byName[list.Name] = list
	}
	out := make([]ListState, 0, len(byName))
	for _, name := range sortedNames(byName) {
		out = append(out, byName[name])
	}
	return out
}
