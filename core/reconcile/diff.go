package reconcile

import (
	"context"
)

// DiffResult splits the desired state into work for the policy engine.
type DiffResult struct {
	// Creates are desired lists unknown to the policy engine.
	Creates []ListState

	// Updates are existing lists whose hostnames or addresses changed.
	Updates []ListState

	// Unchanged are existing lists with nothing to change.
	Unchanged []ListState

	// Events are the created, updated and kept events, in list name order.
	Events []ChangeEvent
}

// RemovalCandidates returns the persisted addresses of desired lists that
// the desired state no longer contains.
func RemovalCandidates(desired, persisted map[string]ListState) Set {
	candidates := make(Set)
	for name, want := range desired {
		if have, ok := persisted[name]; ok {
			candidates.AddAll(have.Addresses.Difference(want.Addresses))
		}
	}
	return candidates
}

// Diff compares the desired lists with the persisted ones.
//
// Addresses a persisted list would lose are retained when one of the list's
// hostnames still resolves to them, or failing that when they appear in
// recentFlow. An address claimed by another desired list, or already retained
// by one, is never retained. Hostnames are only ever added.
func Diff(ctx context.Context, desired, persisted map[string]ListState, r Resolver, recentFlow Set) DiffResult {
	var result DiffResult

	claimedBy := OwnershipMap(desired)

	for _, name := range sortedNames(desired) {
		want := desired[name]
		have, exists := persisted[name]

		if !exists {
			if want.Addresses.Len() == 0 {
				continue
			}
			created := want.Clone()
			result.Creates = append(result.Creates, created)
			result.Events = append(result.Events, ChangeEvent{
				Kind:      EventCreated,
				Name:      name,
				Hostnames: created.Hostnames.Sorted(),
				Addresses: created.Addresses.Sorted(),
			})
			continue
		}

		final := have.Clone()
		final.Hostnames = have.Hostnames.Union(want.Hostnames)
		final.Addresses = want.Addresses.Clone()

		keptDNS, keptFlow := retain(ctx, have.Addresses.Difference(want.Addresses), final.Hostnames, name, claimedBy, r, recentFlow)
		final.Addresses.AddAll(keptDNS)
		final.Addresses.AddAll(keptFlow)

		if keptDNS.Len() > 0 {
			result.Events = append(result.Events, ChangeEvent{
				Kind:      EventKept,
				Reason:    KeepDNS,
				Name:      name,
				Addresses: keptDNS.Sorted(),
			})
		}
		if keptFlow.Len() > 0 {
			result.Events = append(result.Events, ChangeEvent{
				Kind:      EventKept,
				Reason:    KeepFlow,
				Name:      name,
				Addresses: keptFlow.Sorted(),
			})
		}

		if final.Hostnames.Equal(have.Hostnames) && final.Addresses.Equal(have.Addresses) {
			result.Unchanged = append(result.Unchanged, final)
			continue
		}

		result.Updates = append(result.Updates, final)
		result.Events = append(result.Events, ChangeEvent{
			Kind:         EventUpdated,
			Name:         name,
			OldHostnames: have.Hostnames.Sorted(),
			Hostnames:    final.Hostnames.Sorted(),
			OldAddresses: have.Addresses.Sorted(),
			Addresses:    final.Addresses.Sorted(),
		})
	}

	return result
}

// retain decides which removal candidates of list name survive.
func retain(ctx context.Context, candidates, hostnames Set, name string, claimedBy map[string]string, r Resolver, recentFlow Set) (Set, Set) {
	keptDNS, keptFlow := make(Set), make(Set)
	if candidates.Len() == 0 {
		return keptDNS, keptFlow
	}

	resolved := make(Set)
	for _, h := range hostnames.Sorted() {
		resolved.AddAll(resolve(ctx, r, h))
	}

	for _, addr := range candidates.Sorted() {
		if owner, ok := claimedBy[addr]; ok && owner != name {
			continue
		}
		switch {
		case resolved.Has(addr):
			keptDNS.Add(addr)
		case recentFlow.Has(addr):
			keptFlow.Add(addr)
		default:
			continue
		}
		claimedBy[addr] = name
	}
	return keptDNS, keptFlow
}
