package iplist

import (
	"context"

	"iplist-automanage/core/reconcile"
)

// RecentAddresses returns the candidates present in the evidence.
func (e EvidenceSet) RecentAddresses(_ context.Context, candidates reconcile.Set) reconcile.Set {
	return candidates.Intersect(reconcile.Set(e))
}

// Len returns the number of addresses in the evidence.
func (e EvidenceSet) Len() int {
	return len(e)
}
