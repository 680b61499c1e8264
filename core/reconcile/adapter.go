package reconcile

import (
	"context"
)

// Resolver resolves a hostname to its current addresses.
// Implementations own their timeout and must not fail: a lookup that errors
// or times out returns an empty result.
type Resolver interface {
	Resolve(ctx context.Context, hostname string) []string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, hostname string) []string

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, hostname string) []string {
	return f(ctx, hostname)
}

// EvidenceSource runs the longer-window traffic check against addresses that
// are about to be removed from their lists. It returns the subset of
// candidates that still carried traffic; failures return an empty set.
type EvidenceSource interface {
	RecentAddresses(ctx context.Context, candidates Set) Set
}

// Applier hands a plan to the policy engine import step.
type Applier interface {
	// Create submits lists that do not exist yet.
	Create(ctx context.Context, lists []ListState) error

	// Update submits existing lists, identified by their ExternalRef.
	Update(ctx context.Context, lists []ListState) error
}

// resolve is a nil-safe lookup returning a set. Answers that parse as IP
// addresses are stored in canonical form so they compare with list entries.
func resolve(ctx context.Context, r Resolver, hostname string) Set {
	if r == nil || hostname == "" {
		return Set{}
	}
	out := Set{}
	for _, a := range r.Resolve(ctx, hostname) {
		if c, ok := canonicalAddress(a); ok {
			out.Add(c)
			continue
		}
		if a != "" {
			out.Add(a)
		}
	}
	return out
}
