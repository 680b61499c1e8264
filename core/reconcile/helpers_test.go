package reconcile

import (
	"context"
	"sync"
)

// staticResolver answers lookups from a fixed table and counts calls.
type staticResolver struct {
	mu      sync.Mutex
	records map[string][]string
	calls   map[string]int
}

func newStaticResolver(records map[string][]string) *staticResolver {
	return &staticResolver{records: records, calls: map[string]int{}}
}

func (r *staticResolver) Resolve(_ context.Context, hostname string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[hostname]++
	return r.records[hostname]
}

// staticEvidence reports the candidates found in a fixed set.
type staticEvidence struct {
	seen      Set
	requested Set
}

func (e *staticEvidence) RecentAddresses(_ context.Context, candidates Set) Set {
	e.requested = candidates.Clone()
	return candidates.Intersect(e.seen)
}

// list builds a ListState for tests.
func list(name string, addresses []string, hostnames ...string) ListState {
	return ListState{Name: name, Addresses: NewSet(addresses...), Hostnames: NewSet(hostnames...)}
}

// lists indexes ListStates by name.
func lists(ls ...ListState) map[string]ListState {
	out := make(map[string]ListState, len(ls))
	for _, l := range ls {
		out[l.Name] = l
	}
	return out
}

// eventsOf filters events by kind.
func eventsOf(events []ChangeEvent, kind EventKind) []ChangeEvent {
	var out []ChangeEvent
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
