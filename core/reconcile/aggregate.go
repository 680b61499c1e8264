package reconcile

import (
	"context"
	"net/netip"
	"strings"
)

// Aggregate folds observed flows into candidate groups keyed by GroupKey.
// Flows with an empty hostname, an invalid address, or no group key are
// skipped. Hostnames containing an availability-zone token are expanded to
// their sibling zones; siblings that resolve contribute their hostname and
// addresses to the same group.
func Aggregate(ctx context.Context, flows []ObservedFlow, zones []string, r Resolver) map[string]CandidateGroup {
	groups := make(map[string]CandidateGroup)
	expanded := make(map[string]struct{})

	for _, flow := range flows {
		host := normalizeHostname(flow.Hostname)
		addr, ok := canonicalAddress(flow.Address)
		if host == "" || !ok {
			continue
		}
		key := GroupKey(host)
		if key == "" {
			continue
		}

		group, exists := groups[key]
		if !exists {
			group = CandidateGroup{Key: key, Addresses: Set{}, Hostnames: Set{}}
			groups[key] = group
		}
		group.Addresses.Add(addr)
		group.Hostnames.Add(host)

		if _, done := expanded[host]; done {
			continue
		}
		expanded[host] = struct{}{}

		for _, sibling := range siblingHostnames(host, zones) {
			addrs := resolve(ctx, r, sibling)
			if addrs.Len() == 0 {
				continue
			}
			group.Hostnames.Add(sibling)
			for _, a := range addrs.Sorted() {
				if c, ok := canonicalAddress(a); ok {
					group.Addresses.Add(c)
				}
			}
		}
	}

	return groups
}

// siblingHostnames substitutes every zone token found in host with each other
// zone token. The result is sorted and never contains host itself.
func siblingHostnames(host string, zones []string) []string {
	siblings := make(Set)
	for _, token := range zones {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" || !strings.Contains(host, token) {
			continue
		}
		for _, other := range zones {
			other = strings.ToLower(strings.TrimSpace(other))
			if other == "" || other == token {
				continue
			}
			siblings.Add(strings.ReplaceAll(host, token, other))
		}
	}
	delete(siblings, host)

	return siblings.Sorted()
}

// canonicalAddress validates an IP address and returns its canonical form.
func canonicalAddress(raw string) (string, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}
