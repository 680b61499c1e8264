package reconcile

import (
	"fmt"
	"sort"
	"strings"
)

// signatureBucket holds the groups sharing one exact address set.
type signatureBucket struct {
	signature string
	addresses Set
	hostnames Set
	keys      []string
}

// Merge folds candidate groups whose address sets are identical into one
// list each. Empty groups are dropped. The list name comes from the bridge
// hostname (the smallest merged hostname) unless a persisted list already
// covers the merged hostnames, in which case its name is kept. One
// regrouped event is emitted per signature, including single-group ones.
func Merge(groups map[string]CandidateGroup, persisted map[string]ListState, naming Naming) (map[string]ListState, []ChangeEvent) {
	buckets := bucketBySignature(groups)

	taken := make(map[string]struct{})
	names := make([]string, len(buckets))
	bridges := make([]string, len(buckets))

	// Persisted names are claimed before any name is derived. Lists named
	// after one of a signature's hostnames or keys go first, across all
	// signatures, then lists that merely share a hostname.
	for _, byName := range []bool{true, false} {
		for i, b := range buckets {
			if names[i] != "" {
				continue
			}
			name, bridge := preferredPersisted(b, persisted, naming, taken, byName)
			if name == "" {
				continue
			}
			taken[name] = struct{}{}
			names[i], bridges[i] = name, bridge
		}
	}

	for i, b := range buckets {
		if names[i] != "" {
			continue
		}
		bridge := b.hostnames.Sorted()[0]
		name := naming.ListName(bridge)
		for n := 2; ; n++ {
			if _, used := taken[name]; !used {
				break
			}
			name = naming.ListName(fmt.Sprintf("%s-%d", bridge, n))
			// A suffixed name must not land on an unrelated persisted list.
			if _, exists := persisted[name]; exists {
				taken[name] = struct{}{}
			}
		}
		taken[name] = struct{}{}
		names[i], bridges[i] = name, bridge
	}

	lists := make(map[string]ListState, len(buckets))
	events := make([]ChangeEvent, 0, len(buckets))
	for i, b := range buckets {
		lists[names[i]] = ListState{
			Name:      names[i],
			Addresses: b.addresses.Clone(),
			Hostnames: b.hostnames.Clone(),
		}
		events = append(events, ChangeEvent{
			Kind:           EventRegrouped,
			Name:           names[i],
			BridgeHostname: bridges[i],
			SourceKeys:     b.keys,
			Hostnames:      b.hostnames.Sorted(),
			Addresses:      b.addresses.Sorted(),
		})
	}

	return lists, events
}

// bucketBySignature groups non-empty candidate groups by sorted address set
// and returns the buckets in signature order.
func bucketBySignature(groups map[string]CandidateGroup) []*signatureBucket {
	bySig := make(map[string]*signatureBucket)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		g := groups[k]
		if g.Addresses.Len() == 0 {
			continue
		}
		sig := signature(g.Addresses)
		b, ok := bySig[sig]
		if !ok {
			b = &signatureBucket{signature: sig, addresses: g.Addresses.Clone(), hostnames: Set{}}
			bySig[sig] = b
		}
		b.hostnames.AddAll(g.Hostnames)
		b.keys = append(b.keys, k)
	}

	out := make([]*signatureBucket, 0, len(bySig))
	for _, b := range bySig {
		if b.hostnames.Len() == 0 {
			// A group without hostnames cannot name a list; fall back to its keys.
			b.hostnames.AddAll(NewSet(b.keys...))
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].signature < out[j].signature
	})
	return out
}

// signature is the canonical text form of an address set.
func signature(addresses Set) string {
	return strings.Join(addresses.Sorted(), ",")
}

// preferredPersisted returns the smallest persisted list name, not yet taken,
// that belongs to the bucket, with the bridge hostname tied to it. With byName
// a persisted list belongs to the bucket when its name is the one derived
// from a merged hostname or source key; otherwise when it shares a hostname
// with the bucket.
func preferredPersisted(b *signatureBucket, persisted map[string]ListState, naming Naming, taken map[string]struct{}, byName bool) (string, string) {
	if len(persisted) == 0 {
		return "", ""
	}

	derived := make(map[string]string)
	for _, h := range b.hostnames.Sorted() {
		if _, ok := derived[naming.ListName(h)]; !ok {
			derived[naming.ListName(h)] = h
		}
	}
	for _, k := range b.keys {
		if _, ok := derived[naming.ListName(k)]; !ok {
			derived[naming.ListName(k)] = ""
		}
	}

	candidates := make([]string, 0)
	for name, list := range persisted {
		if _, used := taken[name]; used {
			continue
		}
		_, named := derived[name]
		if byName && named || !byName && list.Hostnames.Intersect(b.hostnames).Len() > 0 {
			candidates = append(candidates, name)
		}
	}
	if len(candidates) == 0 {
		return "", ""
	}
	sort.Strings(candidates)
	name := candidates[0]

	shared := persisted[name].Hostnames.Intersect(b.hostnames)
	if h := derived[name]; h != "" {
		shared.Add(h)
	}
	if shared.Len() == 0 {
		return name, b.hostnames.Sorted()[0]
	}
	return name, shared.Sorted()[0]
}
