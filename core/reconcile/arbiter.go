package reconcile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultEnvPreference orders environment tokens from most to least
// preferred when two lists claim the same address.
var DefaultEnvPreference = []string{"prd", "prod", "production", "preprod", "stg", "staging", "uat", "dev", "development"}

var nameTokenSplit = regexp.MustCompile(`[^a-z0-9]+`)

// OwnershipMap returns address -> owning list for the given lists. When an
// address is already listed more than once, the smallest list name is used.
func OwnershipMap(lists map[string]ListState) map[string]string {
	owners := make(map[string]string)
	for _, name := range sortedNames(lists) {
		for addr := range lists[name].Addresses {
			if _, ok := owners[addr]; !ok {
				owners[addr] = name
			}
		}
	}
	return owners
}

// Arbitrate removes every address claimed by more than one desired list from
// all lists but one. The current owner keeps the address when it is among the
// claimants; otherwise the claimant with the best environment rank wins, then
// the smallest name. The input map is not modified.
func Arbitrate(desired map[string]ListState, currentOwner map[string]string, preference []string) (map[string]ListState, []ChangeEvent) {
	out := make(map[string]ListState, len(desired))
	for name, list := range desired {
		out[name] = list.Clone()
	}

	claims := make(map[string][]string)
	for _, name := range sortedNames(out) {
		for addr := range out[name].Addresses {
			claims[addr] = append(claims[addr], name)
		}
	}

	addrs := make([]string, 0, len(claims))
	for addr, names := range claims {
		if len(names) > 1 {
			addrs = append(addrs, addr)
		}
	}
	sort.Strings(addrs)

	var events []ChangeEvent
	for _, addr := range addrs {
		contenders := claims[addr]
		owner := pickOwner(contenders, currentOwner[addr], preference)
		for _, loser := range contenders {
			if loser == owner {
				continue
			}
			delete(out[loser].Addresses, addr)
			events = append(events, ChangeEvent{
				Kind:        EventReassigned,
				Name:        owner,
				Address:     addr,
				RemovedFrom: loser,
			})
		}
	}

	return out, events
}

// pickOwner chooses the winner among sorted contenders.
func pickOwner(contenders []string, current string, preference []string) string {
	for _, name := range contenders {
		if name == current {
			return name
		}
	}

	ranked := append([]string(nil), contenders...)
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := envRank(ranked[i], preference), envRank(ranked[j], preference)
		if ri != rj {
			return ri < rj
		}
		return ranked[i] < ranked[j]
	})
	return ranked[0]
}

// envRank is the best preference index of any token of the list name.
// Names without a known environment token rank after all known ones.
func envRank(name string, preference []string) int {
	rank := len(preference)
	for _, token := range nameTokenSplit.Split(strings.ToLower(name), -1) {
		for i, env := range preference {
			if i < rank && token == strings.ToLower(env) {
				rank = i
			}
		}
	}
	return rank
}

// VerifyUniqueOwnership returns ErrInvariantViolation if an address is listed
// by more than one list.
func VerifyUniqueOwnership(lists map[string]ListState) error {
	if dups := DuplicateAddresses(lists); len(dups) > 0 {
		return fmt.Errorf("%w: %s listed by %v", ErrInvariantViolation, dups[0].Address, dups[0].Lists)
	}
	return nil
}

// DuplicateAddresses returns the addresses listed by more than one list, in
// address order.
func DuplicateAddresses(lists map[string]ListState) []Duplicate {
	byAddr := make(map[string][]string)
	for _, name := range sortedNames(lists) {
		for addr := range lists[name].Addresses {
			byAddr[addr] = append(byAddr[addr], name)
		}
	}

	var dups []Duplicate
	for addr, names := range byAddr {
		if len(names) > 1 {
			dups = append(dups, Duplicate{Address: addr, Lists: names})
		}
	}
	sort.Slice(dups, func(i, j int) bool {
		return dups[i].Address < dups[j].Address
	})
	return dups
}

// sortedNames returns the keys of a list map in order.
func sortedNames(lists map[string]ListState) []string {
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
