package iplist

import (
	"fmt"
	"io"
	"strings"

	"iplist-automanage/core/reconcile"
)

// ListStats counts what happened to the rows of an IP list export.
type ListStats struct {
	Rows      int `json:"rows"`
	Managed   int `json:"managed"`
	Unmanaged int `json:"unmanaged"`
	Duplicate int `json:"duplicate"`
}

// ReadLists reads a workloader IP list export and returns the managed lists
// by name. Lists outside the naming prefix are ignored; for a name exported
// twice the first row wins.
func ReadLists(r io.Reader, naming reconcile.Naming) (map[string]reconcile.ListState, ListStats, error) {
	var stats ListStats

	t, err := readTable(r)
	if err != nil {
		return nil, stats, fmt.Errorf("iplist export: %w", err)
	}

	nameCol := t.column(-1, "name")
	if nameCol < 0 {
		return nil, stats, fmt.Errorf("iplist export: missing name column")
	}
	descCol := t.column(-1, "description")
	includeCol := t.column(-1, "include")
	fqdnsCol := t.column(-1, "fqdns", "fqdn")
	hrefCol := t.column(-1, "href")

	lists := make(map[string]reconcile.ListState)
	for _, row := range t.rows {
		stats.Rows++

		name := field(row, nameCol)
		if name == "" || !naming.Managed(name) {
			stats.Unmanaged++
			continue
		}
		if _, seen := lists[name]; seen {
			stats.Duplicate++
			continue
		}
		stats.Managed++

		description := field(row, descCol)
		addresses := make(reconcile.Set)
		for _, a := range splitEntries(field(row, includeCol)) {
			addresses.Add(canonicalAddress(a))
		}
		hostnames := make(reconcile.Set)
		for _, h := range splitEntries(field(row, fqdnsCol)) {
			hostnames.Add(strings.ToLower(strings.TrimSuffix(h, ".")))
		}

		lists[name] = reconcile.ListState{
			Name:        name,
			Addresses:   addresses,
			Hostnames:   hostnames,
			LastSeen:    reconcile.ParseLastSeen(description),
			ExternalRef: field(row, hrefCol),
			Description: description,
		}
	}

	return lists, stats, nil
}

// splitEntries splits a ";" separated cell, dropping empty entries.
func splitEntries(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// joinEntries joins sorted entries into a ";" separated cell.
func joinEntries(s reconcile.Set) string {
	return strings.Join(s.Sorted(), ";")
}
