package iplist

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"iplist-automanage/core/reconcile"
)

// File names of the import files consumed by the policy engine CLI.
const (
	CreateFile = "new.iplist.new.fqdns.csv"
	UpdateFile = "update.iplist.existing.fqdns.csv"
)

var (
	createHeader = []string{"name", "description", "include", "fqdns"}
	updateHeader = []string{"href", "description", "include", "fqdns"}
)

// WriteCreates renders the import file for lists to create.
func WriteCreates(lists []reconcile.ListState) ([]byte, error) {
	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		rows = append(rows, []string{l.Name, l.Description, joinEntries(l.Addresses), joinEntries(l.Hostnames)})
	}
	return encodeCSV(createHeader, rows)
}

// WriteUpdates renders the import file for existing lists. Every list must
// carry the href it was exported with.
func WriteUpdates(lists []reconcile.ListState) ([]byte, error) {
	rows := make([][]string, 0, len(lists))
	for _, l := range lists {
		if !l.Persisted() {
			return nil, fmt.Errorf("list %s has no href", l.Name)
		}
		rows = append(rows, []string{l.ExternalRef, l.Description, joinEntries(l.Addresses), joinEntries(l.Hostnames)})
	}
	return encodeCSV(updateHeader, rows)
}

func encodeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
