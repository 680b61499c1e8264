package iplist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"strings"
)

const utf8BOM = "\ufeff"

// table is a CSV export with its header indexed by lower-cased column name.
type table struct {
	header map[string]int
	rows   [][]string
}

// readTable reads a whole CSV export. A leading byte order mark is ignored and
// rows may have a varying number of fields.
func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &table{header: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &table{header: make(map[string]int, len(head))}
	for i, name := range head {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := t.header[key]; !dup {
			t.header[key] = i
		}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(t.rows)+2, err)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

// column returns the index of the first alias present in the header, or
// fallback when none is.
func (t *table) column(fallback int, aliases ...string) int {
	for _, alias := range aliases {
		if i, ok := t.header[strings.ToLower(alias)]; ok {
			return i
		}
	}
	return fallback
}

// field returns the trimmed value at index i, or "" when the row is too short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// canonicalAddress returns the canonical text form of an IP address. Values
// that do not parse, such as ranges, are returned trimmed but otherwise as is.
func canonicalAddress(raw string) string {
	raw = strings.TrimSpace(raw)
	if addr, err := netip.ParseAddr(raw); err == nil {
		return addr.Unmap().String()
	}
	return raw
}
