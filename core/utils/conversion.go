package utils

import (
	"strconv"
	"strings"
)

// SplitList splits a semicolon or comma separated setting into trimmed,
// non-empty items, keeping their order and dropping repeats.
func SplitList(val string) []string {
	fields := strings.FieldsFunc(val, func(r rune) bool {
		return r == ';' || r == ','
	})

	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// ToInt converts a string to int, returning 0 when it is not a number.
func ToInt(val string) int {
	i, _ := strconv.Atoi(strings.TrimSpace(val))
	return i
}

// ToBool converts a string to bool. It accepts "1", "true", "yes" and "y".
func ToBool(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
