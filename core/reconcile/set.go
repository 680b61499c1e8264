package reconcile

import (
	"encoding/json"
	"sort"
)

// Set is an unordered collection of strings (addresses or hostnames).
// Iteration order is never relied upon; use Sorted for anything ordered.
type Set map[string]struct{}

// NewSet builds a set from the given values, skipping empty strings.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a non-empty value.
func (s Set) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

// AddAll inserts every value of other.
func (s Set) AddAll(other Set) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of values. A nil set has length zero.
func (s Set) Len() int {
	return len(s)
}

// Clone returns an independent copy. Cloning a nil set yields an empty set.
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for v := range s {
		c[v] = struct{}{}
	}
	return c
}

// Sorted returns the values in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold exactly the same values.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if _, ok := other[v]; !ok {
			return false
		}
	}
	return true
}

// Union returns a new set with the values of both sets.
func (s Set) Union(other Set) Set {
	u := s.Clone()
	u.AddAll(other)
	return u
}

// Difference returns the values of s that are not in other.
func (s Set) Difference(other Set) Set {
	d := make(Set)
	for v := range s {
		if _, ok := other[v]; !ok {
			d[v] = struct{}{}
		}
	}
	return d
}

// Intersect returns the values present in both sets.
func (s Set) Intersect(other Set) Set {
	i := make(Set)
	for v := range s {
		if _, ok := other[v]; ok {
			i[v] = struct{}{}
		}
	}
	return i
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes a JSON array into the set.
func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
