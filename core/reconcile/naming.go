package reconcile

import (
	"regexp"
	"strings"
)

const (
	// DefaultPrefix marks IP lists managed by this tool.
	DefaultPrefix = "DNA_"
	// DefaultSuffix closes every managed IP list name.
	DefaultSuffix = "-IPL"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9-]`)

// Naming derives IP list names from hostnames.
type Naming struct {
	Prefix string
	Suffix string
}

// DefaultNaming returns the DNA_<host>-IPL naming scheme.
func DefaultNaming() Naming {
	return Naming{Prefix: DefaultPrefix, Suffix: DefaultSuffix}
}

// ListName returns the list name for a hostname. Characters outside
// [A-Za-z0-9-] are replaced with dots.
func (n Naming) ListName(hostname string) string {
	return n.Prefix + unsafeNameChars.ReplaceAllString(strings.TrimSpace(hostname), ".") + n.Suffix
}

// Managed reports whether a list name belongs to the managed scope.
func (n Naming) Managed(name string) bool {
	return strings.HasPrefix(name, n.Prefix)
}

// Short returns the list name without the prefix and suffix.
func (n Naming) Short(name string) string {
	return strings.TrimSuffix(strings.TrimPrefix(name, n.Prefix), n.Suffix)
}
