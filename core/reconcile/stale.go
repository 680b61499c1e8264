package reconcile

import (
	"fmt"
	"regexp"
	"time"
)

// lastSeenLayout is the date format stored in list descriptions.
const lastSeenLayout = "2006-01-02"

var lastSeenPattern = regexp.MustCompile(`Last seen at\s*:\s*(\d{4}-\d{2}-\d{2})`)

// Description returns the list description recording now as the last-seen date.
func Description(now time.Time) string {
	return fmt.Sprintf("Last seen at : %s", now.Format(lastSeenLayout))
}

// ParseLastSeen extracts the last-seen date from a list description.
// It returns the zero time when the description carries no valid date.
func ParseLastSeen(description string) time.Time {
	m := lastSeenPattern.FindStringSubmatch(description)
	if m == nil {
		return time.Time{}
	}
	t, err := time.Parse(lastSeenLayout, m[1])
	if err != nil {
		return time.Time{}
	}
	return t
}

// FindStale returns the lists whose last-seen date is more than thresholdDays
// calendar days before now, in name order. Lists with an unknown last-seen
// date are never stale.
func FindStale(lists map[string]ListState, thresholdDays int, now time.Time) []ListState {
	today := dayOf(now)

	var stale []ListState
	for _, name := range sortedNames(lists) {
		list := lists[name]
		if list.LastSeen.IsZero() {
			continue
		}
		if daysBetween(dayOf(list.LastSeen), today) > thresholdDays {
			stale = append(stale, list.Clone())
		}
	}
	return stale
}

// StaleEvents returns one stale event per list.
func StaleEvents(stale []ListState) []ChangeEvent {
	events := make([]ChangeEvent, 0, len(stale))
	for _, list := range stale {
		lastSeen := list.LastSeen
		events = append(events, ChangeEvent{
			Kind:      EventStale,
			Name:      list.Name,
			Hostnames: list.Hostnames.Sorted(),
			Addresses: list.Addresses.Sorted(),
			LastSeen:  &lastSeen,
		})
	}
	return events
}

// dayOf truncates t to its calendar date in UTC.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
