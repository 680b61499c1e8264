package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseLastSeen(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        time.Time
	}{
		{"canonical", "Last seen at : 2024-03-01", date("2024-03-01")},
		{"no spaces", "Last seen at:2024-03-01", date("2024-03-01")},
		{"embedded", "owner=team; Last seen at : 2024-03-01 (auto)", date("2024-03-01")},
		{"missing", "created by hand", time.Time{}},
		{"empty", "", time.Time{}},
		{"invalid date", "Last seen at : 2024-13-45", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(ParseLastSeen(tt.description)))
		})
	}
}

func TestDescription(t *testing.T) {
	now := time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC)

	assert.Equal(t, "Last seen at : 2024-03-01", Description(now))
	assert.True(t, date("2024-03-01").Equal(ParseLastSeen(Description(now))))
}

func TestFindStale(t *testing.T) {
	now := time.Date(2024, 3, 22, 9, 0, 0, 0, time.UTC)

	all := lists(
		ListState{Name: "DNA_exact-IPL", LastSeen: date("2024-03-01")},
		ListState{Name: "DNA_old-IPL", LastSeen: date("2024-02-29"), Addresses: NewSet("10.0.0.1")},
		ListState{Name: "DNA_fresh-IPL", LastSeen: date("2024-03-20")},
		ListState{Name: "DNA_unknown-IPL"},
		ListState{Name: "DNA_ancient-IPL", LastSeen: date("2023-01-01")},
	)

	stale := FindStale(all, 21, now)

	require.Len(t, stale, 2)
	assert.Equal(t, "DNA_ancient-IPL", stale[0].Name)
	assert.Equal(t, "DNA_old-IPL", stale[1].Name)

	events := StaleEvents(stale)
	require.Len(t, events, 2)
	assert.Equal(t, EventStale, events[1].Kind)
	assert.Equal(t, []string{"10.0.0.1"}, events[1].Addresses)
	require.NotNil(t, events[1].LastSeen)
	assert.True(t, date("2024-02-29").Equal(*events[1].LastSeen))
}
