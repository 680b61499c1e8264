package iplist

import (
	"bytes"
	"testing"
	"time"

	"iplist-automanage/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	lastSeen := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	plan := &reconcile.Plan{
		Events: []reconcile.ChangeEvent{
			{Kind: reconcile.EventRegrouped, Name: "DNA_db.example.com-IPL", BridgeHostname: "db.example.com", SourceKeys: []string{"db", "db2"}, Addresses: []string{"10.0.0.5"}},
			{Kind: reconcile.EventReassigned, Name: "DNA_a-prd-IPL", Address: "10.0.0.9", RemovedFrom: "DNA_a-dev-IPL"},
			{Kind: reconcile.EventCreated, Name: "DNA_db.example.com-IPL", Hostnames: []string{"db.example.com"}, Addresses: []string{"10.0.0.5"}},
			{Kind: reconcile.EventKept, Reason: reconcile.KeepFlow, Name: "DNA_api.example.com-IPL", Addresses: []string{"10.0.0.3"}},
			{Kind: reconcile.EventUpdated, Name: "DNA_api.example.com-IPL", Hostnames: []string{"api.example.com"},
				OldAddresses: []string{"10.0.0.1", "10.0.0.3"}, Addresses: []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}},
		},
		Stale: []reconcile.ListState{{
			Name: "DNA_old-IPL", Hostnames: reconcile.NewSet("old.example.com"),
			Description: "Last seen at : 2024-02-01", ExternalRef: "/h/11", LastSeen: lastSeen,
		}},
		Duplicates: []reconcile.Duplicate{{Address: "10.9.9.9", Lists: []string{"DNA_x-IPL", "DNA_y-IPL"}}},
	}

	var buf bytes.Buffer
	err := WriteReport(&buf, ReportInput{
		RunID:     "run-1",
		Date:      runDate,
		Plan:      plan,
		StaleDays: 21,
		DryRun:    true,
		Naming:    reconcile.DefaultNaming(),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "DNA IPList Auto-Manage Report\n")
	assert.Contains(t, out, "- run: run-1\n- date: 2024-03-22\n- mode: dry-run\n")
	assert.Contains(t, out, "New IPLists created:\n  * db.example.com (db.example.com) -> 10.0.0.5\n")
	assert.Contains(t, out, "Updated IPLists:\n  * api.example.com (api.example.com)\n      + added: 10.0.0.2\n      - removed: -\n")
	assert.Contains(t, out, "  * DNA_db.example.com-IPL <- db,db2 (bridge db.example.com) -> 10.0.0.5\n")
	assert.Contains(t, out, "  * 10.0.0.9: DNA_a-dev-IPL -> DNA_a-prd-IPL\n")
	assert.Contains(t, out, "  * DNA_api.example.com-IPL [flow]: 10.0.0.3\n")
	assert.Contains(t, out, "Section 2 - Deletion candidates (>21 days)\n  * DNA_old-IPL | old.example.com | Last seen at : 2024-02-01 | /h/11\n")
	assert.Contains(t, out, "Section 3 - IP addresses present in multiple DNA IPLists\n  * 10.9.9.9: DNA_x-IPL,DNA_y-IPL\n")
}

func TestWriteReport_NilPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, ReportInput{RunID: "r", Applied: true, Executed: 2}))
	assert.Contains(t, buf.String(), "- mode: applied (2 lists submitted)")
}
