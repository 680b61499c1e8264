package iplist

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"iplist-automanage/core/reconcile"
)

// Positional columns of the workloader traffic export, used when the header
// does not name them.
const (
	flowHostnameIndex = 25
	flowAddressIndex  = 14
)

var ipStyleHostname = regexp.MustCompile(`^(?:ip-)?(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)(?:-(?:25[0-5]|2[0-4]\d|1\d\d|[1-9]?\d)){3}(?:\..+)?$`)

// FlowStats counts what happened to the rows of a traffic export.
type FlowStats struct {
	Rows    int `json:"rows"`
	Kept    int `json:"kept"`
	Empty   int `json:"empty"`
	Compute int `json:"compute"`
	IPStyle int `json:"ip_style"`
}

// Skipped returns the number of rows dropped.
func (s FlowStats) Skipped() int {
	return s.Empty + s.Compute + s.IPStyle
}

// ReadFlows reads a workloader traffic export.
//
// Rows without a destination hostname or address are dropped, as are cloud
// compute hostnames and hostnames that merely spell an IP address.
func ReadFlows(r io.Reader) ([]reconcile.ObservedFlow, FlowStats, error) {
	var stats FlowStats

	t, err := readTable(r)
	if err != nil {
		return nil, stats, fmt.Errorf("traffic export: %w", err)
	}

	hostCol := t.column(flowHostnameIndex, "Destination FQDN", "destination_fqdn", "dst_fqdn")
	addrCol := t.column(flowAddressIndex, "Destination IP", "destination_ip", "dst_ip")

	flows := make([]reconcile.ObservedFlow, 0, len(t.rows))
	for _, row := range t.rows {
		stats.Rows++

		host := field(row, hostCol)
		addr := field(row, addrCol)
		lower := strings.ToLower(host)

		switch {
		case host == "" || addr == "":
			stats.Empty++
		case strings.Contains(lower, ".compute."):
			stats.Compute++
		case ipStyleHostname.MatchString(lower):
			stats.IPStyle++
		default:
			stats.Kept++
			flows = append(flows, reconcile.ObservedFlow{Hostname: host, Address: addr})
		}
	}

	return flows, stats, nil
}

// EvidenceSet is the destination address set of a longer-window traffic export.
type EvidenceSet reconcile.Set

// ReadEvidence reads a traffic export and collects its destination addresses.
// Hostname filters do not apply: any traffic to an address counts.
func ReadEvidence(r io.Reader) (EvidenceSet, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("evidence export: %w", err)
	}

	addrCol := t.column(flowAddressIndex, "Destination IP", "destination_ip", "dst_ip")

	set := make(reconcile.Set)
	for _, row := range t.rows {
		set.Add(canonicalAddress(field(row, addrCol)))
	}
	return EvidenceSet(set), nil
}
