package reconcile

import (
	"time"
)

// ObservedFlow is one outbound traffic record reduced to what grouping needs.
type ObservedFlow struct {
	// Hostname is the destination FQDN reported by the flow export.
	Hostname string `json:"hostname"`

	// Address is the destination IP address.
	Address string `json:"address"`
}

// CandidateGroup collects the addresses and hostnames observed under one group key.
type CandidateGroup struct {
	// Key is the group key derived by GroupKey.
	Key string `json:"key"`

	// Addresses are the destination addresses seen or resolved for the group.
	Addresses Set `json:"addresses"`

	// Hostnames are the lower-cased hostnames that contributed to the group.
	Hostnames Set `json:"hostnames"`
}

// ListState is one IP list, either proposed by this run or read back from
// the policy engine export.
type ListState struct {
	// Name is the IP list name, including the managed prefix and suffix.
	Name string `json:"name"`

	// Addresses are the IP addresses included in the list.
	Addresses Set `json:"addresses"`

	// Hostnames are the FQDNs bound to the list.
	Hostnames Set `json:"hostnames"`

	// LastSeen is the date traffic was last attributed to the list.
	// A zero value means the date is unknown.
	LastSeen time.Time `json:"last_seen"`

	// ExternalRef identifies the record in the policy engine (its href).
	// Empty for lists that do not exist there yet.
	ExternalRef string `json:"external_ref,omitempty"`

	// Description is the free-text metadata stored with the list.
	Description string `json:"description,omitempty"`
}

// Clone returns a deep copy of the list.
func (l ListState) Clone() ListState {
	c := l
	c.Addresses = l.Addresses.Clone()
	c.Hostnames = l.Hostnames.Clone()
	return c
}

// Persisted reports whether the list already exists in the policy engine.
func (l ListState) Persisted() bool {
	return l.ExternalRef != ""
}

// EventKind identifies the type of a ChangeEvent.
type EventKind string

const (
	// EventCreated records a list proposed for creation.
	EventCreated EventKind = "created"
	// EventUpdated records a change to an existing list.
	EventUpdated EventKind = "updated"
	// EventRegrouped records candidate groups folded into one list.
	EventRegrouped EventKind = "regrouped"
	// EventReassigned records an address removed from a list that lost ownership.
	EventReassigned EventKind = "reassigned"
	// EventKept records addresses retained although they were not observed.
	EventKept EventKind = "kept"
	// EventStale records a list past the staleness threshold.
	EventStale EventKind = "stale"
)

// KeepReason explains why an unobserved address was retained.
type KeepReason string

const (
	// KeepDNS means a hostname of the list still resolves to the address.
	KeepDNS KeepReason = "dns"
	// KeepFlow means the address appears in the longer-window flow evidence.
	KeepFlow KeepReason = "flow"
)

// ChangeEvent is an informational record consumed by reporting.
// Which fields are set depends on Kind.
type ChangeEvent struct {
	Kind EventKind `json:"kind"`

	// Name is the list the event applies to. For regrouped events it is the
	// merge target, for reassigned events the new owner.
	Name string `json:"name,omitempty"`

	// Reason is set on kept events.
	Reason KeepReason `json:"reason,omitempty"`

	// Address and RemovedFrom are set on reassigned events.
	Address     string `json:"address,omitempty"`
	RemovedFrom string `json:"removed_from,omitempty"`

	// BridgeHostname and SourceKeys are set on regrouped events.
	BridgeHostname string   `json:"bridge_hostname,omitempty"`
	SourceKeys     []string `json:"source_keys,omitempty"`

	// Hostnames and Addresses carry the current (new) values.
	Hostnames []string `json:"hostnames,omitempty"`
	Addresses []string `json:"addresses,omitempty"`

	// OldHostnames and OldAddresses are set on updated events.
	OldHostnames []string `json:"old_hostnames,omitempty"`
	OldAddresses []string `json:"old_addresses,omitempty"`

	// LastSeen is set on stale events.
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// Added returns the addresses of an updated event that were not there before.
func (e ChangeEvent) Added() []string {
	return NewSet(e.Addresses...).Difference(NewSet(e.OldAddresses...)).Sorted()
}

// Removed returns the addresses of an updated event that are no longer listed.
func (e ChangeEvent) Removed() []string {
	return NewSet(e.OldAddresses...).Difference(NewSet(e.Addresses...)).Sorted()
}

// Duplicate is an address listed by more than one list of the final state.
type Duplicate struct {
	Address string   `json:"address"`
	Lists   []string `json:"lists"`
}

// Inputs is the fixed snapshot one reconciliation run works on.
type Inputs struct {
	// Flows are the outbound traffic records of the observation window.
	Flows []ObservedFlow

	// Persisted are the in-scope lists exported from the policy engine, by name.
	Persisted map[string]ListState
}

// Spec defines the collaborators and policy of a reconciliation run.
type Spec struct {
	// Resolver resolves hostnames. If nil, nothing resolves.
	Resolver Resolver

	// Evidence answers the longer-window traffic check for removal candidates.
	// If nil, no address is retained on flow evidence.
	Evidence EvidenceSource

	// Naming derives list names from hostnames.
	Naming Naming

	// AvailabilityZones are the zone tokens used to synthesize sibling hostnames.
	AvailabilityZones []string

	// EnvPreference orders environment tokens for ownership tie-breaks,
	// most preferred first.
	EnvPreference []string

	// StaleAfterDays is the last-seen age beyond which a list is stale.
	StaleAfterDays int

	// RefreshUnchanged resubmits unchanged existing lists so their last-seen
	// metadata stays current.
	RefreshUnchanged bool
}

// Plan is the outcome of one reconciliation run.
type Plan struct {
	// Creates are the lists to create, by name order.
	Creates []ListState `json:"creates"`

	// Updates are the existing lists to resubmit, by name order.
	Updates []ListState `json:"updates"`

	// Events are the ordered change events of the run.
	Events []ChangeEvent `json:"events"`

	// Stale are the lists flagged as deletion candidates.
	Stale []ListState `json:"stale"`

	// Duplicates are addresses still listed by more than one list.
	Duplicates []Duplicate `json:"duplicates"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Groups is the number of candidate groups aggregated from traffic.
	Groups int `json:"groups"`

	// Lists is the number of lists after merge and arbitration.
	Lists int `json:"lists"`

	// Creates counts lists to create.
	Creates int `json:"creates"`

	// Updates counts existing lists whose hostnames or addresses changed.
	Updates int `json:"updates"`

	// Refreshes counts unchanged lists resubmitted for metadata refresh.
	Refreshes int `json:"refreshes"`

	// Regrouped counts merged signatures.
	Regrouped int `json:"regrouped"`

	// Reassigned counts addresses removed from losing lists.
	Reassigned int `json:"reassigned"`

	// KeptDNS counts addresses retained on DNS evidence.
	KeptDNS int `json:"kept_dns"`

	// KeptFlow counts addresses retained on flow evidence.
	KeptFlow int `json:"kept_flow"`

	// Stale counts stale lists.
	Stale int `json:"stale"`

	// Duplicates counts addresses listed more than once.
	Duplicates int `json:"duplicates"`
}

// ApplyOptions controls whether a plan is actually executed.
type ApplyOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool

	// Confirmed indicates the operator confirmed the changes.
	// If false, nothing executes regardless of DryRun.
	Confirmed bool
}
