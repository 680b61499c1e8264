package config

import (
	"time"

	"iplist-automanage/core/reconcile"
	"iplist-automanage/core/utils"
)

// ReconcileConfig holds the policy of a reconciliation run.
type ReconcileConfig struct {
	// Prefix marks the managed IP lists; other lists are ignored.
	Prefix string `mapstructure:"prefix" default:"DNA_"`
	// Suffix closes every managed IP list name.
	Suffix string `mapstructure:"suffix" default:"-IPL"`
	// AvailabilityZones is the semicolon separated list of zone tokens.
	AvailabilityZones string `mapstructure:"availability_zones" default:"eu-fr-paris;eu-fr-north;hk-hongkong;sg-singapore"`
	// EnvPreference orders environment tokens, most preferred first.
	EnvPreference string `mapstructure:"env_preference" default:"prd;prod;production;preprod;stg;staging;uat;dev;development"`
	// StaleDays is the last-seen age in days beyond which a list is stale.
	StaleDays int `mapstructure:"stale_days" default:"21"`
	// FlowDays is the observation window of the traffic export.
	FlowDays int `mapstructure:"flow_days" default:"7"`
	// EvidenceDays is the window of the longer traffic check on removal candidates.
	EvidenceDays int `mapstructure:"evidence_days" default:"30"`
	// DNSTimeoutSeconds bounds a single hostname lookup.
	DNSTimeoutSeconds int `mapstructure:"dns_timeout_seconds" default:"2"`
	// RefreshUnchanged resubmits unchanged lists to keep their last-seen date current.
	RefreshUnchanged bool `mapstructure:"refresh_unchanged" default:"true"`
	// ExportRoot is the local directory receiving one folder per run.
	ExportRoot string `mapstructure:"export_root" default:"exports"`
	// Flows is the default traffic export reference (a path or bucket:<key>).
	Flows string `mapstructure:"flows" default:""`
	// IPLists is the default IP list export reference.
	IPLists string `mapstructure:"iplists" default:""`
	// Evidence is the default longer-window traffic export reference.
	Evidence string `mapstructure:"evidence" default:""`
}

// Inputs returns the configured input references, skipping empty ones.
func (c ReconcileConfig) Inputs() []string {
	var refs []string
	for _, ref := range []string{c.Flows, c.IPLists, c.Evidence} {
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}

// Naming returns the list naming scheme.
func (c ReconcileConfig) Naming() reconcile.Naming {
	n := reconcile.DefaultNaming()
	if c.Prefix != "" {
		n.Prefix = c.Prefix
	}
	if c.Suffix != "" {
		n.Suffix = c.Suffix
	}
	return n
}

// Zones returns the availability-zone tokens.
func (c ReconcileConfig) Zones() []string {
	return utils.SplitList(c.AvailabilityZones)
}

// Preference returns the environment preference, falling back to the default order.
func (c ReconcileConfig) Preference() []string {
	if p := utils.SplitList(c.EnvPreference); len(p) > 0 {
		return p
	}
	return reconcile.DefaultEnvPreference
}

// DNSTimeout returns the per-lookup DNS timeout.
func (c ReconcileConfig) DNSTimeout() time.Duration {
	if c.DNSTimeoutSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.DNSTimeoutSeconds) * time.Second
}

// Spec builds the reconciliation spec for the configured policy.
func (c ReconcileConfig) Spec(resolver reconcile.Resolver, evidence reconcile.EvidenceSource) *reconcile.Spec {
	return &reconcile.Spec{
		Resolver:          resolver,
		Evidence:          evidence,
		Naming:            c.Naming(),
		AvailabilityZones: c.Zones(),
		EnvPreference:     c.Preference(),
		StaleAfterDays:    c.StaleDays,
		RefreshUnchanged:  c.RefreshUnchanged,
	}
}
