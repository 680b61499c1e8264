package iplist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"iplist-automanage/core/reconcile"
)

// ReportInput is everything the text report shows about one run.
type ReportInput struct {
	RunID      string
	Date       time.Time
	Plan       *reconcile.Plan
	Flows      FlowStats
	Lists      ListStats
	StaleDays  int
	DryRun     bool
	Applied    bool
	Executed   int
	Naming     reconcile.Naming
}

// WriteReport renders the human readable run report.
func WriteReport(w io.Writer, in ReportInput) error {
	p := &reportWriter{w: w}
	plan := in.Plan
	if plan == nil {
		plan = &reconcile.Plan{}
	}

	p.line("DNA IPList Auto-Manage Report")
	p.line("")
	p.line("Section 1 - Run summary")
	p.line("- run: %s", in.RunID)
	p.line("- date: %s", in.Date.Format("2006-01-02"))
	p.line("- mode: %s", runMode(in))
	p.line("- flows: %d rows, %d kept, %d skipped (empty=%d, compute=%d, ip-style=%d)",
		in.Flows.Rows, in.Flows.Kept, in.Flows.Skipped(), in.Flows.Empty, in.Flows.Compute, in.Flows.IPStyle)
	p.line("- iplists: %d managed of %d exported", in.Lists.Managed, in.Lists.Rows)
	s := plan.Summary
	p.line("- groups=%d lists=%d creates=%d updates=%d refreshes=%d", s.Groups, s.Lists, s.Creates, s.Updates, s.Refreshes)
	p.line("- regrouped=%d reassigned=%d kept_dns=%d kept_flow=%d", s.Regrouped, s.Reassigned, s.KeptDNS, s.KeptFlow)

	var created, updated, regrouped, reassigned, kept []reconcile.ChangeEvent
	for _, e := range plan.Events {
		switch e.Kind {
		case reconcile.EventCreated:
			created = append(created, e)
		case reconcile.EventUpdated:
			updated = append(updated, e)
		case reconcile.EventRegrouped:
			regrouped = append(regrouped, e)
		case reconcile.EventReassigned:
			reassigned = append(reassigned, e)
		case reconcile.EventKept:
			kept = append(kept, e)
		}
	}

	p.line("")
	p.line("New IPLists created:")
	for _, e := range created {
		p.line("  * %s (%s) -> %s", in.Naming.Short(e.Name), strings.Join(e.Hostnames, ";"), strings.Join(e.Addresses, ","))
	}

	p.line("")
	p.line("Updated IPLists:")
	for _, e := range updated {
		p.line("  * %s (%s)", in.Naming.Short(e.Name), strings.Join(e.Hostnames, ";"))
		p.line("      + added: %s", orDash(e.Added()))
		p.line("      - removed: %s", orDash(e.Removed()))
	}

	p.line("")
	p.line("Regrouped candidates:")
	for _, e := range regrouped {
		p.line("  * %s <- %s (bridge %s) -> %s", e.Name, strings.Join(e.SourceKeys, ","), e.BridgeHostname, strings.Join(e.Addresses, ","))
	}

	p.line("")
	p.line("Reassigned addresses:")
	for _, e := range reassigned {
		p.line("  * %s: %s -> %s", e.Address, e.RemovedFrom, e.Name)
	}

	p.line("")
	p.line("Kept addresses:")
	for _, e := range kept {
		p.line("  * %s [%s]: %s", e.Name, e.Reason, strings.Join(e.Addresses, ","))
	}

	p.line("")
	p.line("Section 2 - Deletion candidates (>%d days)", in.StaleDays)
	for _, l := range plan.Stale {
		p.line("  * %s | %s | %s | %s", l.Name, joinEntries(l.Hostnames), l.Description, l.ExternalRef)
	}

	p.line("")
	p.line("Section 3 - IP addresses present in multiple DNA IPLists")
	for _, d := range plan.Duplicates {
		p.line("  * %s: %s", d.Address, strings.Join(d.Lists, ","))
	}

	return p.err
}

func runMode(in ReportInput) string {
	switch {
	case in.Applied:
		return fmt.Sprintf("applied (%d lists submitted)", in.Executed)
	case in.DryRun:
		return "dry-run"
	default:
		return "plan only"
	}
}

func orDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

// reportWriter keeps the first write error.
type reportWriter struct {
	w   io.Writer
	err error
}

func (p *reportWriter) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}
