package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"iplist-automanage/core/reconcile"
	"iplist-automanage/feature/iplist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flowsRef    string
	iplistsRef  string
	evidenceRef string
	dryRun      bool
	yesConfirm  bool
	publishRun  bool
	recordRun   bool
	printReport bool
)

// reconcileCmd plans and applies an IP list reconciliation.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the DNA IP lists with observed traffic",
	Long: `Reconcile the DNA IP lists against a traffic export and the current IP list export.

Inputs are local paths or objects of the configured bucket (bucket:<key>).
The plan, the report and, once confirmed, the import files are written to
<export_root>/<run id>.

Examples:
  # Plan only
  reconcile --flows traffic.csv --iplists iplists.csv

  # Keep addresses still seen over the longer window
  reconcile --flows traffic.csv --iplists iplists.csv --evidence traffic-30d.csv

  # Write the import files without prompting, publish and record the run
  reconcile --flows bucket:exports/traffic.csv --iplists bucket:exports/iplists.csv --yes --publish --record`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&flowsRef, "flows", "", "Traffic export (path or bucket:<key>), defaults to RECONCILE_FLOWS")
	reconcileCmd.Flags().StringVar(&iplistsRef, "iplists", "", "IP list export (path or bucket:<key>), defaults to RECONCILE_IPLISTS")
	reconcileCmd.Flags().StringVar(&evidenceRef, "evidence", "", "Longer-window traffic export, defaults to RECONCILE_EVIDENCE")
	reconcileCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Force dry-run (no import files even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm writing the import files (non-interactive)")
	reconcileCmd.Flags().BoolVar(&publishRun, "publish", false, "Upload the run artifacts to the bucket")
	reconcileCmd.Flags().BoolVar(&recordRun, "record", false, "Store the run in the history database")
	reconcileCmd.Flags().BoolVar(&printReport, "report", false, "Print the text report to stdout")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	l := rt.logger
	defer l.Sync()

	opts := iplist.RunOptions{
		Flows:    firstNonEmpty(flowsRef, rt.cfg.Reconcile.Flows),
		Lists:    firstNonEmpty(iplistsRef, rt.cfg.Reconcile.IPLists),
		Evidence: firstNonEmpty(evidenceRef, rt.cfg.Reconcile.Evidence),
		DryRun:   dryRun,
		Publish:  publishRun,
		Record:   recordRun,
		Source:   "cli",
	}
	if opts.Flows == "" || opts.Lists == "" {
		return fmt.Errorf("--flows and --iplists are required")
	}

	db, err := rt.historyDB(recordRun)
	if err != nil {
		return err
	}

	svc := iplist.NewService(rt.storageClient(), rt.cfg.Storage.Bucket, l, db, rt.cfg.Reconcile)
	if recordRun {
		if err := svc.History().Migrate(ctx); err != nil {
			return err
		}
	}

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...")
	planned, err := svc.Prepare(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	// Step 2: Print report
	printPlanReport(l, planned)

	// Step 3: Confirm (unless dry-run or nothing to do)
	plan := planned.Plan
	if pending := len(plan.Creates) + len(plan.Updates); pending > 0 && !dryRun {
		opts.Confirmed = confirmDestructiveAction(pending)
		if !opts.Confirmed {
			l.Warn("Operation cancelled by user. No import files were written.")
		}
	} else if dryRun {
		l.Info("Dry-run mode: No import files will be written.")
	}

	// Step 4: Apply and write the run artifacts
	result, err := svc.Finish(ctx, planned, opts)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	if printReport {
		report, err := os.ReadFile(filepath.Join(result.Dir, iplist.ReportFile))
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}
		fmt.Print(string(report))
	}

	l.Info("Run artifacts written",
		zap.String("run_id", result.RunID),
		zap.String("dir", result.Dir),
		zap.Strings("artifacts", result.Artifacts),
		zap.Bool("applied", result.Applied),
		zap.Int("executed", result.Executed),
	)
	return nil
}

// printPlanReport prints a formatted reconciliation summary using logger.
func printPlanReport(l *zap.Logger, planned *iplist.PlanResult) {
	s := planned.Plan.Summary

	l.Info("Inputs",
		zap.Int("flow_rows", planned.Flows.Rows),
		zap.Int("flows_kept", planned.Flows.Kept),
		zap.Int("flows_skipped", planned.Flows.Skipped()),
		zap.Int("managed_lists", planned.Lists.Managed),
		zap.Int("evidence_addresses", planned.Evidence),
	)

	l.Info("Reconciliation report",
		zap.Int("groups", s.Groups),
		zap.Int("lists", s.Lists),
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("refreshes", s.Refreshes),
		zap.Int("regrouped", s.Regrouped),
		zap.Int("reassigned", s.Reassigned),
		zap.Int("kept_dns", s.KeptDNS),
		zap.Int("kept_flow", s.KeptFlow),
		zap.Int("stale", s.Stale),
		zap.Int("duplicates", s.Duplicates),
	)

	// Show sample of changes (max 5 for logger)
	var changes []reconcile.ChangeEvent
	for _, e := range planned.Plan.Events {
		if e.Kind == reconcile.EventCreated || e.Kind == reconcile.EventUpdated || e.Kind == reconcile.EventReassigned {
			changes = append(changes, e)
		}
	}
	maxShow := 5
	if len(changes) < maxShow {
		maxShow = len(changes)
	}
	for _, e := range changes[:maxShow] {
		l.Info("Sample change",
			zap.String("kind", string(e.Kind)),
			zap.String("list", e.Name),
			zap.Strings("added", sampleAdded(e)),
			zap.Strings("removed", e.Removed()),
		)
	}
	if len(changes) > maxShow {
		l.Info("Additional changes not shown", zap.Int("count", len(changes)-maxShow))
	}
}

func sampleAdded(e reconcile.ChangeEvent) []string {
	switch e.Kind {
	case reconcile.EventCreated:
		return e.Addresses
	case reconcile.EventReassigned:
		return []string{e.Address}
	}
	return e.Added()
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(pending int) bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Printf("\n⚠️  Type 'yes' to write the import files for %d lists: ", pending)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
