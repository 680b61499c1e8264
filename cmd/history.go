package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"iplist-automanage/feature/iplist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd lists recorded runs.
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded reconciliation runs",
	Long:  `Lists the most recent recorded runs, or shows one run with its change events.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", iplist.DefaultHistoryLimit, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON instead of log lines")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
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

	db, err := rt.historyDB(true)
	if err != nil {
		return err
	}
	history := iplist.NewHistory(db)
	if err := history.Migrate(ctx); err != nil {
		return err
	}

	if len(args) == 1 {
		run, err := history.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if historyJSON {
			return printJSON(run)
		}
		l.Info("Run",
			zap.String("run_id", run.RunID),
			zap.Time("started_at", run.StartedAt),
			zap.String("source", run.Source),
			zap.Bool("applied", run.Applied),
			zap.Int("creates", run.Creates),
			zap.Int("updates", run.Updates),
			zap.Int("stale", run.Stale),
		)
		for _, e := range run.Events {
			l.Info("Event", zap.Int("seq", e.Seq), zap.String("kind", e.Kind), zap.String("list", e.ListName))
		}
		return nil
	}

	runs, err := history.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	if historyJSON {
		return printJSON(runs)
	}
	if len(runs) == 0 {
		l.Info("No recorded runs")
		return nil
	}
	for _, run := range runs {
		l.Info("Run",
			zap.String("run_id", run.RunID),
			zap.Time("started_at", run.StartedAt),
			zap.String("source", run.Source),
			zap.Bool("dry_run", run.DryRun),
			zap.Bool("applied", run.Applied),
			zap.Int("creates", run.Creates),
			zap.Int("updates", run.Updates),
			zap.Int("reassigned", run.Reassigned),
			zap.Int("stale", run.Stale),
		)
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
