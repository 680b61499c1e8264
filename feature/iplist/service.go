package iplist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"iplist-automanage/core/config"
	"iplist-automanage/core/reconcile"
	"iplist-automanage/core/resolver"
	"iplist-automanage/core/storage"
	"iplist-automanage/feature/iplist/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Artifact names of a run.
const (
	ReportFile = "report.txt"
	PlanFile   = "plan.json"
)

// Service runs IP list reconciliations.
type Service struct {
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	history  *History
	cfg      config.ReconcileConfig
	resolver reconcile.Resolver
	now      func() time.Time
	newID    func() string
}

// Option customizes a Service.
type Option func(*Service)

// WithResolver replaces the DNS resolver.
func WithResolver(r reconcile.Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithClock replaces the clock used to date runs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRunID replaces the run id generator.
func WithRunID(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a new reconciliation service.
// client and db may be nil: bucket inputs, publishing and history are then unavailable.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg config.ReconcileConfig, opts ...Option) *Service {
	s := &Service{
		client:  client,
		bucket:  bucket,
		logger:  logger,
		history: NewHistory(db),
		cfg:     cfg,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.resolver == nil {
		s.resolver = resolver.New(cfg.DNSTimeout(), logger)
	}
	return s
}

// History returns the run history.
func (s *Service) History() *History {
	return s.history
}

// PlanInput holds the exports of one run.
type PlanInput struct {
	// Flows is the traffic export of the observation window.
	Flows io.Reader
	// Lists is the IP list export.
	Lists io.Reader
	// Evidence is the optional longer-window traffic export.
	Evidence io.Reader
}

// PlanResult is a computed plan with the statistics of its inputs.
type PlanResult struct {
	RunID    string          `json:"run_id"`
	Date     time.Time       `json:"date"`
	Flows    FlowStats       `json:"flows"`
	Lists    ListStats       `json:"lists"`
	Evidence int             `json:"evidence_addresses"`
	Plan     *reconcile.Plan `json:"plan"`
}

// Plan reads the exports and computes the plan. It never applies anything.
func (s *Service) Plan(ctx context.Context, in PlanInput) (*PlanResult, error) {
	if in.Flows == nil || in.Lists == nil {
		return nil, fmt.Errorf("traffic and iplist exports are required")
	}

	now := s.now()
	result := &PlanResult{RunID: s.newID(), Date: now}

	flows, flowStats, err := ReadFlows(in.Flows)
	if err != nil {
		return nil, err
	}
	result.Flows = flowStats

	naming := s.cfg.Naming()
	persisted, listStats, err := ReadLists(in.Lists, naming)
	if err != nil {
		return nil, err
	}
	result.Lists = listStats

	var evidence reconcile.EvidenceSource
	if in.Evidence != nil {
		set, err := ReadEvidence(in.Evidence)
		if err != nil {
			return nil, err
		}
		result.Evidence = set.Len()
		evidence = set
	}

	s.logger.Debug("Inputs loaded",
		zap.String("run_id", result.RunID),
		zap.Int("flow_rows", flowStats.Rows),
		zap.Int("flows_kept", flowStats.Kept),
		zap.Int("flows_skipped", flowStats.Skipped()),
		zap.Int("lists", listStats.Managed),
		zap.Int("evidence", result.Evidence))

	plan, err := reconcile.Reconcile(ctx, s.cfg.Spec(s.resolver, evidence), reconcile.Inputs{
		Flows:     flows,
		Persisted: persisted,
	}, now)
	if err != nil {
		return nil, fmt.Errorf("reconcile failed: %w", err)
	}
	result.Plan = plan

	s.logger.Info("Plan computed",
		zap.String("run_id", result.RunID),
		zap.Int("creates", plan.Summary.Creates),
		zap.Int("updates", plan.Summary.Updates),
		zap.Int("refreshes", plan.Summary.Refreshes),
		zap.Int("reassigned", plan.Summary.Reassigned),
		zap.Int("stale", plan.Summary.Stale),
		zap.Int("duplicates", plan.Summary.Duplicates))

	return result, nil
}

// RunOptions controls an end to end run.
type RunOptions struct {
	// Flows, Lists and Evidence are input references (local paths or bucket:<key>).
	// Evidence is optional.
	Flows    string
	Lists    string
	Evidence string

	// DryRun prevents writing the import files.
	DryRun bool
	// Confirmed indicates the operator confirmed the changes.
	Confirmed bool
	// Publish uploads the run artifacts to the bucket.
	Publish bool
	// Record stores the run in the history database.
	Record bool
	// Source labels the run origin in the history (cli, api).
	Source string
}

// RunResult is the outcome of an end to end run.
type RunResult struct {
	*PlanResult

	// Dir is the local directory holding the run artifacts.
	Dir string `json:"dir"`
	// Artifacts are the artifact names written.
	Artifacts []string `json:"artifacts"`
	// Applied reports whether the import files were written.
	Applied bool `json:"applied"`
	// Executed counts lists handed to the import files.
	Executed int `json:"executed"`
	// Published is the bucket location of the artifacts, if published.
	Published string `json:"published,omitempty"`
}

// Execute runs a reconciliation end to end: read the inputs, plan, apply when
// confirmed, write the artifacts and optionally publish and record the run.
func (s *Service) Execute(ctx context.Context, opts RunOptions) (*RunResult, error) {
	planned, err := s.Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s.Finish(ctx, planned, opts)
}

// Prepare opens the inputs of a run and computes its plan.
func (s *Service) Prepare(ctx context.Context, opts RunOptions) (*PlanResult, error) {
	in, closeAll, err := s.openInputs(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer closeAll()

	return s.Plan(ctx, in)
}

// Finish applies a prepared plan when confirmed, then writes, publishes and
// records the run artifacts as requested.
func (s *Service) Finish(ctx context.Context, planned *PlanResult, opts RunOptions) (*RunResult, error) {
	result := &RunResult{
		PlanResult: planned,
		Dir:        filepath.Join(s.cfg.ExportRoot, planned.RunID),
	}

	artifacts := NewMemorySink()
	executed, err := reconcile.ApplyPlan(ctx, planned.Plan, NewFileApplier(artifacts), reconcile.ApplyOptions{
		DryRun:    opts.DryRun,
		Confirmed: opts.Confirmed,
	})
	if err != nil {
		return nil, fmt.Errorf("apply failed: %w", err)
	}
	result.Applied = opts.Confirmed && !opts.DryRun
	result.Executed = executed

	if err := s.writeSummary(ctx, artifacts, result, opts); err != nil {
		return nil, err
	}

	if err := artifacts.CopyTo(ctx, DirSink{Dir: result.Dir}); err != nil {
		return nil, err
	}
	result.Artifacts = artifacts.Names()

	if opts.Publish {
		if s.client == nil {
			return nil, fmt.Errorf("cannot publish: storage is not configured")
		}
		sink := BucketSink{Client: s.client, Bucket: s.bucket, Prefix: RunPrefix(planned.RunID)}
		if err := artifacts.CopyTo(ctx, sink); err != nil {
			return nil, fmt.Errorf("publish failed: %w", err)
		}
		result.Published = sink.Location()
		s.logger.Info("Run artifacts published", zap.String("location", result.Published))
	}

	if opts.Record {
		if err := s.history.Record(ctx, s.runRecord(result, opts), planned.Plan.Events); err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
	}

	s.logger.Info("Run completed",
		zap.String("run_id", planned.RunID),
		zap.String("dir", result.Dir),
		zap.Bool("applied", result.Applied),
		zap.Int("executed", executed))

	return result, nil
}

// Runs lists recorded runs, most recent first.
func (s *Service) Runs(ctx context.Context, limit int) ([]models.Run, error) {
	return s.history.List(ctx, limit)
}

// Run returns one recorded run with its events.
func (s *Service) Run(ctx context.Context, runID string) (*models.Run, error) {
	return s.history.Get(ctx, runID)
}

// openInputs opens the input references of a run.
func (s *Service) openInputs(ctx context.Context, opts RunOptions) (PlanInput, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}

	open := func(ref string) (io.Reader, error) {
		rc, err := s.Open(ctx, ref)
		if err != nil {
			return nil, err
		}
		closers = append(closers, rc)
		return rc, nil
	}

	var in PlanInput
	var err error
	if in.Flows, err = open(opts.Flows); err != nil {
		closeAll()
		return in, nil, err
	}
	if in.Lists, err = open(opts.Lists); err != nil {
		closeAll()
		return in, nil, err
	}
	if opts.Evidence != "" {
		if in.Evidence, err = open(opts.Evidence); err != nil {
			closeAll()
			return in, nil, err
		}
	}
	return in, closeAll, nil
}

// writeSummary adds the report and the JSON plan to the artifacts.
func (s *Service) writeSummary(ctx context.Context, artifacts Sink, result *RunResult, opts RunOptions) error {
	report, err := s.Report(result, opts.DryRun)
	if err != nil {
		return err
	}
	if err := artifacts.Put(ctx, ReportFile, report); err != nil {
		return err
	}

	planJSON, err := json.MarshalIndent(result.PlanResult, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	return artifacts.Put(ctx, PlanFile, planJSON)
}

// Report renders the text report of a run.
func (s *Service) Report(result *RunResult, dryRun bool) ([]byte, error) {
	var buf bytes.Buffer
	err := WriteReport(&buf, ReportInput{
		RunID:     result.RunID,
		Date:      result.Date,
		Plan:      result.Plan,
		Flows:     result.Flows,
		Lists:     result.Lists,
		StaleDays: s.cfg.StaleDays,
		DryRun:    dryRun,
		Applied:   result.Applied,
		Executed:  result.Executed,
		Naming:    s.cfg.Naming(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) runRecord(result *RunResult, opts RunOptions) *models.Run {
	sum := result.Plan.Summary
	source := opts.Source
	if source == "" {
		source = "cli"
	}
	return &models.Run{
		RunID:      result.RunID,
		StartedAt:  result.Date,
		FinishedAt: s.now(),
		Source:     source,
		DryRun:     opts.DryRun,
		Applied:    result.Applied,
		Published:  result.Published,
		FlowRows:   result.Flows.Rows,
		FlowsKept:  result.Flows.Kept,
		Lists:      sum.Lists,
		Creates:    sum.Creates,
		Updates:    sum.Updates,
		Refreshes:  sum.Refreshes,
		Reassigned: sum.Reassigned,
		KeptDNS:    sum.KeptDNS,
		KeptFlow:   sum.KeptFlow,
		Stale:      sum.Stale,
		Duplicates: sum.Duplicates,
	}
}
