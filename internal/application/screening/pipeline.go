package screening

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/ScaffoldSieve/internal/domain/candidate"
	"github.com/turtacn/ScaffoldSieve/internal/domain/molecule"
	"github.com/turtacn/ScaffoldSieve/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ScaffoldSieve/pkg/errors"
)

// Loader supplies the candidate table for one run.
type Loader interface {
	Load(ctx context.Context) (*candidate.Table, error)
	Location() string
}

// MetricsRecorder receives run telemetry.  Durations are wall-clock.
type MetricsRecorder interface {
	ObserveLoad(records int, d time.Duration)
	ObserveParse(parsed, unparseable int, d time.Duration)
	ObserveStage(stage, mode string, kept, dropped, unparseable int, d time.Duration)
	ObserveRun(status string, survivors, unique int, d time.Duration)
}

// Run statuses passed to MetricsRecorder.ObserveRun.
const (
	StatusSuccess   = "success"
	StatusLoadError = "load_error"
	StatusError     = "error"
	StatusCancelled = "cancelled"
)

// Options tunes parallel evaluation.  Zero values pick GOMAXPROCS workers
// and chunks of DefaultChunkSize records.
type Options struct {
	Workers   int
	ChunkSize int
}

// DefaultChunkSize is the number of records handed to a worker at once.
const DefaultChunkSize = 256

// Result is the outcome of a successful run.
type Result struct {
	Report    *Report
	Survivors *candidate.Table
}

// Pipeline loads a table, parses every SMILES once and applies the stages
// in order.  Parsing and predicate evaluation run in parallel; filtering
// itself is a sequential pass over an index-addressed keep mask so order and
// counts are deterministic.
type Pipeline struct {
	loader  Loader
	stages  []*Stage
	opts    Options
	metrics MetricsRecorder
	logger  logging.Logger
}

// NewPipeline wires a pipeline.  metrics may be nil.
func NewPipeline(loader Loader, stages []*Stage, opts Options, metrics MetricsRecorder, log logging.Logger) (*Pipeline, error) {
	if loader == nil {
		return nil, errors.NewValidationError("loader", "loader is required")
	}
	if len(stages) == 0 {
		return nil, errors.NewValidationError("stages", "at least one stage is required")
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Pipeline{
		loader:  loader,
		stages:  stages,
		opts:    opts,
		metrics: metrics,
		logger:  log.Named("screening"),
	}, nil
}

// Stages returns the compiled stage list.
func (p *Pipeline) Stages() []*Stage { return p.stages }

// Run executes one screening pass.  Load failures are returned unchanged so
// the caller can map their code; SMILES that fail to parse are not errors.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(logging.String("run_id", runID))

	t0 := time.Now()
	table, err := p.loader.Load(ctx)
	if err != nil {
		p.observeRun(statusFor(err, StatusLoadError), 0, 0, time.Since(started))
		log.Error("Failed to load candidate table",
			logging.String("location", p.loader.Location()), logging.Err(err))
		return nil, err
	}
	if p.metrics != nil {
		p.metrics.ObserveLoad(table.Len(), time.Since(t0))
	}

	res, err := p.screen(ctx, log, table)
	if err != nil {
		p.observeRun(statusFor(err, StatusError), 0, 0, time.Since(started))
		return nil, err
	}
	res.Report.RunID = runID
	res.Report.Source = p.loader.Location()
	res.Report.StartedAt = started.UTC()
	res.Report.Elapsed = time.Since(started)
	res.Report.ElapsedSeconds = res.Report.Elapsed.Seconds()
	p.observeRun(StatusSuccess, res.Report.Survivors, res.Report.Unique, res.Report.Elapsed)

	log.Info("Screening complete",
		logging.Int("total", res.Report.Total),
		logging.Int("survivors", res.Report.Survivors),
		logging.Int("unique", res.Report.Unique),
		logging.Duration("elapsed", res.Report.Elapsed))
	return res, nil
}

// Screen applies the stages to an already loaded table.  Running it again on
// the same table yields the same result; parse results are attached once.
func (p *Pipeline) Screen(ctx context.Context, table *candidate.Table) (*Result, error) {
	return p.screen(ctx, p.logger, table)
}

func (p *Pipeline) screen(ctx context.Context, log logging.Logger, table *candidate.Table) (*Result, error) {
	if table == nil {
		return nil, errors.New(errors.ErrCodeInternal, "nil candidate table")
	}
	report := &Report{Total: table.Len()}

	unparseable, err := p.parse(ctx, log, table)
	if err != nil {
		return nil, err
	}
	report.Unparseable = unparseable

	current := table
	for _, stage := range p.stages {
		next, sr, err := p.apply(ctx, stage, current)
		if err != nil {
			return nil, err
		}
		log.Info("Stage applied",
			logging.String("stage", sr.Name),
			logging.String("mode", sr.Mode.String()),
			logging.Int("input", sr.Input),
			logging.Int("dropped", sr.Dropped),
			logging.Int("unparseable", sr.Unparseable),
			logging.Int("kept", sr.Kept))
		report.Stages = append(report.Stages, sr)
		current = next
	}

	report.Survivors = current.Len()
	report.Unique = current.UniqueSMILES()
	report.ByParent = current.GroupCount(candidate.ColumnParentMol)
	report.ByMethod = current.GroupCount(candidate.ColumnMethod)
	return &Result{Report: report, Survivors: current}, nil
}

// parse attaches a structure to every record that does not have one yet and
// returns the number of unparseable records.
func (p *Pipeline) parse(ctx context.Context, log logging.Logger, table *candidate.Table) (int, error) {
	start := time.Now()
	records := table.Records()
	err := forEach(ctx, len(records), p.opts.Workers, p.opts.ChunkSize, func(i int) {
		r := records[i]
		if r.Structure == nil {
			r.Attach(molecule.Parse(r.SMILES))
		}
	})
	if err != nil {
		return 0, err
	}

	unparseable := 0
	for _, r := range records {
		if u, ok := r.Structure.(*molecule.Unparseable); ok {
			unparseable++
			log.Debug("Unparseable SMILES",
				logging.Int("row", r.Index),
				logging.String("smiles", u.SMILES),
				logging.String("code", errors.GetCode(u.Reason).String()),
				logging.Err(u.Reason))
		}
	}
	if p.metrics != nil {
		p.metrics.ObserveParse(len(records)-unparseable, unparseable, time.Since(start))
	}
	return unparseable, nil
}

func (p *Pipeline) apply(ctx context.Context, stage *Stage, table *candidate.Table) (*candidate.Table, StageResult, error) {
	start := time.Now()
	records := table.Records()
	keep := make([]bool, len(records))
	err := forEach(ctx, len(records), p.opts.Workers, p.opts.ChunkSize, func(i int) {
		keep[i] = stage.Keep(records[i].Structure)
	})
	if err != nil {
		return nil, StageResult{}, err
	}

	next, err := table.Filter(keep)
	if err != nil {
		return nil, StageResult{}, err
	}

	sr := StageResult{
		Name:    stage.Name(),
		Mode:    stage.Mode(),
		Reason:  stage.Reason(),
		Pattern: stage.SMARTS(),
		Input:   len(records),
		Kept:    next.Len(),
	}
	sr.Dropped = sr.Input - sr.Kept
	for _, r := range records {
		if !r.Parsed() {
			sr.Unparseable++
		}
	}
	if p.metrics != nil {
		p.metrics.ObserveStage(sr.Name, sr.Mode.String(), sr.Kept, sr.Dropped, sr.Unparseable, time.Since(start))
	}
	return next, sr, nil
}

func (p *Pipeline) observeRun(status string, survivors, unique int, d time.Duration) {
	if p.metrics != nil {
		p.metrics.ObserveRun(status, survivors, unique, d)
	}
}

func statusFor(err error, fallback string) string {
	if errors.IsCode(err, errors.ErrCodeCancelled) {
		return StatusCancelled
	}
	return fallback
}

//Personal.AI order the ending
