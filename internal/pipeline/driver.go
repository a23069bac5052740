package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"stitch/internal/fileutil"
	"stitch/internal/logging"
	"stitch/internal/reconcile"
	"stitch/internal/tabular"
)

// Options configures one pipeline run.
type Options struct {
	// Dataset names the run; input is read from "<Dataset>_files" and
	// artifacts are written to "<Dataset>_generated_files".
	Dataset      string
	MetadataPath string

	KeyColumn         string
	DurationColumn    string
	TranscriptColumn  string
	TranscriptAliases []string
	StrictKeys        bool

	// Artifact names inside the output folder; the final file is always
	// "<Dataset>_final.csv".
	CombinedFile  string
	DurationsFile string
}

// StepResult describes one completed step.
type StepResult struct {
	Name   string
	Detail string
	Rows   int
}

// Result collects the outcome of a pipeline run. On failure it holds the
// steps that completed before the abort; their artifacts remain on disk.
type Result struct {
	RunID     string
	Dataset   string
	InputDir  string
	OutputDir string
	Steps     []StepResult
	Artifacts []string
}

// Driver composes the reconciliation steps in-process.
type Driver struct {
	runLog *RunLog
	logger *slog.Logger
}

// NewDriver builds a driver. The run log may be nil to disable history
// recording.
func NewDriver(runLog *RunLog, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{
		runLog: runLog,
		logger: logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes concat, durations, and reorder for the dataset. The first
// failing step aborts the rest; completed artifacts are left in place.
func (d *Driver) Run(ctx context.Context, opts Options) (*Result, error) {
	result := &Result{
		RunID:     uuid.NewString(),
		Dataset:   opts.Dataset,
		InputDir:  opts.Dataset + "_files",
		OutputDir: opts.Dataset + "_generated_files",
	}

	files, err := d.preflight(result, opts)
	if err != nil {
		return result, err
	}

	lock := flock.New(filepath.Join(result.OutputDir, ".stitch.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return result, fmt.Errorf("acquire dataset lock: %w", err)
	}
	if !locked {
		return result, &LockedError{Dataset: opts.Dataset, LockPath: lock.Path()}
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if d.runLog != nil {
		if err := d.runLog.BeginRun(ctx, result.RunID, opts.Dataset); err != nil {
			return result, err
		}
	}

	combined := filepath.Join(result.OutputDir, opts.CombinedFile)
	durations := filepath.Join(result.OutputDir, opts.DurationsFile)
	final := filepath.Join(result.OutputDir, opts.Dataset+"_final.csv")

	steps := []struct {
		name string
		fn   func() (StepResult, error)
	}{
		{"concat", func() (StepResult, error) { return d.concatStep(files, combined) }},
		{"durations", func() (StepResult, error) { return d.durationsStep(opts, combined, durations) }},
		{"reorder", func() (StepResult, error) { return d.reorderStep(opts, durations, final) }},
	}

	for seq, step := range steps {
		d.logger.Info("running step", logging.String("step", step.name))
		stepResult, err := step.fn()
		if err != nil {
			d.recordStep(ctx, result.RunID, seq, StepRecord{
				Name: step.name, Status: RunStatusFailed, Detail: err.Error(),
			})
			d.finishRun(ctx, result.RunID, RunStatusFailed)
			return result, &StepFailure{Step: step.name, Err: err}
		}
		result.Steps = append(result.Steps, stepResult)
		d.recordStep(ctx, result.RunID, seq, StepRecord{
			Name: step.name, Status: RunStatusCompleted, Detail: stepResult.Detail, Rows: stepResult.Rows,
		})
	}

	result.Artifacts = []string{combined, durations, final}
	d.finishRun(ctx, result.RunID, RunStatusCompleted)
	return result, nil
}

func (d *Driver) preflight(result *Result, opts Options) ([]string, error) {
	if err := fileutil.RequireDir(result.InputDir); err != nil {
		return nil, err
	}
	files, err := fileutil.ListCSVFiles(result.InputDir, true)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", result.InputDir)
	}
	if err := fileutil.RequireFile(opts.MetadataPath); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(result.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder %s: %w", result.OutputDir, err)
	}
	return files, nil
}

func (d *Driver) concatStep(files []string, combined string) (StepResult, error) {
	stats, err := reconcile.Concat(files, combined, d.logger)
	if err != nil {
		return StepResult{}, err
	}
	return StepResult{
		Name:   "concat",
		Detail: fmt.Sprintf("%d files merged, %d skipped", stats.FilesMerged, stats.FilesSkipped),
		Rows:   stats.Rows,
	}, nil
}

func (d *Driver) durationsStep(opts Options, combined, output string) (StepResult, error) {
	metadata, err := tabular.Load(opts.MetadataPath)
	if err != nil {
		return StepResult{}, err
	}
	transcriptions, err := tabular.Load(combined)
	if err != nil {
		return StepResult{}, err
	}
	joined, stats, err := reconcile.JoinDurations(metadata, transcriptions, reconcile.JoinOptions{
		KeyColumn:         opts.KeyColumn,
		DurationColumn:    opts.DurationColumn,
		TranscriptColumn:  opts.TranscriptColumn,
		TranscriptAliases: opts.TranscriptAliases,
		StrictKeys:        opts.StrictKeys,
	}, d.logger)
	if err != nil {
		return StepResult{}, err
	}
	if err := joined.Write(output); err != nil {
		return StepResult{}, err
	}
	return StepResult{
		Name:   "durations",
		Detail: fmt.Sprintf("%d matched, %d unmatched", stats.Matched, stats.Unmatched),
		Rows:   stats.Total,
	}, nil
}

func (d *Driver) reorderStep(opts Options, durations, final string) (StepResult, error) {
	reference, err := tabular.Load(opts.MetadataPath)
	if err != nil {
		return StepResult{}, err
	}
	target, err := tabular.Load(durations)
	if err != nil {
		return StepResult{}, err
	}
	reordered, stats, err := reconcile.Reorder(reference, target, opts.KeyColumn, opts.StrictKeys, d.logger)
	if err != nil {
		return StepResult{}, err
	}
	if err := reordered.Write(final); err != nil {
		return StepResult{}, err
	}
	return StepResult{
		Name:   "reorder",
		Detail: fmt.Sprintf("%d matched, %d missing, %d extra", stats.Matched, stats.Missing, stats.Extra),
		Rows:   len(reordered.Rows),
	}, nil
}

func (d *Driver) recordStep(ctx context.Context, runID string, seq int, step StepRecord) {
	if d.runLog == nil {
		return
	}
	step.RunID = runID
	step.Seq = seq
	if err := d.runLog.RecordStep(ctx, step); err != nil {
		d.logger.Warn("record step", logging.Error(err))
	}
}

func (d *Driver) finishRun(ctx context.Context, runID, status string) {
	if d.runLog == nil {
		return
	}
	if err := d.runLog.FinishRun(ctx, runID, status); err != nil {
		d.logger.Warn("finish run", logging.Error(err))
	}
}
