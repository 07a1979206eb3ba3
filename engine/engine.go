package engine

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360/storesight/config"
	"github.com/c360/storesight/dataset"
	"github.com/c360/storesight/detector"
	"github.com/c360/storesight/errors"
	"github.com/c360/storesight/metric"
	"github.com/c360/storesight/pkg/worker"
	"github.com/c360/storesight/types"
)

// poolStopTimeout bounds the drain after all detectors have reported.
const poolStopTimeout = 5 * time.Second

// Engine runs the detector set over a dataset and assembles the final
// event log. It holds no per-run state; one Engine can serve any number
// of sequential runs.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *metric.Registry
}

// New validates the configuration and builds an engine. The registry is
// optional; without it the run is unobserved but otherwise identical.
func New(cfg *config.Config, logger *slog.Logger, registry *metric.Registry) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{cfg: cfg, logger: logger, registry: registry}, nil
}

// Result is the outcome of one detection run.
type Result struct {
	// RunID uniquely identifies the run in logs and downstream storage.
	RunID string

	// Events is the assembled log: globally time-ordered, IDs assigned.
	Events []types.Event

	// Counts breaks Events down by kind display name.
	Counts map[string]int

	// Skipped carries the loader's per-stream malformed-record counts
	// through to the caller.
	Skipped map[string]int

	Duration time.Duration
}

// detectTask pairs a detector with its output slot.
type detectTask struct {
	slot int
	det  detector.Detector
}

// Run executes all detectors over the dataset and assembles their
// output. Detectors are read-only over the dataset and write disjoint
// result slots, so they fan out on the worker pool without locking; the
// assembler is the only synchronization point.
func (e *Engine) Run(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()

	var metrics *metric.Metrics
	if e.registry != nil {
		metrics = e.registry.CoreMetrics()
	}

	detectors := detector.All(e.cfg.Detection, detector.Options{
		Logger:  e.logger,
		Metrics: metrics,
	})

	e.logger.Info("detection run starting",
		slog.String("run_id", runID),
		slog.Int("records", ds.TotalRecords()),
		slog.Int("detectors", len(detectors)))

	outputs, err := e.runDetectors(ctx, ds, detectors, metrics)
	if err != nil {
		return nil, err
	}

	events := assemble(outputs)

	counts := make(map[string]int)
	for _, event := range events {
		counts[event.Kind.String()]++
		if metrics != nil {
			metrics.RecordEvent(event.Kind.String())
		}
	}

	result := &Result{
		RunID:    runID,
		Events:   events,
		Counts:   counts,
		Skipped:  ds.Skipped,
		Duration: time.Since(start),
	}

	e.logger.Info("detection run complete",
		slog.String("run_id", runID),
		slog.Int("events", len(events)),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// runDetectors fans the detector set out on a worker pool and waits for
// every output slot to be filled.
func (e *Engine) runDetectors(
	ctx context.Context,
	ds *dataset.Dataset,
	detectors []detector.Detector,
	metrics *metric.Metrics,
) ([][]types.Event, error) {
	outputs := make([][]types.Event, len(detectors))
	done := make(chan struct{}, len(detectors))

	processor := func(ctx context.Context, task detectTask) error {
		defer func() { done <- struct{}{} }()

		detStart := time.Now()
		outputs[task.slot] = task.det.Detect(ctx, ds)
		elapsed := time.Since(detStart)

		if metrics != nil {
			metrics.RecordDetectorDuration(task.det.Name(), elapsed)
		}
		e.logger.Debug("detector finished",
			slog.String("detector", task.det.Name()),
			slog.Int("events", len(outputs[task.slot])),
			slog.Duration("duration", elapsed))
		return nil
	}

	workers := e.cfg.Detection.Workers
	if workers <= 0 {
		workers = len(detectors)
	}

	var poolOpts []worker.Option[detectTask]
	if e.registry != nil {
		poolOpts = append(poolOpts, worker.WithMetricsRegistry[detectTask](e.registry, "detector_pool"))
	}
	pool := worker.NewPool(workers, len(detectors), processor, poolOpts...)

	if err := pool.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "Engine", "runDetectors", "start pool")
	}
	defer func() {
		if err := pool.Stop(poolStopTimeout); err != nil {
			e.logger.Warn("detector pool drain timed out", slog.String("error", err.Error()))
		}
	}()

	for slot, det := range detectors {
		if err := pool.Submit(detectTask{slot: slot, det: det}); err != nil {
			return nil, errors.Wrap(err, "Engine", "runDetectors", "submit "+det.Name())
		}
	}

	for range detectors {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, errors.WrapTransient(ctx.Err(), "Engine", "runDetectors", "run cancelled")
		}
	}

	return outputs, nil
}
