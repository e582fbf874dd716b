// Package pipeline wires one full benchmark run: preflight checks, corpus
// discovery, strategy execution under the harness, and report writing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/bench"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/report"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/strategy"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/preflight"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/timing"
)

// Pipeline owns the lifecycle of a benchmark run.
type Pipeline struct {
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New builds a Pipeline. metrics may be nil when scraping is disabled; the
// pipeline then records nothing.
func New(cfg *config.Config, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		metrics: m,
		logger:  slog.Default().With("component", "pipeline"),
	}
}

// Run executes one benchmark end to end and returns the comparison for
// console rendering. Report artifacts are only written when every strategy
// finished and all results agreed; any earlier failure leaves the output
// directory untouched.
func (p *Pipeline) Run() (*bench.Comparison, error) {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	root := timing.NewSpan("benchmark_run", runID)
	defer func() {
		root.End()
		if p.cfg.Timing.Enabled {
			root.Log()
		}
	}()

	if p.metrics != nil {
		p.metrics.RunsTotal.Inc()
	}

	if err := p.preflight(root); err != nil {
		return nil, err
	}

	scanSpan := root.Child("scan")
	paths, err := corpus.ListTextFiles(p.cfg.Corpus.InputDir)
	if err != nil {
		scanSpan.End()
		return nil, err
	}
	scanSpan.SetAttr("files", len(paths))
	scanSpan.End()
	logger.Info("corpus scanned", "dir", p.cfg.Corpus.InputDir, "files", len(paths))

	benchSpan := root.Child("benchmark")
	cmp, err := bench.New(p.strategies()).Run(runID, paths)
	if err != nil {
		benchSpan.End()
		p.recordFailure(err)
		return nil, err
	}
	for _, run := range cmp.Runs {
		benchSpan.SetAttr(run.Strategy+"_seconds", run.Elapsed.Seconds())
	}
	benchSpan.End()
	cmp.Workers = p.cfg.Benchmark.Workers

	reportSpan := root.Child("report")
	written, err := report.NewWriter(p.cfg.Report.OutputDir).WriteAll(cmp)
	reportSpan.End()
	if err != nil {
		return nil, err
	}

	p.recordRun(cmp, written)
	logger.Info("benchmark run complete",
		"fastest", cmp.Fastest().Strategy,
		"artifacts", len(written),
		"output_dir", p.cfg.Report.OutputDir,
	)
	return cmp, nil
}

// preflight verifies the input and output directories before any corpus work.
// A degraded check (such as a freshly created output directory) is logged and
// tolerated; a down check stops the run.
func (p *Pipeline) preflight(root *timing.Span) error {
	span := root.Child("preflight")
	defer span.End()

	checker := preflight.NewChecker()
	checker.Register("input_dir", preflight.InputDir(p.cfg.Corpus.InputDir))
	checker.Register("output_dir", preflight.OutputDir(p.cfg.Report.OutputDir))
	rep := checker.Run(context.Background())

	for name, res := range rep.Checks {
		switch res.Status {
		case preflight.StatusDown:
			p.logger.Error("preflight check failed", "check", name, "message", res.Message)
		case preflight.StatusDegraded:
			p.logger.Warn("preflight check degraded", "check", name, "message", res.Message)
		}
	}
	if rep.Status == preflight.StatusDown {
		var down []string
		for name, res := range rep.Checks {
			if res.Status == preflight.StatusDown {
				down = append(down, fmt.Sprintf("%s: %s", name, res.Message))
			}
		}
		sort.Strings(down)
		return apperrors.Newf(apperrors.ErrConfig, apperrors.ExitConfig,
			"preflight failed: %s", strings.Join(down, "; "))
	}
	return nil
}

// strategies builds the fixed execution order: sequential baseline first,
// then the shared-memory and message-passing variants.
func (p *Pipeline) strategies() []strategy.Strategy {
	b := p.cfg.Benchmark
	return []strategy.Strategy{
		strategy.NewSequential(b.TopN),
		strategy.NewThreaded(b.TopN, b.MaxConcurrentFiles),
		strategy.NewPool(b.TopN, b.Workers),
	}
}

// recordRun publishes metrics for a completed run. Every metric write for the
// success path goes through here, so a nil metrics handle costs nothing.
func (p *Pipeline) recordRun(cmp *bench.Comparison, written []string) {
	if p.metrics == nil {
		return
	}
	for _, run := range cmp.Runs {
		p.metrics.FilesProcessedTotal.WithLabelValues(run.Strategy).Add(float64(run.Files))
		p.metrics.WordsProcessedTotal.WithLabelValues(run.Strategy).Add(float64(run.Stats.TotalWords))
		p.metrics.StrategyDuration.WithLabelValues(run.Strategy).Set(run.Elapsed.Seconds())
	}
	for _, name := range written {
		p.metrics.ReportWritesTotal.WithLabelValues(name).Inc()
	}
}

// recordFailure publishes metrics for an aborted run.
func (p *Pipeline) recordFailure(err error) {
	if p.metrics == nil {
		return
	}
	var sErr *bench.StrategyError
	switch {
	case errors.As(err, &sErr) && errors.Is(err, apperrors.ErrFileAccess):
		p.metrics.FileFailuresTotal.WithLabelValues(sErr.Strategy).Add(float64(sErr.FailedFiles))
	case errors.Is(err, apperrors.ErrConsistency):
		p.metrics.ConsistencyFailuresTotal.Inc()
	}
}
