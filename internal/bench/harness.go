// Package bench times every execution strategy over the same corpus and
// refuses to produce a comparison unless they all agree on the result.
package bench

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/strategy"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
)

// StrategyRun captures one strategy's execution: wall-clock elapsed time
// around the whole run, the summed per-file processing time measured inside
// workers, and the resulting statistics. Never mutated after creation.
type StrategyRun struct {
	Strategy   string          `json:"strategy"`
	Elapsed    time.Duration   `json:"elapsed_ns"`
	Processing time.Duration   `json:"processing_ns"`
	Files      int             `json:"files"`
	Stats      aggregate.Stats `json:"stats"`
}

// WordsPerSecond is the run's aggregate throughput.
func (r StrategyRun) WordsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Stats.TotalWords) / r.Elapsed.Seconds()
}

// Overhead is wall time not accounted for by file processing: scheduling,
// coordination, and result serialization. Parallel strategies can drive the
// summed processing time past the wall clock, in which case overhead reads
// as zero.
func (r StrategyRun) Overhead() time.Duration {
	if overhead := r.Elapsed - r.Processing; overhead > 0 {
		return overhead
	}
	return 0
}

// Comparison is the full result of one benchmark run. Runs holds the
// strategies in execution order, Ranked the same runs fastest first.
// Workers is filled in by the caller for reporting.
type Comparison struct {
	RunID      string        `json:"run_id"`
	Files      int           `json:"files"`
	Workers    int           `json:"workers"`
	Runs       []StrategyRun `json:"runs"`
	Ranked     []StrategyRun `json:"ranked"`
	Vocabulary []string      `json:"-"`
}

// Fastest returns the quickest run.
func (c *Comparison) Fastest() StrategyRun {
	return c.Ranked[0]
}

// StrategyError identifies the strategy that aborted the benchmark.
// FailedFiles carries how many corpus files were unreadable when the
// underlying error is a file-access failure.
type StrategyError struct {
	Strategy    string
	FailedFiles int
	Err         error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }

// Harness executes strategies in a fixed order against an identical file
// list.
type Harness struct {
	strategies []strategy.Strategy
	logger     *slog.Logger
}

func New(strategies []strategy.Strategy) *Harness {
	return &Harness{
		strategies: strategies,
		logger:     slog.Default().With("component", "bench"),
	}
}

// Run executes every strategy in declaration order, then asserts that all
// results match the first strategy's before ranking. Any strategy error
// aborts the whole benchmark: a comparison of runs that processed different
// file sets would be meaningless, and a report is never written from
// mismatched data. runID correlates the harness logs with the caller's; pass
// an empty string to have the harness mint one.
func (h *Harness) Run(runID string, paths []string) (*Comparison, error) {
	if len(h.strategies) == 0 {
		return nil, apperrors.New(apperrors.ErrConfig, apperrors.ExitConfig, "no strategies configured")
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	cmp := &Comparison{
		RunID: runID,
		Files: len(paths),
		Runs:  make([]StrategyRun, 0, len(h.strategies)),
	}
	logger := h.logger.With("run_id", cmp.RunID)
	logger.Info("benchmark starting", "files", len(paths), "strategies", len(h.strategies))

	var outcomes []*strategy.Outcome
	for _, s := range h.strategies {
		logger.Info("strategy starting", "strategy", s.Name())
		start := time.Now()
		outcome, err := s.Process(paths)
		elapsed := time.Since(start)
		if err != nil {
			sErr := &StrategyError{Strategy: s.Name(), Err: err}
			if errors.Is(err, apperrors.ErrFileAccess) {
				sErr.FailedFiles = 1
				if outcome != nil {
					sErr.FailedFiles = len(outcome.Failures)
				}
			}
			return nil, sErr
		}
		run := StrategyRun{
			Strategy:   s.Name(),
			Elapsed:    elapsed,
			Processing: outcome.Processing,
			Files:      outcome.Files,
			Stats:      outcome.Stats,
		}
		cmp.Runs = append(cmp.Runs, run)
		outcomes = append(outcomes, outcome)
		logger.Info("strategy finished",
			"strategy", s.Name(),
			"elapsed", elapsed.Round(time.Microsecond).String(),
			"total_words", outcome.Stats.TotalWords,
			"unique_words", outcome.Stats.UniqueWords,
		)
	}

	baseline := outcomes[0]
	baselineName := h.strategies[0].Name()
	for i, outcome := range outcomes[1:] {
		name := h.strategies[i+1].Name()
		if !outcome.Stats.Equal(baseline.Stats) {
			logger.Error("strategy results diverge",
				"baseline", baselineName,
				"strategy", name,
				"diff", describeDiff(baseline.Stats, outcome.Stats),
			)
			return nil, apperrors.Newf(apperrors.ErrConsistency, apperrors.ExitConsistency,
				"%s disagrees with %s: %s", name, baselineName, describeDiff(baseline.Stats, outcome.Stats))
		}
	}
	cmp.Vocabulary = baseline.Vocabulary

	cmp.Ranked = rank(cmp.Runs)
	logger.Info("benchmark complete",
		"fastest", cmp.Ranked[0].Strategy,
		"slowest", cmp.Ranked[len(cmp.Ranked)-1].Strategy,
	)
	return cmp, nil
}

// rank returns the runs sorted fastest first. The sort is stable so equal
// timings keep execution order.
func rank(runs []StrategyRun) []StrategyRun {
	ranked := make([]StrategyRun, len(runs))
	copy(ranked, runs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Elapsed < ranked[j].Elapsed
	})
	return ranked
}

// describeDiff names the fields two snapshots disagree on.
func describeDiff(base, other aggregate.Stats) string {
	var parts []string
	if base.TotalWords != other.TotalWords {
		parts = append(parts, fmt.Sprintf("total words %d vs %d", base.TotalWords, other.TotalWords))
	}
	if base.UniqueWords != other.UniqueWords {
		parts = append(parts, fmt.Sprintf("unique words %d vs %d", base.UniqueWords, other.UniqueWords))
	}
	if !topEqual(base, other) {
		parts = append(parts, "top-N content differs")
	}
	return strings.Join(parts, ", ")
}

func topEqual(a, b aggregate.Stats) bool {
	if len(a.TopWords) != len(b.TopWords) {
		return false
	}
	for i := range a.TopWords {
		if a.TopWords[i] != b.TopWords[i] {
			return false
		}
	}
	return true
}
