package strategy

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/cleaner"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
)

// Pool partitions the file list across a fixed-size pool of isolated
// workers. Workers never touch a shared table: every FileResult (or error)
// crosses back to the coordinator as an encoded JSON envelope, and the
// coordinator merges all results single-threaded after draining the pool.
// The encode/decode round-trip is the cost of the isolation boundary and is
// part of what this strategy measures, so it must not be skipped even though
// coordinator and workers share a process.
type Pool struct {
	topN    int
	workers int
	logger  *slog.Logger
}

func NewPool(topN int, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		topN:    topN,
		workers: workers,
		logger:  slog.Default().With("component", "strategy-workerpool"),
	}
}

func (p *Pool) Name() string { return "workerpool" }

// envelope is the only message shape that crosses the pool boundary.
type envelope struct {
	Path   string      `json:"path"`
	Result *FileResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Process spawns the worker pool, feeds it every path, and performs a
// blocking drain of exactly len(paths) envelopes before merging. Results
// arrive in any order; merge order does not affect the final table. Worker
// errors are envelopes like any other result and are aggregated after the
// drain, never mid-run. Shutdown is all-or-nothing: the pool winds down only
// once every task has produced an envelope.
func (p *Pool) Process(paths []string) (*Outcome, error) {
	tasks := make(chan string)
	resultCh := make(chan []byte, len(paths))

	for w := 0; w < p.workers; w++ {
		go p.worker(tasks, resultCh)
	}
	go func() {
		for _, path := range paths {
			tasks <- path
		}
		close(tasks)
	}()

	agg := aggregate.New()
	outcome := &Outcome{}
	for i := 0; i < len(paths); i++ {
		env, err := decodeEnvelope(<-resultCh)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrInternal, apperrors.ExitFailure,
				"workerpool: %v", err)
		}
		if env.Error != "" {
			p.logger.Warn("file skipped", "path", env.Path, "error", env.Error)
			outcome.Failures = append(outcome.Failures, FileError{Path: env.Path, Err: errors.New(env.Error)})
			continue
		}
		agg.Merge(env.Result.Tokens)
		outcome.Files++
		outcome.Processing += env.Result.Elapsed
	}
	outcome.Stats = agg.Snapshot(p.topN)
	outcome.Vocabulary = agg.Vocabulary()
	return outcome, failuresError(p.Name(), outcome.Failures)
}

func (p *Pool) worker(tasks <-chan string, results chan<- []byte) {
	for path := range tasks {
		start := time.Now()
		raw, err := os.ReadFile(path)
		if err != nil {
			results <- encodeEnvelope(envelope{Path: path, Error: err.Error()})
			continue
		}
		tokens := cleaner.Clean(raw)
		results <- encodeEnvelope(envelope{
			Path: path,
			Result: &FileResult{
				Path:      path,
				Tokens:    tokens,
				WordCount: len(tokens),
				Elapsed:   time.Since(start),
			},
		})
	}
}

func encodeEnvelope(env envelope) []byte {
	data, err := json.Marshal(env)
	if err != nil {
		fallback := envelope{Path: env.Path, Error: fmt.Sprintf("encoding result: %v", err)}
		data, _ = json.Marshal(fallback)
	}
	return data
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decoding worker result: %w", err)
	}
	return env, nil
}
