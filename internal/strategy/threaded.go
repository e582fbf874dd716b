package strategy

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/cleaner"
)

// Threaded fans file processing out across goroutines sharing one address
// space. Cleaning is pure and runs unsynchronized; the shared aggregator's
// lock is the single contended resource.
type Threaded struct {
	topN          int
	maxConcurrent int
	logger        *slog.Logger
}

func NewThreaded(topN int, maxConcurrent int) *Threaded {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Threaded{
		topN:          topN,
		maxConcurrent: maxConcurrent,
		logger:        slog.Default().With("component", "strategy-threaded"),
	}
}

func (t *Threaded) Name() string { return "threaded" }

// Process launches one goroutine per file, with a weighted semaphore keeping
// at most maxConcurrent files in flight so large corpora do not exhaust file
// descriptors. The WaitGroup join is a hard barrier: the snapshot is taken
// only after every worker has merged. Per-worker read failures land in
// indexed result slots and are collected after the join, so one bad file
// surfaces alongside the partial outcome of the other N-1.
func (t *Threaded) Process(paths []string) (*Outcome, error) {
	type result struct {
		elapsed time.Duration
		err     error
	}
	agg := aggregate.New()
	results := make([]result, len(paths))
	sem := semaphore.NewWeighted(int64(t.maxConcurrent))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			if err := sem.Acquire(context.Background(), 1); err != nil {
				results[idx] = result{err: err}
				return
			}
			defer sem.Release(1)
			start := time.Now()
			raw, err := os.ReadFile(p)
			if err != nil {
				results[idx] = result{err: err}
				return
			}
			agg.Merge(cleaner.Clean(raw))
			results[idx] = result{elapsed: time.Since(start)}
		}(i, path)
	}
	wg.Wait()

	outcome := &Outcome{}
	for i, r := range results {
		if r.err != nil {
			t.logger.Warn("file skipped", "path", paths[i], "error", r.err)
			outcome.Failures = append(outcome.Failures, FileError{Path: paths[i], Err: r.err})
			continue
		}
		outcome.Files++
		outcome.Processing += r.elapsed
	}
	outcome.Stats = agg.Snapshot(t.topN)
	outcome.Vocabulary = agg.Vocabulary()
	return outcome, failuresError(t.Name(), outcome.Failures)
}
