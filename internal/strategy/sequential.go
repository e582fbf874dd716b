package strategy

import (
	"log/slog"
	"os"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/cleaner"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
)

// Sequential processes files one at a time on the calling goroutine. It is
// the correctness baseline every other strategy is compared against.
type Sequential struct {
	topN   int
	logger *slog.Logger
}

func NewSequential(topN int) *Sequential {
	return &Sequential{
		topN:   topN,
		logger: slog.Default().With("component", "strategy-sequential"),
	}
}

func (s *Sequential) Name() string { return "sequential" }

// Process reads, cleans, and merges every file in list order into a table
// owned by this goroutine alone. The first unreadable file fails the whole
// run with no partial outcome: the baseline never reports partial numbers.
func (s *Sequential) Process(paths []string) (*Outcome, error) {
	agg := aggregate.New()
	outcome := &Outcome{}
	for _, path := range paths {
		start := time.Now()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Newf(apperrors.ErrFileAccess, apperrors.ExitFailure,
				"sequential: reading %s: %v", path, err)
		}
		agg.Merge(cleaner.Clean(raw))
		outcome.Files++
		outcome.Processing += time.Since(start)
	}
	outcome.Stats = agg.Snapshot(s.topN)
	outcome.Vocabulary = agg.Vocabulary()
	return outcome, nil
}
