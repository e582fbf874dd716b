// Package report writes the benchmark's three output artifacts. Each file is
// written through a temp file and renamed into place, and a file lock on the
// output directory keeps two runs from interleaving their artifacts.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/bench"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
)

// Artifact file names. Every run overwrites the previous run's artifacts.
const (
	VocabularyFile = "vocabulary.txt"
	StatsFile      = "vocabulary_stats.txt"
	ComparisonFile = "performance_comparison.txt"

	lockFile = ".corpusbench.lock"
)

// Writer renders and writes report artifacts into one output directory.
type Writer struct {
	dir    string
	logger *slog.Logger
}

func NewWriter(dir string) *Writer {
	return &Writer{
		dir:    dir,
		logger: slog.Default().With("component", "report"),
	}
}

// WriteAll writes the vocabulary, statistics, and performance comparison
// artifacts for a completed run and returns the artifact names written. The
// caller must only pass a comparison whose strategies agreed; this package
// never sees mismatched data.
func (w *Writer) WriteAll(cmp *bench.Comparison) ([]string, error) {
	if len(cmp.Runs) == 0 {
		return nil, apperrors.New(apperrors.ErrInternal, apperrors.ExitFailure, "comparison has no runs")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	lock := flock.New(filepath.Join(w.dir, lockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring output lock: %w", err)
	}
	if !locked {
		return nil, apperrors.Newf(apperrors.ErrLocked, apperrors.ExitFailure,
			"output directory %s is in use by another run", w.dir)
	}
	defer lock.Unlock()

	baseline := cmp.Runs[0].Stats
	artifacts := []struct {
		name string
		data []byte
	}{
		{VocabularyFile, renderVocabulary(cmp.Vocabulary)},
		{StatsFile, renderStats(baseline)},
		{ComparisonFile, renderComparison(cmp)},
	}

	written := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		if err := w.writeAtomic(artifact.name, artifact.data); err != nil {
			return written, apperrors.Newf(apperrors.ErrReportWrite, apperrors.ExitFailure,
				"writing %s: %v", artifact.name, err)
		}
		written = append(written, artifact.name)
	}

	w.logger.Info("report artifacts written",
		"run_id", cmp.RunID,
		"dir", w.dir,
		"artifacts", len(written),
	)
	return written, nil
}

// writeAtomic writes data to a temp file and renames it into place, so a
// crash mid-write never leaves a truncated artifact behind.
func (w *Writer) writeAtomic(name string, data []byte) error {
	finalPath := filepath.Join(w.dir, name)
	tmpPath := finalPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	f.Close()
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// renderVocabulary lists every distinct token, one per line, already sorted
// by the aggregator.
func renderVocabulary(vocab []string) []byte {
	var sb strings.Builder
	for _, word := range vocab {
		sb.WriteString(word)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func renderStats(stats aggregate.Stats) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total words: %d\n", stats.TotalWords)
	fmt.Fprintf(&sb, "Unique words: %d\n\n", stats.UniqueWords)
	fmt.Fprintf(&sb, "Top %d most common words:\n", len(stats.TopWords))
	for i, wc := range stats.TopWords {
		fmt.Fprintf(&sb, "%d. %s %d\n", i+1, wc.Word, wc.Count)
	}
	return []byte(sb.String())
}

func renderComparison(cmp *bench.Comparison) []byte {
	var sb strings.Builder
	baseline := cmp.Runs[0].Stats
	fastest := cmp.Fastest()

	sb.WriteString("CONCURRENCY PERFORMANCE COMPARISON REPORT\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Run ID: %s\n", cmp.RunID)
	fmt.Fprintf(&sb, "Files processed: %d\n", cmp.Files)
	fmt.Fprintf(&sb, "Worker pool size: %d\n", cmp.Workers)
	fmt.Fprintf(&sb, "Total words: %d\n", baseline.TotalWords)
	fmt.Fprintf(&sb, "Unique words: %d\n\n", baseline.UniqueWords)

	sb.WriteString("Strategy ranking (fastest to slowest):\n")
	sb.WriteString(strings.Repeat("-", 50) + "\n\n")
	for i, run := range cmp.Ranked {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, run.Strategy)
		fmt.Fprintf(&sb, "   Elapsed:    %.4fs\n", run.Elapsed.Seconds())
		fmt.Fprintf(&sb, "   Processing: %.4fs\n", run.Processing.Seconds())
		fmt.Fprintf(&sb, "   Overhead:   %.4fs\n", run.Overhead().Seconds())
		fmt.Fprintf(&sb, "   Words/sec:  %.0f\n", run.WordsPerSecond())
		fmt.Fprintf(&sb, "   Speed:      %s\n\n", speedLabel(run, fastest))
	}
	return []byte(sb.String())
}

// speedLabel renders a run's pace relative to the fastest run.
func speedLabel(run, fastest bench.StrategyRun) string {
	if run.Strategy == fastest.Strategy {
		return "1.00x (fastest)"
	}
	if fastest.Elapsed <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx slower", float64(run.Elapsed)/float64(fastest.Elapsed))
}
