// Package strategy implements the three execution models that build the
// corpus frequency table: sequential, shared-memory threaded, and an isolated
// worker pool. All three consume the same file list and must produce
// identical statistics; they differ only in concurrency and isolation.
package strategy

import (
	"fmt"
	"strings"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/aggregate"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
)

// FileResult holds everything one worker extracted from a single corpus
// file. It is immutable once produced and consumed exactly once by the
// merging side. The JSON tags matter: the worker-pool strategy ships
// FileResults across its isolation boundary encoded.
type FileResult struct {
	Path      string        `json:"path"`
	Tokens    []string      `json:"tokens"`
	WordCount int           `json:"word_count"`
	Elapsed   time.Duration `json:"elapsed_ns"`
}

// FileError records one file that could not be read.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Outcome is what one strategy produced from one pass over the corpus.
// Failures lists files that could not be read; Stats and Vocabulary cover
// the files that succeeded.
type Outcome struct {
	Stats      aggregate.Stats
	Vocabulary []string
	Files      int
	Processing time.Duration
	Failures   []FileError
}

// Strategy runs one execution model over a fixed list of corpus files. A run
// always drains to completion or failure; there is no cancellation.
type Strategy interface {
	Name() string
	Process(paths []string) (*Outcome, error)
}

// failuresError folds per-file failures into one aggregated error, so a
// single bad file never hides the state of the other N-1.
func failuresError(name string, failures []FileError) error {
	if len(failures) == 0 {
		return nil
	}
	paths := make([]string, len(failures))
	for i, f := range failures {
		paths[i] = f.Path
	}
	return apperrors.Newf(apperrors.ErrFileAccess, apperrors.ExitFailure,
		"%s: %d unreadable file(s): %s", name, len(failures), strings.Join(paths, ", "))
}
