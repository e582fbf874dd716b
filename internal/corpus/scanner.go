// Package corpus locates the input files for a benchmark run.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
)

// ListTextFiles returns the sorted paths of every .txt file directly inside
// dir. The scan is not recursive. A missing or unreadable directory, or a
// directory with no .txt files at all, is a configuration problem: the
// benchmark has nothing meaningful to measure, so no run should start.
func ListTextFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w",
			apperrors.Newf(apperrors.ErrConfig, apperrors.ExitConfig, "%s: %v", dir, err))
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, apperrors.Newf(apperrors.ErrNoInput, apperrors.ExitConfig, "no .txt files in %s", dir)
	}
	return paths, nil
}
