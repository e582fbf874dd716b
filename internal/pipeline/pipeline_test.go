package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/report"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/metrics"
)

func testConfig(inputDir, outputDir string) *config.Config {
	return &config.Config{
		Corpus:    config.CorpusConfig{InputDir: inputDir},
		Benchmark: config.BenchmarkConfig{Workers: 4, MaxConcurrentFiles: 8, TopN: 10},
		Report:    config.ReportConfig{OutputDir: outputDir},
		Logging:   config.LoggingConfig{Level: "info", Format: "text"},
	}
}

func writeCorpus(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func canonicalCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeCorpus(t, dir, map[string]string{
		"a.txt": "The cat sat. The dog ran!",
		"b.txt": "A CAT runs; a DOG sat.",
	})
	return dir
}

func TestPipelineRunWritesArtifacts(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(canonicalCorpus(t), out)

	cmp, err := New(cfg, nil).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if cmp.Files != 2 {
		t.Errorf("Files = %d, want 2", cmp.Files)
	}
	if cmp.Workers != 4 {
		t.Errorf("Workers = %d, want 4 from config", cmp.Workers)
	}

	vocab, err := os.ReadFile(filepath.Join(out, report.VocabularyFile))
	if err != nil {
		t.Fatalf("reading vocabulary: %v", err)
	}
	if got, want := string(vocab), "a\ncat\ndog\nran\nruns\nsat\nthe\n"; got != want {
		t.Errorf("vocabulary = %q, want %q", got, want)
	}

	stats, err := os.ReadFile(filepath.Join(out, report.StatsFile))
	if err != nil {
		t.Fatalf("reading stats: %v", err)
	}
	for _, want := range []string{"Total words: 12", "Unique words: 7"} {
		if !strings.Contains(string(stats), want) {
			t.Errorf("stats missing %q:\n%s", want, stats)
		}
	}

	perf, err := os.ReadFile(filepath.Join(out, report.ComparisonFile))
	if err != nil {
		t.Fatalf("reading comparison: %v", err)
	}
	for _, want := range []string{
		"Run ID: " + cmp.RunID,
		"Worker pool size: 4",
		"1.00x (fastest)",
	} {
		if !strings.Contains(string(perf), want) {
			t.Errorf("comparison missing %q:\n%s", want, perf)
		}
	}
}

func TestPipelineMissingInputDir(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "out"))

	_, err := New(cfg, nil).Run()
	if !errors.Is(err, apperrors.ErrConfig) {
		t.Fatalf("err = %v, want ErrConfig", err)
	}
	if code := apperrors.ExitCodeFor(err); code != apperrors.ExitConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitConfig)
	}
	if !strings.Contains(err.Error(), "input_dir") {
		t.Errorf("error %q does not name the failing check", err)
	}
}

func TestPipelineEmptyCorpus(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(t.TempDir(), out)

	_, err := New(cfg, nil).Run()
	if !errors.Is(err, apperrors.ErrNoInput) {
		t.Fatalf("err = %v, want ErrNoInput", err)
	}
	if code := apperrors.ExitCodeFor(err); code != apperrors.ExitConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitConfig)
	}
	if _, err := os.Stat(filepath.Join(out, report.VocabularyFile)); !os.IsNotExist(err) {
		t.Errorf("no artifacts should be written for an empty corpus, stat err = %v", err)
	}
}

func TestPipelineUnreadableFileAbortsRun(t *testing.T) {
	in := t.TempDir()
	writeCorpus(t, in, map[string]string{
		"alpha.txt": "alpha words here",
		"gamma.txt": "gamma words here",
	})
	// dangling symlink: listed by the scanner, unreadable by every strategy.
	if err := os.Symlink(filepath.Join(in, "void"), filepath.Join(in, "broken.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	out := filepath.Join(t.TempDir(), "out")
	cfg := testConfig(in, out)

	cmp, err := New(cfg, nil).Run()
	if cmp != nil {
		t.Errorf("comparison = %+v, want nil on aborted run", cmp)
	}
	if !errors.Is(err, apperrors.ErrFileAccess) {
		t.Fatalf("err = %v, want ErrFileAccess", err)
	}
	if code := apperrors.ExitCodeFor(err); code != apperrors.ExitFailure {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitFailure)
	}
	if _, err := os.Stat(filepath.Join(out, report.VocabularyFile)); !os.IsNotExist(err) {
		t.Errorf("artifacts must not be written for a failed run, stat err = %v", err)
	}
}

func TestPipelineTimingEnabled(t *testing.T) {
	cfg := testConfig(canonicalCorpus(t), filepath.Join(t.TempDir(), "out"))
	cfg.Timing.Enabled = true

	if _, err := New(cfg, nil).Run(); err != nil {
		t.Fatalf("Run with timing enabled: %v", err)
	}
}

func TestPipelineRecordsMetrics(t *testing.T) {
	cfg := testConfig(canonicalCorpus(t), filepath.Join(t.TempDir(), "out"))
	m := metrics.New()

	if _, err := New(cfg, m).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := testutil.ToFloat64(m.RunsTotal); got != 1 {
		t.Errorf("benchmark_runs_total = %v, want 1", got)
	}
	for _, name := range []string{"sequential", "threaded", "workerpool"} {
		if got := testutil.ToFloat64(m.FilesProcessedTotal.WithLabelValues(name)); got != 2 {
			t.Errorf("files_processed{%s} = %v, want 2", name, got)
		}
		if got := testutil.ToFloat64(m.WordsProcessedTotal.WithLabelValues(name)); got != 12 {
			t.Errorf("words_processed{%s} = %v, want 12", name, got)
		}
	}
	if got := testutil.ToFloat64(m.ReportWritesTotal.WithLabelValues(report.VocabularyFile)); got != 1 {
		t.Errorf("report_writes{vocabulary.txt} = %v, want 1", got)
	}
}
