package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/pipeline"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	inputDir := flag.String("input", "", "corpus directory, overrides config")
	outputDir := flag.String("output", "", "report directory, overrides config")
	workers := flag.Int("workers", 0, "worker pool size, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(apperrors.ExitConfig)
	}
	if *inputDir != "" {
		cfg.Corpus.InputDir = *inputDir
	}
	if *outputDir != "" {
		cfg.Report.OutputDir = *outputDir
	}
	if *workers > 0 {
		cfg.Benchmark.Workers = *workers
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting corpus benchmark",
		"input_dir", cfg.Corpus.InputDir,
		"output_dir", cfg.Report.OutputDir,
		"workers", cfg.Benchmark.Workers,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		shutdown := metrics.StartServer(cfg.Metrics.Port)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			shutdown(ctx)
		}()
	}

	printBanner(cfg)

	cmp, err := pipeline.New(cfg, m).Run()
	if err != nil {
		slog.Error("benchmark failed", "error", err)
		fmt.Fprintf(os.Stderr, "corpusbench: %v\n", err)
		os.Exit(apperrors.ExitCodeFor(err))
	}

	printSummary(cmp, cfg.Report.OutputDir)
}
