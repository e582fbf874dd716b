package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/bench"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/internal/report"
	"github.com/Adithya-Monish-Kumar-K/Corpus-Concurrency-Benchmark/pkg/config"
)

func printBanner(cfg *config.Config) {
	fmt.Println("=== Corpus Concurrency Benchmark ===")
	fmt.Printf("Corpus:   %s\n", cfg.Corpus.InputDir)
	fmt.Printf("Output:   %s\n", cfg.Report.OutputDir)
	fmt.Printf("Workers:  %d\n", cfg.Benchmark.Workers)
	fmt.Printf("Top N:    %d\n", cfg.Benchmark.TopN)
	fmt.Println()
}

func printSummary(cmp *bench.Comparison, outputDir string) {
	fastest := cmp.Fastest()

	fmt.Println()
	fmt.Println("=== Results ===")
	fmt.Printf("Files:        %s\n", humanize.Comma(int64(cmp.Files)))
	fmt.Printf("Total words:  %s\n", humanize.Comma(int64(fastest.Stats.TotalWords)))
	fmt.Printf("Unique words: %s\n", humanize.Comma(int64(fastest.Stats.UniqueWords)))
	fmt.Printf("Fastest:      %s (%s)\n", fastest.Strategy, fastest.Elapsed.Round(time.Microsecond))
	fmt.Println()

	fmt.Println("=== Strategy ranking ===")
	renderRankingTable(cmp)
	fmt.Println()

	fmt.Println("=== Top words ===")
	for i, wc := range fastest.Stats.TopWords {
		fmt.Printf("%2d. %-15s %s\n", i+1, wc.Word, humanize.Comma(int64(wc.Count)))
	}
	fmt.Println()
	fmt.Printf("Report written to %s (%s, %s, %s)\n",
		outputDir, report.VocabularyFile, report.StatsFile, report.ComparisonFile)
}

func renderRankingTable(cmp *bench.Comparison) {
	fastest := cmp.Fastest()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Strategy", "Elapsed", "Processing", "Overhead", "Words/sec", "Speed"})
	for i, run := range cmp.Ranked {
		speed := "1.00x"
		if run.Strategy != fastest.Strategy && fastest.Elapsed > 0 {
			speed = fmt.Sprintf("%.2fx", float64(run.Elapsed)/float64(fastest.Elapsed))
		}
		t.AppendRow(table.Row{
			i + 1,
			run.Strategy,
			run.Elapsed.Round(time.Microsecond).String(),
			run.Processing.Round(time.Microsecond).String(),
			run.Overhead().Round(time.Microsecond).String(),
			humanize.Comma(int64(run.WordsPerSecond())),
			speed,
		})
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		t.SetStyle(table.StyleRounded)
	}
	t.Render()
}
