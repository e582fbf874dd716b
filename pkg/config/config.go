// Package config loads benchmark configuration from YAML files with
// environment-variable overrides. It provides typed structs for every
// subsystem (Corpus, Benchmark, Report, Logging, Metrics, Timing).
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	Report    ReportConfig    `yaml:"report"`
	Logging   LoggingConfig   `yaml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Timing    TimingConfig    `yaml:"timing"`
}

// CorpusConfig locates the input corpus.
type CorpusConfig struct {
	InputDir string `yaml:"inputDir"`
}

// BenchmarkConfig controls the execution strategies and the snapshot size.
type BenchmarkConfig struct {
	Workers            int `yaml:"workers"`
	MaxConcurrentFiles int `yaml:"maxConcurrentFiles"`
	TopN               int `yaml:"topN"`
}

// ReportConfig controls where the report artifacts are written.
type ReportConfig struct {
	OutputDir string `yaml:"outputDir"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus metrics server.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// TimingConfig controls whether the per-phase span tree is logged at run end.
type TimingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with sensible defaults for any
// missing values.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// defaultConfig returns a Config matching a checkout with a data/ corpus next
// to the binary.
func defaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			InputDir: "data",
		},
		Benchmark: BenchmarkConfig{
			Workers:            4,
			MaxConcurrentFiles: 64,
			TopN:               10,
		},
		Report: ReportConfig{
			OutputDir: "output",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
		},
		Timing: TimingConfig{
			Enabled: false,
		},
	}
}

// applyEnvOverrides reads CCB_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CCB_INPUT_DIR"); v != "" {
		cfg.Corpus.InputDir = v
	}
	if v := os.Getenv("CCB_OUTPUT_DIR"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := os.Getenv("CCB_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Benchmark.Workers = n
		}
	}
	if v := os.Getenv("CCB_MAX_CONCURRENT_FILES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Benchmark.MaxConcurrentFiles = n
		}
	}
	if v := os.Getenv("CCB_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Benchmark.TopN = n
		}
	}
	if v := os.Getenv("CCB_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CCB_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CCB_METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = enabled
		}
	}
	if v := os.Getenv("CCB_METRICS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Metrics.Port = port
		}
	}
	if v := os.Getenv("CCB_TIMING_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Timing.Enabled = enabled
		}
	}
}
