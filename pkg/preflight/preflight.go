// Package preflight validates the run environment before any corpus work
// starts. Named checks run concurrently and produce an aggregate Report; the
// pipeline refuses to benchmark when any check is down.
package preflight

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Status represents the outcome of a check or the run environment overall.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Check is a function that probes one precondition and returns its status.
type Check func(ctx context.Context) CheckResult

// CheckResult holds the result of a single check.
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Report is the aggregated result of all checks.
type Report struct {
	Status    Status                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// Checker manages registered checks and runs them concurrently.
type Checker struct {
	checks map[string]Check
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewChecker creates an empty Checker.
func NewChecker() *Checker {
	return &Checker{
		checks: make(map[string]Check),
		logger: slog.Default().With("component", "preflight"),
	}
}

// Register adds a named check.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Run executes all registered checks concurrently and returns an aggregated
// Report. The overall status is the worst status among all checks.
func (c *Checker) Run(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]Check, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()
	report := Report{
		Status:    StatusUp,
		Checks:    make(map[string]CheckResult, len(checks)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, check := range checks {
		wg.Add(1)
		go func(n string, ch Check) {
			defer wg.Done()
			start := time.Now()
			result := ch(ctx)
			result.Latency = time.Since(start).Round(time.Millisecond).String()
			mu.Lock()
			report.Checks[n] = result
			mu.Unlock()
		}(name, check)
	}
	wg.Wait()
	for _, res := range report.Checks {
		switch res.Status {
		case StatusDown:
			report.Status = StatusDown
			return report
		case StatusDegraded:
			report.Status = StatusDegraded
		}
	}
	return report
}

// InputDir returns a check that the corpus directory exists and is readable.
func InputDir(dir string) Check {
	return func(ctx context.Context) CheckResult {
		info, err := os.Stat(dir)
		if err != nil {
			return CheckResult{Status: StatusDown, Message: err.Error()}
		}
		if !info.IsDir() {
			return CheckResult{Status: StatusDown, Message: fmt.Sprintf("%s is not a directory", dir)}
		}
		if _, err := os.ReadDir(dir); err != nil {
			return CheckResult{Status: StatusDown, Message: err.Error()}
		}
		return CheckResult{Status: StatusUp}
	}
}

// OutputDir returns a check that the report directory is writable, creating it
// if missing. A created directory reports degraded so the log records it.
func OutputDir(dir string) Check {
	return func(ctx context.Context) CheckResult {
		created := false
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return CheckResult{Status: StatusDown, Message: err.Error()}
			}
			created = true
		}
		probe, err := os.CreateTemp(dir, ".preflight-*")
		if err != nil {
			return CheckResult{Status: StatusDown, Message: err.Error()}
		}
		probe.Close()
		os.Remove(probe.Name())
		if created {
			return CheckResult{Status: StatusDegraded, Message: fmt.Sprintf("created %s", dir)}
		}
		return CheckResult{Status: StatusUp}
	}
}
