// Package errors defines the error kinds shared across the benchmark pipeline
// and maps them to process exit codes.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrFileAccess  = errors.New("file access failed")
	ErrNoInput     = errors.New("no input files")
	ErrConfig      = errors.New("invalid configuration")
	ErrConsistency = errors.New("strategy results inconsistent")
	ErrReportWrite = errors.New("report write failed")
	ErrLocked      = errors.New("output directory locked")
	ErrInternal    = errors.New("internal error")
)

// Exit codes returned by the corpusbench CLI.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitConfig      = 2
	ExitConsistency = 3
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCodeFor maps an error to the CLI exit code. Configuration problems and
// consistency failures get distinct codes so scripts can tell an empty input
// directory apart from a concurrency bug.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrNoInput), errors.Is(err, ErrConfig):
		return ExitConfig
	case errors.Is(err, ErrConsistency):
		return ExitConsistency
	default:
		return ExitFailure
	}
}
