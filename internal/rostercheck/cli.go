package rostercheck

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/mergington/pkg/logger"
)

// SetupLogging initializes the logger, writing to w (stdout when nil).
func SetupLogging(w io.Writer, verbose bool) error {
	if w == nil {
		w = os.Stdout
	}
	if err := logger.InitWithWriter(w); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the roster check tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Mergington Roster Check
=======================

Drives a running activities server through concurrent signup and remove
round trips and verifies every roster ends where it started.

Usage:
  go run ./cmd/roster-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -students int
        Number of students to generate (default 100)
  -workers int
        Number of concurrent workers (default 8)
  -timeout duration
        HTTP request timeout (default 10s)
  -activity string
        Only target this activity (default: all)
  -domain string
        Email domain for generated students (default "mergington.edu")
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/roster-check -students 500 -workers 32
  go run ./cmd/roster-check -activity "Chess Club" -verbose
`)
}
