// =============================================================================
// docctl - Logging Setup
// =============================================================================
//
// Builds the slog.Logger used throughout a run. Records go to both the
// console and a log file under the project's Logs directory. The logger is
// passed into every component that needs one - there is no package-level
// logging state, which keeps the core logic testable against a discard
// logger.
//
// =============================================================================

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New creates a logger writing to stdout and to logPath (appended, created
// along with its parent directory if needed). The returned closer releases
// the log file.
func New(logPath string, verbose bool) (*slog.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler), file.Close, nil
}

// Discard returns a logger that drops every record. Used by tests and dry
// runs that only care about the returned diagnostics.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
