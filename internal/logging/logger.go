package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the process logger. It discards everything until one of the
	// Init functions runs.
	Logger = log.New(io.Discard)

	// logFile is the file handle for the TUI log file
	logFile *os.File
)

// InitCLI logs to w, at warn level unless verbose is set
func InitCLI(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	return Logger
}

// InitFile logs to dir/stash-<date>.log. The TUI uses it because the
// alternate screen owns the terminal.
func InitFile(dir string, verbose bool) (*log.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}

	logPath := filepath.Join(dir, fmt.Sprintf("stash-%s.log", time.Now().Format("2006-01-02")))

	var err error
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	Logger = log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})

	Logger.Info("stash started")
	return Logger, nil
}

// Close closes the log file, if any
func Close() {
	if logFile != nil {
		Logger.Info("stash shutting down")
		logFile.Close()
		logFile = nil
	}
	Logger = log.New(io.Discard)
}

// WithPrefix returns a logger with a prefix
func WithPrefix(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}
