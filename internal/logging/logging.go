// Package logging builds the structured logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeanpaul/sagepkm/internal/config"
)

// NopCloser is the Closer returned for sinks the logger does not own.
type NopCloser struct{}

func (NopCloser) Close() error { return nil }

// New returns a logger writing to cfg.File, or to stderr when no file is
// configured. The returned Closer releases the file.
func New(cfg config.LogConfig) (*log.Logger, io.Closer, error) {
	if cfg.File == "" {
		return NewWithWriter(os.Stderr, cfg.Level)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", cfg.File, err)
	}

	logger, _, err := NewWithWriter(f, cfg.Level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// NewWithWriter returns a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		Prefix:          "sagepkm",
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return logger, NopCloser{}, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
