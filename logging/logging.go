// Package logging builds the process zerolog logger for the chunkgrid tools
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/chunkgrid/config"
)

const (
	logFileName = "chunkgrid.log"
	maxLogSize  = 10 * 1024 * 1024 // rotate past 10MB
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing JSON lines to <LogDir>/chunkgrid.log
// Logging is off unless Debug is set; the TUI owns stdout, so nothing goes to the console.
// The returned closer must be closed on exit.
func New(cfg config.Config) (zerolog.Logger, io.Closer, error) {
	if !cfg.Debug {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return zerolog.Nop(), nopCloser{}, eris.Wrapf(err, "create log dir %s", cfg.LogDir)
	}

	logPath := filepath.Join(cfg.LogDir, logFileName)
	if err := rotate(logPath); err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, eris.Wrapf(err, "open log file %s", logPath)
	}

	logger := zerolog.New(f).Level(cfg.Level()).With().Timestamp().Logger()
	logger.Info().Str("log_level", cfg.Level().String()).Msg("logging started")
	return logger, f, nil
}

// NewConsole writes human-readable output to w, for headless tools
func NewConsole(cfg config.Config, w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(cfg.Level()).
		With().Timestamp().Logger()
}

// rotate renames an oversized log with a timestamp suffix
func rotate(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil || info.Size() <= maxLogSize {
		return nil
	}
	ext := filepath.Ext(logPath)
	rotated := fmt.Sprintf("%s.%s%s", logPath[:len(logPath)-len(ext)], time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(logPath, rotated); err != nil {
		return eris.Wrapf(err, "rotate %s", logPath)
	}
	return nil
}
