// Package logging sets up the rotating log sink shared by all components.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Lakarti/archive-and-delete/internal/config"
)

// Logger is the logging surface components depend on. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Setup attaches a rotating sink exactly once. The zero value is ready to use.
type Setup struct {
	once   sync.Once
	logger *slog.Logger
	sink   io.WriteCloser
	err    error
}

var process Setup

// Init configures the process-wide sink on first call and returns the same
// logger on every later call; cfg is ignored after the first call.
func Init(cfg config.LoggingConfig) (*slog.Logger, error) {
	return process.Init(cfg)
}

// Close flushes and closes the process-wide sink.
func Close() error {
	return process.Close()
}

func (s *Setup) Init(cfg config.LoggingConfig) (*slog.Logger, error) {
	s.once.Do(func() {
		s.logger, s.sink, s.err = build(cfg)
	})
	return s.logger, s.err
}

func (s *Setup) Close() error {
	if s.sink == nil {
		return nil
	}
	return s.sink.Close()
}

func build(cfg config.LoggingConfig) (*slog.Logger, io.WriteCloser, error) {
	path, err := filepath.Abs(cfg.File)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving log path: %w", err)
	}

	// lumberjack opens lazily; open once here so a bad path fails startup
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	_ = f.Close()

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}

	var w io.Writer = sink
	if cfg.Stderr {
		w = io.MultiWriter(sink, os.Stderr)
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h), sink, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
