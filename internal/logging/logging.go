// Package logging builds the structured logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/l"
)

// Config selects where and how log records are written.
type Config struct {
	Output io.Writer
	// File, when set, takes precedence over Output and is opened for append.
	File    string
	JSON    bool
	Verbose bool
}

// Sink is the subset of l.Logger this package writes to.
type Sink interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Close() error
}

// Logger drops Debug records unless verbose output was requested.
type Logger struct {
	inner   Sink
	verbose bool
	file    *os.File
}

// New creates a Logger from cfg. The caller must Close it.
func New(cfg Config) (*Logger, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	var file *os.File
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		file = f
		output = f
	}

	level := l.LevelInfo
	if cfg.Verbose {
		level = l.LevelDebug
	}
	inner, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		MinLevel:    level,
		JsonFormat:  cfg.JSON,
		BufferSize:  64 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  3,
	})
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	lg := Wrap(inner, cfg.Verbose)
	lg.file = file
	return lg, nil
}

// Wrap adapts an existing sink such as an l.Logger.
func Wrap(inner Sink, verbose bool) *Logger {
	return &Logger{inner: inner, verbose: verbose}
}

func (lg *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if !lg.verbose {
		return
	}
	lg.inner.Debug(msg, keysAndValues...)
}

func (lg *Logger) Info(msg string, keysAndValues ...interface{}) {
	lg.inner.Info(msg, keysAndValues...)
}

func (lg *Logger) Warn(msg string, keysAndValues ...interface{}) {
	lg.inner.Warn(msg, keysAndValues...)
}

func (lg *Logger) Error(msg string, keysAndValues ...interface{}) {
	lg.inner.Error(msg, keysAndValues...)
}

// Close flushes the logger and closes the log file, if any.
func (lg *Logger) Close() error {
	err := lg.inner.Close()
	if lg.file != nil {
		if cerr := lg.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
