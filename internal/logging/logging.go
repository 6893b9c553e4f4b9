// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"

	"github.com/phuslu/log"
)

// Config selects the log level and output format ("console" or "json").
type Config struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// New builds a logger writing to w.
func New(cfg Config, w io.Writer) log.Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger := log.Logger{
		Level:      log.ParseLevel(level),
		Caller:     1,
		TimeFormat: "2006-01-02T15:04:05Z07:00",
	}
	switch cfg.Format {
	case "json":
		logger.Writer = &log.IOWriter{Writer: w}
	default:
		logger.Writer = &log.ConsoleWriter{
			Writer:         w,
			ColorOutput:    w == os.Stderr,
			QuoteString:    true,
			EndWithMessage: true,
		}
	}
	return logger
}

// Setup installs a stderr logger as log.DefaultLogger.
func Setup(cfg Config) {
	log.DefaultLogger = New(cfg, os.Stderr)
}
