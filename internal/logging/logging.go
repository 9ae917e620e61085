// Package logging builds the process logger from configuration.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"mediaUserApp/internal/config"
)

// New returns a logger configured from cfg. When cfg.File is set the output
// is a size-rotated file; otherwise w is used.
func New(cfg config.LogConfig, w io.Writer) (*log.Logger, error) {
	l := log.New()
	level, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		return nil, err
	}
	l.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if cfg.File != "" {
		l.SetOutput(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
	} else if w != nil {
		l.SetOutput(w)
	}
	return l, nil
}

// Discard returns a logger that drops everything. Used when callers pass nil.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

// OrDiscard returns fl, or a discard logger when fl is nil.
func OrDiscard(fl log.FieldLogger) log.FieldLogger {
	if fl == nil {
		return Discard()
	}
	return fl
}
