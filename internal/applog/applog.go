// Package applog builds the structured logger shared by the demo programs.
package applog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ausocean/utils/logging"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation.
const (
	logMaxSize   = 50 // MB
	logMaxBackup = 3
	logMaxAge    = 28 // days
	logSuppress  = false
)

// ParseLevel maps a level name (debug, info, warning, error, fatal) to a
// logging level.
func ParseLevel(s string) (int8, error) {
	switch strings.ToLower(s) {
	case "debug":
		return logging.Debug, nil
	case "info", "":
		return logging.Info, nil
	case "warning", "warn":
		return logging.Warning, nil
	case "error":
		return logging.Error, nil
	case "fatal":
		return logging.Fatal, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// New returns a logger writing to stderr and, if path is non-empty, to a
// rotated log file at path. The returned closer releases the file.
func New(level, path string) (logging.Logger, io.Closer, error) {
	return newLogger(level, path, os.Stderr)
}

func newLogger(level, path string, stderr io.Writer) (logging.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return logging.New(lvl, stderr, logSuppress), nopCloser{}, nil
	}
	fileLog := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	return logging.New(lvl, io.MultiWriter(stderr, fileLog), logSuppress), fileLog, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
