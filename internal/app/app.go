// Package app holds the start-up and shutdown plumbing shared by the demo
// programs: common flags, logging, persisted trackbar values and exit codes.
package app

import (
	"flag"
	"fmt"
	"io"
	"os"

	"visionlab/internal/applog"
	"visionlab/internal/prefs"

	"github.com/ausocean/utils/logging"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitUsage = 1 // Missing or invalid arguments
	ExitInput = 2 // An input file could not be opened
)

// Options are the flags every demo accepts.
type Options struct {
	Level   string
	LogPath string
	NoPrefs bool
}

// RegisterFlags adds the common flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Options {
	o := &Options{}
	fs.StringVar(&o.Level, "v", "info", "Log level: debug, info, warning, error")
	fs.StringVar(&o.LogPath, "log", "", "Also log to this file (rotated)")
	fs.BoolVar(&o.NoPrefs, "noprefs", false, "Do not load or save trackbar values")
	return o
}

// Env is the running environment of one demo.
type Env struct {
	Program string
	Log     logging.Logger
	Prefs   *prefs.Prefs

	logCloser io.Closer
}

// Start builds the logger and loads the preferences of program.
func Start(program string, o *Options) (*Env, error) {
	log, closer, err := applog.New(o.Level, o.LogPath)
	if err != nil {
		return nil, err
	}
	e := &Env{Program: program, Log: log, logCloser: closer}
	if o.NoPrefs {
		e.Prefs = prefs.Memory()
	} else {
		e.Prefs = prefs.Load(program)
	}
	log.Debug("started", "program", program, "prefs", !o.NoPrefs)
	return e, nil
}

// Close saves the preferences and closes the log file.
func (e *Env) Close() {
	if err := e.Prefs.Save(); err != nil {
		e.Log.Warning("could not save preferences", "error", err)
	}
	e.logCloser.Close()
}

// Usage prints msg and the flag defaults to stderr and exits with
// ExitUsage.
func Usage(fs *flag.FlagSet, msg string) {
	fmt.Fprintln(os.Stderr, msg)
	fs.PrintDefaults()
	os.Exit(ExitUsage)
}

// Exit closes e, logs msg as an error and exits with code.
func (e *Env) Exit(code int, msg string, args ...interface{}) {
	e.Log.Error(msg, args...)
	e.Close()
	os.Exit(code)
}
