package main

import (
	"os"

	"github.com/charmbracelet/log"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `help:"Log level for timing diagnostics" default:"info" enum:"debug,info,warn,error"`
	Quiet    bool   `short:"q" help:"Only print errors"`
}

// Logger returns the stderr logger configured from the global flags.
func (g *Globals) Logger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "noiseforge",
	})

	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if g.Quiet {
		level = log.ErrorLevel
	}
	logger.SetLevel(level)

	return logger
}
