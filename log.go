package main

import (
	"io"
	"os"
	"regexp"

	"github.com/rs/zerolog"
)

var (
	logger = newLogger(os.Stderr, false)

	rxTruthy = regexp.MustCompile(`^\s*(?i:t(?:rue)?|y(?:es)?|on|1)(?:\s+.*)?$`)
	rxFalsy  = regexp.MustCompile(`^\s*(?i:f(?:alse)?|no?|off|0)(?:\s+.*)?$`)
)

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	return zerolog.New(out).Level(level).With().Str("program", ProgramName).Logger()
}

// SetupLogger replaces the package logger.
func SetupLogger(w io.Writer, verbose bool) {
	logger = newLogger(w, verbose)
}

// Verbose output if wanted
func Verbose(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// Warn emits a warning.
func Warn(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

// Error emits an error.
func Error(err error) {
	logger.Error().Err(err).Msg("failed")
}

// ToBoolean converts passed string to boolean.
func ToBoolean(s string) bool {
	if rxTruthy.MatchString(s) {
		return true
	}
	if rxFalsy.MatchString(s) {
		return false
	}
	Warn("Ambiguous boolean \"%s\" found", s)
	return false
}
