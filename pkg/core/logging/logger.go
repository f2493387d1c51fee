// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     logging
// Description: Key/value logger used by the workbench, the watcher and the
//              CLI on top of the structured Foundation logger
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package logging

import (
	thinglog "github.com/msto63/thing/foundation/core/log"
)

// Logger adds alternating key/value arguments to the Foundation logger
type Logger struct {
	*thinglog.Logger
	name string
}

// New creates a JSON logger at info level on stderr
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap adapts an existing Foundation logger, e.g. the one built by the CLI
// from the [general] config section
func Wrap(logger *thinglog.Logger, name string) *Logger {
	return &Logger{Logger: logger, name: name}
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a copy logging at level, given as in the config file
// (trace, debug, info, warn, error). Unknown names fall back to info.
func (l *Logger) WithLevel(level string) *Logger {
	return &Logger{
		Logger: l.Logger.WithLevel(parseLevel(level)),
		name:   l.name,
	}
}

// With returns a logger carrying the key/value pairs on every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		Logger: l.Logger.WithFields(toFields(keysAndValues...)),
		name:   l.name,
	}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs at info level
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs at warn level
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs at error level
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields pairs up keys and values. Non-string keys and a trailing key
// without a value are dropped.
func toFields(keysAndValues ...interface{}) thinglog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(thinglog.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
