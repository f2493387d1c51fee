// File: doc.go
// Title: Package Documentation
// Description: Package log provides structured logging for the thing toolchain.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial package documentation

// Package log provides structured, leveled logging with contextual fields.
//
// Loggers are immutable: WithField, WithFields, WithName and WithLevel
// return a derived logger and leave the receiver untouched, so a logger
// can be shared between goroutines and specialised per component:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	parserLog := logger.WithField("component", "thing-parser")
//	parserLog.Debug("Parse completed", log.Fields{"nodes": 12})
//
// Two output formats are available. FormatJSON writes one object per line
// and suits services; FormatText writes a single human readable line and
// suits terminals. Errors created by foundation/core/error are logged with
// their code and severity through LogError.
package log
