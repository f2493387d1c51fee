// File: doc.go
// Title: Package Documentation
// Description: Package error provides coded errors for the thing toolchain.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial package documentation

// Package error provides structured errors carrying a code, a severity,
// the failing operation and free-form details. Errors compose with the
// standard errors package through Unwrap:
//
//	err := error.Wrap(ioErr, "read source").
//		WithCode(error.CodeIOError).
//		WithOperation("input.Read")
//
// Grammar errors found by the parser are not Go errors; they live in the
// parse tree. This package covers the failures around parsing: missing
// files, invalid configuration, oversized requests and the summary error
// returned when a checked source contains syntax errors.
package error
