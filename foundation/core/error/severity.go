// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels used to pick the log level of an error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers bad user input such as syntax errors
	SeverityLow Severity = iota

	// SeverityMedium covers recoverable failures
	SeverityMedium

	// SeverityHigh covers failures that stop a command or request
	SeverityHigh

	// SeverityCritical covers failures that stop the process
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeSyntax, CodeInvalidInput, CodeNotFound, CodeInputTooLarge:
		return SeverityLow
	case CodeConfigError, CodeInvalidConfig, CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
