// File: codes.go
// Title: Error Code Definitions
// Description: Defines error codes for classifying failures across the
//              CLI, the workbench service and the configuration layer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial error codes

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Input and source handling
	CodeIOError       Code = "IO_ERROR"
	CodeSyntax        Code = "SYNTAX"
	CodeInputTooLarge Code = "INPUT_TOO_LARGE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeConfigError, CodeInvalidConfig,
		CodeIOError, CodeSyntax, CodeInputTooLarge:
		return true
	default:
		return false
	}
}

// HTTPStatus returns the HTTP status code used when the error crosses the
// workbench API
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput, CodeSyntax:
		return http.StatusBadRequest
	case CodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// ExitCode returns the process exit status used by the command line tool
func (c Code) ExitCode() int {
	switch c {
	case CodeSyntax:
		return 1
	case CodeInvalidInput, CodeNotFound, CodeIOError, CodeInputTooLarge:
		return 2
	case CodeConfigError, CodeInvalidConfig:
		return 3
	default:
		return 4
	}
}
