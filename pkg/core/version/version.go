// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     version
// Description: Central version management for the toolchain components
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

// Version constants for all thing components
const (
	// Platform version
	Platform = "0.1.0"

	// Component versions
	Grammar   = "0.1.0"
	CLI       = "0.1.0"
	Workbench = "0.1.0"
	Explorer  = "0.1.0"
)

// Build information, set via -ldflags
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Service returns the version for a given component name
func Service(name string) string {
	switch name {
	case "grammar", "parser", "lexer":
		return Grammar
	case "cli", "thing":
		return CLI
	case "workbench":
		return Workbench
	case "explorer":
		return Explorer
	default:
		return Platform
	}
}
