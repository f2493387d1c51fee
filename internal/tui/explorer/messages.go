// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea messages of the explorer
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package explorer

// sourceLoadedMsg carries a freshly loaded source text
type sourceLoadedMsg struct {
	source string
	err    error
}

// SourceChangedMsg asks the explorer to reload its source, e.g. after a
// file watcher fired
type SourceChangedMsg struct{}
