// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     cache
// Description: Content addressed keys for cached analysis results
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// SourceKey derives a cache key from an operation, a grammar rule and the
// source text. Sources are hashed so keys stay small for large inputs.
func SourceKey(operation, rule, source string) string {
	hash := sha256.Sum256([]byte(source))
	return operation + ":" + rule + ":" + hex.EncodeToString(hash[:16])
}
