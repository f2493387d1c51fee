// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     service
// Description: JSON transfer objects for analysis results
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package service

import (
	"github.com/msto63/thing/foundation/thing/diag"
	"github.com/msto63/thing/foundation/thing/lexer"
	"github.com/msto63/thing/foundation/thing/parser"
)

// TreeNode is the JSON form of a parse node
type TreeNode struct {
	Category string      `json:"category"`
	Text     string      `json:"text"`
	Offset   int         `json:"offset"`
	Error    string      `json:"error,omitempty"`
	Expected string      `json:"expected,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// TokenDTO is the JSON form of a token
type TokenDTO struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Offset   int    `json:"offset"`
	Length   int    `json:"length"`
}

// DiagnosticDTO is the JSON form of a diagnostic
type DiagnosticDTO struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
	LineText string `json:"line_text"`
	Token    string `json:"token"`
	Expected string `json:"expected,omitempty"`
}

// offset returns the byte position of tok within source
func offset(source string, tok lexer.Token) int {
	return len(source) - len(tok.Match) - len(tok.Remainder)
}

// NewTreeNode converts a parse tree rooted at n
func NewTreeNode(source string, n *parser.Node) *TreeNode {
	if n == nil {
		return nil
	}

	out := &TreeNode{
		Category: n.Token.Category.Name(),
		Text:     n.Token.Match,
		Offset:   offset(source, n.Token),
	}
	if n.IsError() {
		out.Error = n.Err.String()
		if n.Err == parser.ErrWrongTokenType {
			out.Expected = n.Expected.Name()
		}
	}
	for _, child := range n.Children {
		out.Children = append(out.Children, NewTreeNode(source, child))
	}
	return out
}

// NewTokenDTOs converts a token stream
func NewTokenDTOs(source string, tokens []lexer.Token) []TokenDTO {
	out := make([]TokenDTO, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenDTO{
			Category: tok.Category.Name(),
			Text:     tok.Match,
			Offset:   offset(source, tok),
			Length:   len(tok.Match),
		})
	}
	return out
}

// NewDiagnosticDTOs converts diagnostics
func NewDiagnosticDTOs(diags []diag.Diagnostic) []DiagnosticDTO {
	out := make([]DiagnosticDTO, 0, len(diags))
	for _, d := range diags {
		dto := DiagnosticDTO{
			Kind:     d.Kind.String(),
			Message:  d.Message,
			Line:     d.Line,
			Column:   d.Column,
			Offset:   d.Offset,
			LineText: d.LineText,
			Token:    d.Token.Match,
		}
		if d.Kind == parser.ErrWrongTokenType {
			dto.Expected = d.Expected.Name()
		}
		out = append(out, dto)
	}
	return out
}
