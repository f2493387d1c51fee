// File: diagnostic.go
// Title: Parse Diagnostics
// Description: Locates the error nodes of a parse tree in the source text
//              and renders them with line, column and a caret marker.
//              Collection and rendering only read the tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial diagnostic collection and rendering

package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/thing/foundation/thing/lexer"
	"github.com/msto63/thing/foundation/thing/parser"
)

// Diagnostic describes one error node. Line and Column are 1-based; Column
// counts bytes from the start of the line.
type Diagnostic struct {
	Kind     parser.ErrorKind
	Message  string
	Offset   int
	Line     int
	Column   int
	LineText string
	Token    lexer.Token
	Expected lexer.Category
}

// String returns the single line form "line:column: message"
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

// Collect returns one diagnostic per error node reachable from root, in
// depth-first pre-order. Tokens must be slices of source.
func Collect(source string, root *parser.Node) []Diagnostic {
	var diags []Diagnostic
	for _, n := range parser.Errors(root) {
		diags = append(diags, locate(source, n))
	}
	return diags
}

// Message returns the human readable text for an error node
func Message(n *parser.Node) string {
	switch n.Err {
	case parser.ErrWrongTokenType:
		return fmt.Sprintf("`%s` expected", n.Expected)
	case parser.ErrUnexpectedInfixToken:
		return fmt.Sprintf("unexpected infix operation: `%s`", n.Token.Match)
	case parser.ErrUnexpectedPrefixToken:
		return fmt.Sprintf("unexpected prefix operation: `%s`", n.Token.Match)
	default:
		return ""
	}
}

func locate(source string, n *parser.Node) Diagnostic {
	offset := len(source) - len(n.Token.Match) - len(n.Token.Remainder)
	if offset < 0 || offset > len(source) {
		offset = len(source)
	}

	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	lineEnd := strings.IndexByte(source[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += offset
	}

	return Diagnostic{
		Kind:     n.Err,
		Message:  Message(n),
		Offset:   offset,
		Line:     strings.Count(source[:offset], "\n") + 1,
		Column:   offset - lineStart + 1,
		LineText: strings.TrimSuffix(source[lineStart:lineEnd], "\r"),
		Token:    n.Token,
		Expected: n.Expected,
	}
}

// Options controls rendering
type Options struct {
	// Color styles the header and caret for terminals
	Color bool
}

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#94A3B8")

	headerStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	caretStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	sourceStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Render writes each diagnostic as a header line, the offending source
// line and a caret under the column, separated by blank lines.
func Render(w io.Writer, diags []Diagnostic, opts Options) error {
	for _, d := range diags {
		header := fmt.Sprintf("Error parsing string (%d,%d): %s", d.Line, d.Column, d.Message)
		line := d.LineText
		caret := caretPadding(d.LineText, d.Column) + "^"

		if opts.Color {
			header = headerStyle.Render(header)
			line = sourceStyle.Render(line)
			caret = caretStyle.Render(caret)
		}

		if _, err := fmt.Fprintf(w, "%s\n\n%s\n%s\n\n", header, line, caret); err != nil {
			return err
		}
	}
	return nil
}

// RenderString returns the Render output as a string
func RenderString(diags []Diagnostic, opts Options) string {
	var sb strings.Builder
	_ = Render(&sb, diags, opts)
	return sb.String()
}

// caretPadding keeps tabs from the line prefix so the caret lines up
func caretPadding(lineText string, column int) string {
	n := column - 1
	if n > len(lineText) {
		n = len(lineText)
	}
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if lineText[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	for i := n; i < column-1; i++ {
		sb.WriteByte(' ')
	}
	return sb.String()
}

// Summary returns a one line count of the diagnostics
func Summary(diags []Diagnostic) string {
	switch len(diags) {
	case 0:
		return "no errors"
	case 1:
		return "1 error"
	default:
		return fmt.Sprintf("%d errors", len(diags))
	}
}
