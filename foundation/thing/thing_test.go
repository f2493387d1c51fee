// File: thing_test.go
// Title: Thing Engine Tests
// Description: Tests for engine modes, size limits, cancellation and the
//              syntax check error.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine tests

package thing

import (
	"context"
	"strings"
	"testing"

	thingerror "github.com/msto63/thing/foundation/core/error"
	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/foundation/thing/lexer"
)

func newTestEngine(maxLen int) *Engine {
	return NewEngine(Options{Logger: thinglog.Discard(), MaxInputLength: maxLen})
}

func TestEngine_ParseModes(t *testing.T) {
	engine := newTestEngine(0)
	ctx := context.Background()

	tests := []struct {
		mode     Mode
		source   string
		rootText string
		errors   int
	}{
		{ModeExpression, "5 * 2 + 4 / 3", "+", 0},
		{ModeStatement, "x + 1", "", 1},
		{ModeStatement, "x + 1;", "+", 0},
		{ModeProgram, "a; b;", "", 0},
		{"", "a;", "", 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode)+" "+tt.source, func(t *testing.T) {
			result, err := engine.Parse(ctx, tt.source, tt.mode)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if result.Root.Text() != tt.rootText {
				t.Errorf("root = %q, want %q", result.Root.Text(), tt.rootText)
			}
			if len(result.Diagnostics) != tt.errors {
				t.Errorf("diagnostics = %d, want %d", len(result.Diagnostics), tt.errors)
			}
		})
	}

	if _, err := engine.Parse(ctx, "x", Mode("bogus")); !thingerror.HasCode(err, thingerror.CodeInvalidInput) {
		t.Errorf("unknown mode error = %v", err)
	}
}

func TestEngine_InputLimit(t *testing.T) {
	engine := newTestEngine(8)
	_, err := engine.Parse(context.Background(), strings.Repeat("a", 9), ModeProgram)
	if !thingerror.HasCode(err, thingerror.CodeInputTooLarge) {
		t.Fatalf("Parse() error = %v, want INPUT_TOO_LARGE", err)
	}
	if _, err := engine.Tokenize(context.Background(), strings.Repeat("a", 9)); err == nil {
		t.Error("Tokenize() should enforce the limit too")
	}
	if _, err := engine.Parse(context.Background(), "a;", ModeProgram); err != nil {
		t.Errorf("small input rejected: %v", err)
	}
}

func TestEngine_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestEngine(0).Parse(ctx, "a;", ModeProgram); err == nil {
		t.Error("Parse() with cancelled context should fail")
	}
}

func TestEngine_Check(t *testing.T) {
	engine := newTestEngine(0)

	result, err := engine.Check(context.Background(), "if (x) { y; } else { z; }")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.HasErrors() {
		t.Error("valid program reported errors")
	}

	result, err = engine.Check(context.Background(), "a;\nb c;")
	if !thingerror.HasCode(err, thingerror.CodeSyntax) {
		t.Fatalf("Check() error = %v, want SYNTAX", err)
	}
	if result == nil || !result.HasErrors() {
		t.Fatal("Check() should return the result with diagnostics")
	}
	if thingerror.GetSeverity(err) != thingerror.SeverityLow {
		t.Errorf("severity = %v, want low", thingerror.GetSeverity(err))
	}
}

func TestEngine_Tokenize(t *testing.T) {
	tokens, err := newTestEngine(0).Tokenize(context.Background(), "a + 1")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(tokens) != 6 || tokens[len(tokens)-1].Category != lexer.EndOfFile {
		t.Errorf("tokens = %v", tokens)
	}
}

func TestParseMode(t *testing.T) {
	for input, want := range map[string]Mode{"": ModeProgram, "expr": ModeExpression, "Statement": ModeStatement} {
		got, err := ParseMode(input)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", input, got, err, want)
		}
	}
	if _, err := ParseMode("tree"); err == nil {
		t.Error("ParseMode(tree) should fail")
	}
}
