// File: thing.go
// Title: Thing Engine
// Description: High-level entry point that runs the lexer, parser and
//              diagnostic collection for one source text. Used by the
//              command line tool, the workbench service and the explorer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial engine

package thing

import (
	"context"
	"fmt"
	"strings"
	"time"

	thingerror "github.com/msto63/thing/foundation/core/error"
	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/foundation/thing/diag"
	"github.com/msto63/thing/foundation/thing/lexer"
	"github.com/msto63/thing/foundation/thing/parser"
)

// DefaultMaxInputLength bounds the source size accepted by an Engine
const DefaultMaxInputLength = 1 << 20

// Mode selects the grammar entry point
type Mode string

const (
	ModeExpression Mode = "expression"
	ModeStatement  Mode = "statement"
	ModeProgram    Mode = "program"
)

// ParseMode parses a mode name; the empty string selects ModeProgram
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeProgram:
		return ModeProgram, nil
	case ModeExpression, "expr":
		return ModeExpression, nil
	case ModeStatement, "stmt":
		return ModeStatement, nil
	default:
		return "", thingerror.Newf("unknown parse mode %q", s).
			WithCode(thingerror.CodeInvalidInput).
			WithDetail("mode", s)
	}
}

// Options configures an Engine
type Options struct {
	// Logger for engine operations; nil uses the default logger
	Logger *thinglog.Logger

	// MaxInputLength rejects larger sources (default: 1 MiB)
	MaxInputLength int

	// MaxDepth bounds parser recursion (default: parser.DefaultMaxDepth)
	MaxDepth int
}

// Result is the outcome of analysing one source text
type Result struct {
	Source      string
	Mode        Mode
	Root        *parser.Node
	Diagnostics []diag.Diagnostic
	Duration    time.Duration
}

// HasErrors reports whether the tree contains error nodes
func (r *Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Engine runs parses with shared options. It holds no per-parse state and
// is safe for concurrent use.
type Engine struct {
	logger  *thinglog.Logger
	options Options
}

// NewEngine creates an engine with defaults applied
func NewEngine(options Options) *Engine {
	if options.Logger == nil {
		options.Logger = thinglog.GetDefault()
	}
	if options.MaxInputLength <= 0 {
		options.MaxInputLength = DefaultMaxInputLength
	}
	if options.MaxDepth <= 0 {
		options.MaxDepth = parser.DefaultMaxDepth
	}
	return &Engine{
		logger:  options.Logger.WithField("component", "thing-engine"),
		options: options,
	}
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.options
}

// Parse parses source in the given mode and collects its diagnostics.
// Grammar errors are reported in the result, not as an error; the error
// return covers oversized input and cancellation.
func (e *Engine) Parse(ctx context.Context, source string, mode Mode) (*Result, error) {
	if err := e.validate(ctx, source); err != nil {
		return nil, err
	}

	start := time.Now()
	p := parser.New(parser.WithLogger(e.logger), parser.WithMaxDepth(e.options.MaxDepth))

	var root *parser.Node
	switch mode {
	case ModeExpression:
		root = p.Parse(source)
	case ModeStatement:
		root = p.ParseStatement(source)
	case ModeProgram, "":
		mode = ModeProgram
		root = p.ParseProgram(source)
	default:
		return nil, thingerror.Newf("unknown parse mode %q", mode).
			WithCode(thingerror.CodeInvalidInput).
			WithOperation("thing.Parse")
	}

	result := &Result{
		Source:      source,
		Mode:        mode,
		Root:        root,
		Diagnostics: diag.Collect(source, root),
		Duration:    time.Since(start),
	}

	e.logger.Debug("Source analysed", thinglog.Fields{
		"mode":        string(mode),
		"length":      len(source),
		"diagnostics": len(result.Diagnostics),
		"duration_ms": float64(result.Duration.Nanoseconds()) / 1e6,
	})
	return result, nil
}

// Tokenize returns the token stream of source up to and including the
// end of file or unknown token
func (e *Engine) Tokenize(ctx context.Context, source string) ([]lexer.Token, error) {
	if err := e.validate(ctx, source); err != nil {
		return nil, err
	}
	return lexer.Tokenize(source), nil
}

// Check parses source as a program and returns a SYNTAX coded error when
// it contains grammar errors. The result is returned in both cases.
func (e *Engine) Check(ctx context.Context, source string) (*Result, error) {
	result, err := e.Parse(ctx, source, ModeProgram)
	if err != nil {
		return nil, err
	}
	if result.HasErrors() {
		first := result.Diagnostics[0]
		return result, thingerror.Newf("%s in source", diag.Summary(result.Diagnostics)).
			WithCode(thingerror.CodeSyntax).
			WithOperation("thing.Check").
			WithDetail("errors", len(result.Diagnostics)).
			WithDetail("first", fmt.Sprintf("%d:%d", first.Line, first.Column))
	}
	return result, nil
}

func (e *Engine) validate(ctx context.Context, source string) error {
	if err := ctx.Err(); err != nil {
		return thingerror.Wrap(err, "analysis cancelled").WithCode(thingerror.CodeInternal)
	}
	if len(source) > e.options.MaxInputLength {
		return thingerror.Newf("source of %d bytes exceeds the limit of %d", len(source), e.options.MaxInputLength).
			WithCode(thingerror.CodeInputTooLarge).
			WithDetail("length", len(source)).
			WithDetail("limit", e.options.MaxInputLength)
	}
	return nil
}
