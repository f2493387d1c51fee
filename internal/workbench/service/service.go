// ============================================================================
// thing - Lexer, Pratt Parser and Diagnostics Toolchain
// ============================================================================
//
// Package:     service
// Description: Analysis service behind the workbench HTTP and WebSocket API
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	thingerror "github.com/msto63/thing/foundation/core/error"
	"github.com/msto63/thing/foundation/thing"
	"github.com/msto63/thing/foundation/thing/diag"
	"github.com/msto63/thing/pkg/core/cache"
	"github.com/msto63/thing/pkg/core/logging"
)

// Operation names an analysis
type Operation string

const (
	OpParse    Operation = "parse"
	OpTokenize Operation = "tokenize"
	OpCheck    Operation = "check"
)

// ParseOperation validates an operation name
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(strings.ToLower(strings.TrimSpace(s))); op {
	case OpParse, OpTokenize, OpCheck:
		return op, nil
	default:
		return "", thingerror.Newf("unknown operation %q", s).
			WithCode(thingerror.CodeInvalidInput).
			WithDetail("operation", s)
	}
}

// Request is one analysis request
type Request struct {
	Source string `json:"source"`
	Mode   string `json:"mode,omitempty"`
}

// Response is the analysis outcome. Tree is set for parse and check,
// Tokens for tokenize.
type Response struct {
	RequestID   string          `json:"request_id,omitempty"`
	Operation   Operation       `json:"operation"`
	Mode        string          `json:"mode,omitempty"`
	Valid       bool            `json:"valid"`
	Summary     string          `json:"summary"`
	Tree        *TreeNode       `json:"tree,omitempty"`
	Tokens      []TokenDTO      `json:"tokens,omitempty"`
	Diagnostics []DiagnosticDTO `json:"diagnostics"`
	Rendered    string          `json:"rendered,omitempty"`
	DurationMS  float64         `json:"duration_ms"`
	Cached      bool            `json:"cached"`
}

// Config holds service configuration
type Config struct {
	MaxInputLength  int
	MaxDepth        int
	CacheTTL        time.Duration
	CacheMaxEntries int
	Logger          *logging.Logger
}

// DefaultConfig returns default service configuration
func DefaultConfig() Config {
	return Config{
		MaxInputLength:  thing.DefaultMaxInputLength,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 512,
	}
}

// Service runs analyses through a shared engine and memoises responses
type Service struct {
	engine *thing.Engine
	cache  *cache.Cache[*Response]
	logger *logging.Logger
}

// New creates a new analysis service
func New(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.New("workbench-service")
	}

	return &Service{
		engine: thing.NewEngine(thing.Options{
			Logger:         logger.Logger,
			MaxInputLength: cfg.MaxInputLength,
			MaxDepth:       cfg.MaxDepth,
		}),
		cache: cache.New[*Response](cache.Config{
			MaxItems: cfg.CacheMaxEntries,
			TTL:      cfg.CacheTTL,
		}),
		logger: logger,
	}
}

// Analyze runs op on the request. Grammar errors are part of the response;
// the error return covers invalid requests and oversized input.
func (s *Service) Analyze(ctx context.Context, op Operation, req Request) (*Response, error) {
	mode, err := s.mode(op, req.Mode)
	if err != nil {
		return nil, err
	}

	key := cache.SourceKey(string(op), string(mode), req.Source)
	if cached, ok := s.cache.Get(key); ok {
		resp := *cached
		resp.Cached = true
		return &resp, nil
	}

	timer := s.logger.StartTimer(string(op)).
		WithField("mode", string(mode)).
		WithField("length", len(req.Source))

	resp, err := s.run(ctx, op, mode, req.Source)
	if err != nil {
		timer.WithField("error", err.Error()).Stop()
		return nil, err
	}
	resp.DurationMS = float64(timer.Stop().Nanoseconds()) / 1e6

	s.cache.Set(key, resp)

	out := *resp
	return &out, nil
}

func (s *Service) mode(op Operation, name string) (thing.Mode, error) {
	switch op {
	case OpTokenize:
		return "", nil
	case OpCheck:
		// check always validates whole programs
		return thing.ModeProgram, nil
	case OpParse:
		return thing.ParseMode(name)
	default:
		return "", thingerror.Newf("unknown operation %q", op).WithCode(thingerror.CodeInvalidInput)
	}
}

func (s *Service) run(ctx context.Context, op Operation, mode thing.Mode, source string) (*Response, error) {
	if op == OpTokenize {
		tokens, err := s.engine.Tokenize(ctx, source)
		if err != nil {
			return nil, err
		}
		return &Response{
			Operation:   op,
			Valid:       true,
			Summary:     fmt.Sprintf("%d tokens", len(tokens)),
			Tokens:      NewTokenDTOs(source, tokens),
			Diagnostics: []DiagnosticDTO{},
		}, nil
	}

	result, err := s.engine.Parse(ctx, source, mode)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Operation:   op,
		Mode:        string(result.Mode),
		Valid:       !result.HasErrors(),
		Summary:     diag.Summary(result.Diagnostics),
		Tree:        NewTreeNode(source, result.Root),
		Diagnostics: NewDiagnosticDTOs(result.Diagnostics),
	}
	if op == OpCheck && result.HasErrors() {
		resp.Rendered = diag.RenderString(result.Diagnostics, diag.Options{})
	}
	return resp, nil
}

// SelfTest parses a probe program covering every grammar construct and
// fails if it does not parse cleanly
func (s *Service) SelfTest(ctx context.Context) error {
	const probe = "if (a < b) { -y ^ 2 ^ 3!; } else f(1, 2);\nwhile (i) { i - 1; }"
	result, err := s.engine.Parse(ctx, probe, thing.ModeProgram)
	if err != nil {
		return err
	}
	if result.HasErrors() {
		return thingerror.Newf("grammar probe failed: %s", result.Diagnostics[0]).
			WithCode(thingerror.CodeInternal).
			WithOperation("service.SelfTest")
	}
	return nil
}

// CacheStats returns response cache statistics
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Close releases the response cache
func (s *Service) Close() {
	s.cache.Close()
}
