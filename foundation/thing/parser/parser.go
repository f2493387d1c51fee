// File: parser.go
// Title: Pratt Parser
// Description: Implements top-down operator-precedence parsing over the
//              lexer with one token of lookahead. Prefix (null denotation)
//              and infix (left denotation) rules are keyed by token category
//              and the binding power table. Structural constructs such as
//              compound statements, control blocks and delimited lists are
//              built on top. Every mismatch becomes an error node in the
//              tree; the parser always returns a node.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial Pratt parser implementation
// - 2026-10-19 v0.1.1: Borrow list roots from the source, keep error nodes leaves, end expressions after control blocks

package parser

import (
	thinglog "github.com/msto63/thing/foundation/core/log"
	"github.com/msto63/thing/foundation/thing/lexer"
)

// DefaultMaxDepth bounds grammar recursion for hostile input
const DefaultMaxDepth = 10000

// Parser holds the lookahead state of a single parse. A Parser may be reused
// for consecutive parses but not shared between goroutines; the package
// level functions create one per call.
type Parser struct {
	source   string
	token    lexer.Token
	depth    int
	maxDepth int
	logger   *thinglog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger enables debug logging of parse runs
func WithLogger(logger *thinglog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger.WithField("component", "thing-parser")
		}
	}
}

// WithMaxDepth sets the recursion ceiling. Values below one keep the default.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// New creates a parser with the given options
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses one expression of source
func Parse(source string, opts ...Option) *Node {
	return New(opts...).Parse(source)
}

// ParseStatement parses one statement of source
func ParseStatement(source string, opts ...Option) *Node {
	return New(opts...).ParseStatement(source)
}

// ParseProgram parses statements until the end of source
func ParseProgram(source string, opts ...Option) *Node {
	return New(opts...).ParseProgram(source)
}

// Parse parses one expression. Control blocks are expressions too, so the
// root is an expression or statement node, or an error node if the first
// token cannot start one.
func (p *Parser) Parse(source string) *Node {
	p.reset(source)
	return p.finish("expression", source, p.expression(0))
}

// ParseStatement parses one statement, requiring the terminating semicolon
// where the statement does not end in a brace body
func (p *Parser) ParseStatement(source string) *Node {
	p.reset(source)
	return p.finish("statement", source, p.statement())
}

// ParseProgram parses a sequence of statements under a synthetic root whose
// token has an empty match. Parsing stops at end of file; a trailing
// unrecognisable token is recorded as an unexpected prefix token.
func (p *Parser) ParseProgram(source string) *Node {
	p.reset(source)
	root := newNode(synthetic(source))
	for !p.invalid() {
		root.Children = append(root.Children, p.statement())
	}
	if p.token.Category == lexer.Unknown {
		root.Children = append(root.Children, errorNode(p.token, ErrUnexpectedPrefixToken, lexer.Unknown))
	}
	return p.finish("program", source, root)
}

func (p *Parser) reset(source string) {
	p.source = source
	p.depth = 0
	p.token = lexer.Scan(source)
	if p.logger != nil {
		p.logger.Trace("Starting parse", thinglog.Fields{"length": len(source)})
	}
}

func (p *Parser) finish(rule, source string, root *Node) *Node {
	if p.logger != nil && p.logger.IsLevelEnabled(thinglog.LevelDebug) {
		p.logger.Debug("Parse completed", thinglog.Fields{
			"rule":   rule,
			"length": len(source),
			"nodes":  Count(root),
			"errors": len(Errors(root)),
		})
	}
	return root
}

// advance moves the lookahead to the next non-whitespace token and returns
// the token it replaced
func (p *Parser) advance() lexer.Token {
	prev := p.token
	p.token = lexer.Scan(prev.Remainder)
	return prev
}

// rest returns the source from the start of tok onwards. Tokens are slices
// of the source, so this never copies.
func (p *Parser) rest(tok lexer.Token) string {
	return p.source[len(p.source)-len(tok.Match)-len(tok.Remainder):]
}

// peek reports whether the current token has the category and, if text is
// not empty, the matched text
func (p *Parser) peek(c lexer.Category, text string) bool {
	return p.token.Is(c, text)
}

// invalid reports whether nothing more can be parsed
func (p *Parser) invalid() bool {
	return p.token.Category == lexer.EndOfFile || p.token.Category == lexer.Unknown
}

// consumeMatch consumes the current token. If it is not of the required
// category an error node takes its place.
func (p *Parser) consumeMatch(c lexer.Category) *Node {
	if p.token.Category != c {
		return errorNode(p.advance(), ErrWrongTokenType, c)
	}
	return newNode(p.advance())
}

// enter guards recursion depth; callers must call leave when enter succeeds
func (p *Parser) enter() bool {
	if p.depth >= p.maxDepth {
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// tooDeep consumes the current token as an error when recursion is exhausted
func (p *Parser) tooDeep() *Node {
	return errorNode(p.advance(), ErrUnexpectedPrefixToken, lexer.Unknown)
}

// expression parses while the next operator binds tighter than rbp
func (p *Parser) expression(rbp int) *Node {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	prefix := p.advance()
	left := p.nullDenotation(prefix)
	if prefix.Category == lexer.Keyword && blockKeyword(prefix.Match) {
		// a control block ends in its body; a following keyword starts
		// the next statement
		return left
	}

	for rbp < lbp(p.token.Category) {
		infix := p.advance()
		left = p.leftDenotation(infix, left)
	}
	return left
}

// nullDenotation handles a token that begins an expression
func (p *Parser) nullDenotation(tok lexer.Token) *Node {
	switch tok.Category {
	case lexer.Identifier, lexer.Number, lexer.String:
		return newNode(tok)

	case lexer.Keyword:
		if blockKeyword(tok.Match) {
			return p.controlBlock(tok)
		}
		return newNode(tok, p.expression(int(PrecPrefix)))

	case lexer.Plus, lexer.Minus:
		return newNode(tok, p.expression(int(PrecPrefix)))

	case lexer.LeftParen:
		inner := p.expression(0)
		if m := p.consumeMatch(lexer.RightParen); m.IsError() {
			return m
		}
		return inner

	default:
		return errorNode(tok, ErrUnexpectedPrefixToken, lexer.Unknown)
	}
}

// leftDenotation handles a token that follows an already parsed operand
func (p *Parser) leftDenotation(tok lexer.Token, left *Node) *Node {
	switch tok.Category {
	case lexer.Plus, lexer.Minus, lexer.Asterisk, lexer.Slash,
		lexer.LessThan, lexer.LessThanOrEqual, lexer.GreaterThan, lexer.GreaterThanOrEqual,
		lexer.LogicalAnd, lexer.LogicalOr, lexer.Equals, lexer.NotEquals:
		return newNode(tok, left, p.expression(lbp(tok.Category)))

	case lexer.Caret:
		// right-associative: the right operand binds one notch looser
		return newNode(tok, left, p.expression(lbp(tok.Category)-1))

	case lexer.Bang:
		return newNode(tok, left)

	case lexer.LeftParen:
		args := p.list(false, lexer.LeftParen, lexer.RightParen, lexer.Comma)
		if left.IsError() {
			return left
		}
		left.Children = append(left.Children, newNode(tok, args.Children...))
		return left

	case lexer.LeftBrace:
		braced := newNode(tok, p.expression(0))
		m := p.consumeMatch(lexer.RightBrace)
		if left.IsError() {
			return left
		}
		if m.IsError() {
			return m
		}
		left.Children = append(left.Children, braced)
		return left

	default:
		return errorNode(tok, ErrUnexpectedInfixToken, lexer.Unknown)
	}
}

// list parses delimiter separated expressions up to closer. When the opener
// is required but missing, the list is rooted at a synthetic token and the
// error node becomes its first child. A missing closer is appended as the
// last child.
func (p *Parser) list(consumeOpener bool, opener, closer, delimiter lexer.Category) *Node {
	var result *Node
	if consumeOpener {
		result = p.consumeMatch(opener)
		if result.IsError() {
			result = newNode(synthetic(p.rest(result.Token)), result)
		}
	} else {
		result = newNode(synthetic(p.rest(p.token)))
	}

	for !p.peek(closer, "") {
		result.Children = append(result.Children, p.expression(0))
		if !p.peek(delimiter, "") {
			break
		}
		p.advance()
	}

	if m := p.consumeMatch(closer); m.IsError() {
		result.Children = append(result.Children, m)
	}
	return result
}

// controlBlock parses if/for/while with a parenthesised, semicolon separated
// header, a body statement and an optional else branch
func (p *Parser) controlBlock(keyword lexer.Token) *Node {
	header := p.list(true, lexer.LeftParen, lexer.RightParen, lexer.Semicolon)
	result := newNode(keyword, header, p.statement())

	if p.peek(lexer.Keyword, "else") {
		elseTok := p.advance()
		result.Children = append(result.Children, newNode(elseTok, p.statement()))
	}
	return result
}

// statement parses a compound statement or an expression terminated by a
// semicolon. Constructs ending in a brace body need no semicolon.
func (p *Parser) statement() *Node {
	if !p.enter() {
		return p.tooDeep()
	}
	defer p.leave()

	if p.peek(lexer.LeftBrace, "") {
		return p.compoundStatement()
	}

	result := p.expression(0)
	if endsWithBlock(result) {
		return result
	}
	if m := p.consumeMatch(lexer.Semicolon); m.IsError() {
		return m
	}
	return result
}

// compoundStatement parses a brace delimited statement sequence. The loop
// stops at end of file or an unknown token so truncated input terminates.
func (p *Parser) compoundStatement() *Node {
	result := p.consumeMatch(lexer.LeftBrace)
	if result.IsError() {
		return result
	}

	for !p.peek(lexer.RightBrace, "") && !p.invalid() {
		result.Children = append(result.Children, p.statement())
	}

	if m := p.consumeMatch(lexer.RightBrace); m.IsError() {
		result.Children = append(result.Children, m)
	}
	return result
}

// endsWithBlock reports whether a statement already ended in a brace body:
// a compound statement, a node whose last child is brace rooted, or a
// control block whose body consumed its own terminator.
func endsWithBlock(n *Node) bool {
	if n.IsError() {
		return false
	}
	if n.Token.Category == lexer.LeftBrace {
		return true
	}
	if last := n.LastChild(); last != nil && last.Token.Category == lexer.LeftBrace {
		return true
	}
	return isControlBlock(n)
}

func isControlBlock(n *Node) bool {
	return n.Token.Category == lexer.Keyword && len(n.Children) >= 2 && blockKeyword(n.Token.Match)
}

func blockKeyword(word string) bool {
	switch word {
	case "if", "for", "while":
		return true
	}
	return false
}
