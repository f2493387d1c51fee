// File: lexer.go
// Title: Lexical Analyzer
// Description: Implements longest-match recognition of the next token at the
//              head of a text slice. The lexer is a pure function over
//              borrowed strings: it never allocates token text and never
//              fails. Unrecognised input becomes a single unknown token that
//              spans the rest of the text.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer implementation

package lexer

import "strings"

// operator pairs a literal spelling with its category
type operator struct {
	text     string
	category Category
}

// operators is tried in order; two-character spellings come first so that
// "==" is never lexed as two "=" tokens.
var operators = [...]operator{
	{"++", Increment},
	{"--", Decrement},
	{">=", GreaterThanOrEqual},
	{"<=", LessThanOrEqual},
	{"!=", NotEquals},
	{"==", Equals},
	{"||", LogicalOr},
	{"&&", LogicalAnd},
	{"<", LessThan},
	{">", GreaterThan},
	{":", Colon},
	{",", Comma},
	{"=", Assign},
	{"+", Plus},
	{"-", Minus},
	{"*", Asterisk},
	{"/", Slash},
	{"^", Caret},
	{"~", Tilde},
	{"%", Percent},
	{"!", Bang},
	{"?", Question},
	{"(", LeftParen},
	{")", RightParen},
	{"{", LeftBrace},
	{"}", RightBrace},
	{"[", LeftBracket},
	{"]", RightBracket},
	{";", Semicolon},
}

// keywords is the fixed keyword set
var keywords = map[string]struct{}{
	"auto":  {},
	"for":   {},
	"if":    {},
	"else":  {},
	"while": {},
}

// NextToken recognises the token at the head of text. Whitespace runs are
// returned as Whitespace tokens; use Scan to skip them.
func NextToken(text string) Token {
	if text == "" {
		return Token{Category: EndOfFile, Match: text, Remainder: text}
	}

	if n := scanWhitespace(text); n > 0 {
		return split(text, Whitespace, n)
	}

	for _, op := range operators {
		if strings.HasPrefix(text, op.text) {
			return split(text, op.category, len(op.text))
		}
	}

	if n := scanIdentifier(text); n > 0 {
		if IsKeyword(text[:n]) {
			return split(text, Keyword, n)
		}
		return split(text, Identifier, n)
	}

	if n := scanString(text); n > 0 {
		return split(text, String, n)
	}

	if n := scanFloat(text); n > 0 {
		return split(text, Number, n)
	}

	if n := scanInteger(text); n > 0 {
		return split(text, Number, n)
	}

	// Nothing more can be read: the unknown token swallows the rest so the
	// stream reaches end of file on the next call.
	return Token{Category: Unknown, Match: text, Remainder: text[len(text):]}
}

// Scan returns the next token that is not whitespace
func Scan(text string) Token {
	for {
		tok := NextToken(text)
		if tok.Category != Whitespace {
			return tok
		}
		text = tok.Remainder
	}
}

// Tokenize returns every token of text including whitespace, ending with the
// end-of-file token or a terminal unknown token.
func Tokenize(text string) []Token {
	var tokens []Token
	for {
		tok := NextToken(text)
		tokens = append(tokens, tok)
		if tok.Category == EndOfFile || tok.Category == Unknown {
			return tokens
		}
		text = tok.Remainder
	}
}

// IsKeyword checks if s is a member of the keyword set
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// split cuts text after n bytes
func split(text string, category Category, n int) Token {
	return Token{Category: category, Match: text[:n], Remainder: text[n:]}
}

func scanWhitespace(text string) int {
	n := 0
	for n < len(text) && isSpace(text[n]) {
		n++
	}
	return n
}

// scanIdentifier matches [A-Za-z_][A-Za-z0-9_]*
func scanIdentifier(text string) int {
	if !isLetter(text[0]) {
		return 0
	}
	n := 1
	for n < len(text) && (isLetter(text[n]) || isDigit(text[n])) {
		n++
	}
	return n
}

// scanString matches a double-quoted string with backslash escapes. An
// unterminated string does not match.
func scanString(text string) int {
	if text[0] != '"' {
		return 0
	}
	for i := 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if i+1 >= len(text) {
				return 0
			}
			i++
		case '"':
			return i + 1
		}
	}
	return 0
}

// scanFloat matches [0-9]+[.][0-9]*([eEpP][0-9]+)?[lLfF]?
func scanFloat(text string) int {
	n := scanDigits(text, isDigit)
	if n == 0 || n >= len(text) || text[n] != '.' {
		return 0
	}
	n++
	n += scanDigits(text[n:], isDigit)

	if n < len(text) && strings.IndexByte("eEpP", text[n]) >= 0 {
		if exp := scanDigits(text[n+1:], isDigit); exp > 0 {
			n += 1 + exp
		}
	}

	if n < len(text) && strings.IndexByte("lLfF", text[n]) >= 0 {
		n++
	}
	return n
}

// scanInteger matches hex, binary and 0o-octal literals, or a decimal digit
// run (which also covers 0-leading octal spellings).
func scanInteger(text string) int {
	if len(text) > 2 && text[0] == '0' {
		var digits func(byte) bool
		switch text[1] {
		case 'x', 'X':
			digits = isHexDigit
		case 'b', 'B':
			digits = isBinaryDigit
		case 'o', 'O':
			digits = isOctalDigit
		}
		if digits != nil {
			if n := scanDigits(text[2:], digits); n > 0 {
				return 2 + n
			}
		}
	}
	return scanDigits(text, isDigit)
}

func scanDigits(text string, accept func(byte) bool) int {
	n := 0
	for n < len(text) && accept(text[n]) {
		n++
	}
	return n
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func isBinaryDigit(ch byte) bool {
	return ch == '0' || ch == '1'
}

func isOctalDigit(ch byte) bool {
	return '0' <= ch && ch <= '7'
}
