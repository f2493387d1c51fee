// File: token.go
// Title: Token Model
// Description: Defines the closed catalogue of lexical categories and the
//              immutable token record produced by the lexer. Tokens borrow
//              their text from the source string and are never copied.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial token model

package lexer

// Category represents the lexical category of a token
type Category int

const (
	Unknown Category = iota
	EndOfFile
	Whitespace

	// Literals and names
	Identifier
	Number
	String
	Keyword

	// Delimiters
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Comma
	Semicolon
	Colon
	Assign

	// Arithmetic
	Plus
	Minus
	Asterisk
	Slash
	Percent
	Caret
	Increment
	Decrement
	Tilde
	Bang
	Question

	// Comparison
	Equals
	NotEquals
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual

	// Logical
	LogicalAnd
	LogicalOr
)

// String returns the canonical display string of the category.
// It is meant for diagnostics only.
func (c Category) String() string {
	switch c {
	case Unknown:
		return "<unknown>"
	case EndOfFile:
		return "<end-of-file>"
	case Whitespace:
		return "<whitespace>"
	case Identifier:
		return "<identifier>"
	case Number:
		return "<number literal>"
	case String:
		return "<string-literal>"
	case Keyword:
		return "<keyword>"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case LeftBrace:
		return "{"
	case RightBrace:
		return "}"
	case LeftBracket:
		return "["
	case RightBracket:
		return "]"
	case Comma:
		return ","
	case Semicolon:
		return ";"
	case Colon:
		return ":"
	case Assign:
		return "="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Asterisk:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	case Caret:
		return "^"
	case Increment:
		return "++"
	case Decrement:
		return "--"
	case Tilde:
		return "~"
	case Bang:
		return "!"
	case Question:
		return "?"
	case Equals:
		return "=="
	case NotEquals:
		return "!="
	case LessThan:
		return "<"
	case GreaterThan:
		return ">"
	case LessThanOrEqual:
		return "<="
	case GreaterThanOrEqual:
		return ">="
	case LogicalAnd:
		return "&&"
	case LogicalOr:
		return "||"
	default:
		return "<unknown>"
	}
}

// Name returns the identifier-style name of the category (e.g. "left_paren").
// Used by JSON encoders and tree dumps where the display string is ambiguous.
func (c Category) Name() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

var categoryNames = [...]string{
	Unknown:            "unknown",
	EndOfFile:          "end_of_file",
	Whitespace:         "whitespace",
	Identifier:         "identifier",
	Number:             "number",
	String:             "string",
	Keyword:            "keyword",
	LeftParen:          "left_paren",
	RightParen:         "right_paren",
	LeftBrace:          "left_brace",
	RightBrace:         "right_brace",
	LeftBracket:        "left_bracket",
	RightBracket:       "right_bracket",
	Comma:              "comma",
	Semicolon:          "semicolon",
	Colon:              "colon",
	Assign:             "assign",
	Plus:               "plus",
	Minus:              "minus",
	Asterisk:           "asterisk",
	Slash:              "slash",
	Percent:            "percent",
	Caret:              "caret",
	Increment:          "increment",
	Decrement:          "decrement",
	Tilde:              "tilde",
	Bang:               "bang",
	Question:           "question",
	Equals:             "equals",
	NotEquals:          "not_equals",
	LessThan:           "less_than",
	GreaterThan:        "greater_than",
	LessThanOrEqual:    "less_than_or_equal",
	GreaterThanOrEqual: "greater_than_or_equal",
	LogicalAnd:         "logical_and",
	LogicalOr:          "logical_or",
}

// Token is a single lexical unit. Match and Remainder are substrings of the
// text handed to the lexer; Match + Remainder reconstructs that text.
type Token struct {
	Category  Category
	Match     string
	Remainder string
}

// Is reports whether the token has the given category and, if text is not
// empty, the given matched text.
func (t Token) Is(c Category, text string) bool {
	return t.Category == c && (text == "" || t.Match == text)
}
