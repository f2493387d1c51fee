// File: precedence.go
// Title: Binding Power Table
// Description: Left binding powers for infix and postfix operators.
// Author: msto63
// Version: v0.1.1
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial precedence table
// - 2026-10-19 v0.1.1: Keywords bind at keyword level

package parser

import "github.com/msto63/thing/foundation/thing/lexer"

// Precedence is a binding power level, strictly increasing
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecLogicalOr             // ||
	PrecLogicalAnd            // &&
	PrecEquality              // == !=
	PrecRelational            // < <= > >=
	PrecSum                   // + -
	PrecProduct               // * /
	PrecExponent              // ^
	PrecPrefix                // unary + - and prefix keywords
	PrecPostfix               // !
	PrecCall                  // ( {
	PrecKeyword               // keyword after an operand
)

// lbp returns the left binding power of a token category. Closing tokens and
// end of file have none, so they end an expression without being consumed.
// Keywords bind tightest and have no infix rule, so a keyword directly after
// an operand is reported as an unexpected infix token.
func lbp(c lexer.Category) int {
	switch c {
	case lexer.Keyword:
		return int(PrecKeyword)
	case lexer.Plus, lexer.Minus:
		return int(PrecSum)
	case lexer.Asterisk, lexer.Slash:
		return int(PrecProduct)
	case lexer.Caret:
		return int(PrecExponent)
	case lexer.Bang:
		return int(PrecPostfix)
	case lexer.LeftParen, lexer.LeftBrace:
		return int(PrecCall)
	case lexer.LessThan, lexer.LessThanOrEqual, lexer.GreaterThan, lexer.GreaterThanOrEqual:
		return int(PrecRelational)
	case lexer.Equals, lexer.NotEquals:
		return int(PrecEquality)
	case lexer.LogicalAnd:
		return int(PrecLogicalAnd)
	case lexer.LogicalOr:
		return int(PrecLogicalOr)
	default:
		return int(PrecNone)
	}
}
