// File: node.go
// Title: Parse Tree Model
// Description: Defines the uniform parse node (token, owned children and an
//              optional embedded error) together with tree traversal helpers.
//              Grammar failures are stored in the tree as error nodes so that
//              partial trees survive malformed input.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial parse tree model

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/thing/foundation/thing/lexer"
)

// ErrorKind classifies a grammar violation recorded in the tree
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrWrongTokenType
	ErrUnexpectedPrefixToken
	ErrUnexpectedInfixToken
)

// String returns the string representation of the error kind
func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrWrongTokenType:
		return "wrong_token_type"
	case ErrUnexpectedPrefixToken:
		return "unexpected_prefix_token"
	case ErrUnexpectedInfixToken:
		return "unexpected_infix_token"
	default:
		return "unknown"
	}
}

// Node is a parse tree node. A node with Err != ErrNone is a leaf carrying
// the offending token; for ErrWrongTokenType, Expected holds the category
// that was required instead.
type Node struct {
	Token    lexer.Token
	Children []*Node
	Err      ErrorKind
	Expected lexer.Category
}

func newNode(tok lexer.Token, children ...*Node) *Node {
	return &Node{Token: tok, Children: children}
}

func errorNode(tok lexer.Token, kind ErrorKind, expected lexer.Category) *Node {
	return &Node{Token: tok, Err: kind, Expected: expected}
}

// synthetic returns a placeholder token positioned in front of rest. It roots
// lists and programs that have no token of their own.
func synthetic(rest string) lexer.Token {
	return lexer.Token{Category: lexer.Unknown, Match: "", Remainder: rest}
}

// IsError reports whether the node records a grammar violation
func (n *Node) IsError() bool {
	return n != nil && n.Err != ErrNone
}

// Category returns the category of the node's token
func (n *Node) Category() lexer.Category {
	return n.Token.Category
}

// Text returns the matched text of the node's token
func (n *Node) Text() string {
	return n.Token.Match
}

// LastChild returns the last child or nil
func (n *Node) LastChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits the tree depth-first in pre-order. Returning false from fn
// skips the children of that node.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children {
		walk(child, depth+1, fn)
	}
}

// Errors returns every error node reachable from n in pre-order
func Errors(n *Node) []*Node {
	var errs []*Node
	Walk(n, func(node *Node, _ int) bool {
		if node.IsError() {
			errs = append(errs, node)
		}
		return true
	})
	return errs
}

// Count returns the number of nodes in the tree
func Count(n *Node) int {
	count := 0
	Walk(n, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// Dump writes one line per node, indented two spaces per level, showing the
// quoted matched text. Error nodes carry a "!kind" suffix.
func Dump(w io.Writer, n *Node) error {
	var err error
	Walk(n, func(node *Node, depth int) bool {
		if err != nil {
			return false
		}
		line := fmt.Sprintf("%s'%s'", strings.Repeat(" ", depth*2), node.Token.Match)
		if node.IsError() {
			line += " !" + node.Err.String()
			if node.Err == ErrWrongTokenType {
				line += " expected " + node.Expected.String()
			}
		}
		_, err = fmt.Fprintln(w, line)
		return true
	})
	return err
}

// DumpString returns the Dump output as a string
func DumpString(n *Node) string {
	var sb strings.Builder
	_ = Dump(&sb, n)
	return sb.String()
}
