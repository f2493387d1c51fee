// File: lexer_test.go
// Title: Lexer Unit Tests
// Description: Tests for token recognition order, numeric forms, keywords,
//              the unknown sentinel and the round-trip property.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial lexer test suite

package lexer

import (
	"strings"
	"testing"
)

func TestNextToken(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		category  Category
		match     string
		remainder string
	}{
		{"Empty input", "", EndOfFile, "", ""},
		{"Integer", "123", Number, "123", ""},
		{"Hex integer", "0xAF12345", Number, "0xAF12345", ""},
		{"Upper hex prefix", "0XffZ", Number, "0Xff", "Z"},
		{"Binary integer", "0b1011 rest", Number, "0b1011", " rest"},
		{"Octal prefix", "0o755", Number, "0o755", ""},
		{"Zero-leading octal", "0755;", Number, "0755", ";"},
		{"Bare zero before x", "0x", Number, "0", "x"},
		{"Float", "123.1", Number, "123.1", ""},
		{"Float trailing dot", "1.+2", Number, "1.", "+2"},
		{"Float exponent", "2.5e10f", Number, "2.5e10f", ""},
		{"Float exponent without digits", "2.5e", Number, "2.5", "e"},
		{"Identifier", "foo_1 bar", Identifier, "foo_1", " bar"},
		{"Leading underscore", "_x", Identifier, "_x", ""},
		{"Keyword", "if(x)", Keyword, "if", "(x)"},
		{"Keyword prefix is identifier", "iffy", Identifier, "iffy", ""},
		{"While keyword", "while", Keyword, "while", ""},
		{"String", `"a\"b" + 1`, String, `"a\"b"`, " + 1"},
		{"Whitespace run", " \t\n x", Whitespace, " \t\n ", "x"},
		{"Increment before plus", "++x", Increment, "++", "x"},
		{"Equals before assign", "==1", Equals, "==", "1"},
		{"Assign", "=1", Assign, "=", "1"},
		{"Not equals before bang", "!=", NotEquals, "!=", ""},
		{"Bang", "!x", Bang, "!", "x"},
		{"Logical and", "&&b", LogicalAnd, "&&", "b"},
		{"Logical or", "||b", LogicalOr, "||", "b"},
		{"Less or equal", "<=", LessThanOrEqual, "<=", ""},
		{"Greater than", "> 1", GreaterThan, ">", " 1"},
		{"Caret", "^", Caret, "^", ""},
		{"Left bracket", "[0]", LeftBracket, "[", "0]"},
		{"Unterminated string", `"abc`, Unknown, `"abc`, ""},
		{"Unknown character", "@foo bar", Unknown, "@foo bar", ""},
		{"Single ampersand", "&x", Unknown, "&x", ""},
		{"Leading dot", ".5", Unknown, ".5", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NextToken(tt.input)
			if tok.Category != tt.category {
				t.Errorf("Category = %s, want %s", tok.Category.Name(), tt.category.Name())
			}
			if tok.Match != tt.match {
				t.Errorf("Match = %q, want %q", tok.Match, tt.match)
			}
			if tok.Remainder != tt.remainder {
				t.Errorf("Remainder = %q, want %q", tok.Remainder, tt.remainder)
			}
			if tok.Match+tok.Remainder != tt.input {
				t.Errorf("Match+Remainder = %q, want %q", tok.Match+tok.Remainder, tt.input)
			}
		})
	}
}

func TestKeywordSet(t *testing.T) {
	for _, word := range []string{"auto", "for", "if", "else", "while"} {
		if tok := NextToken(word); tok.Category != Keyword {
			t.Errorf("NextToken(%q) = %s, want keyword", word, tok.Category.Name())
		}
		if !IsKeyword(word) {
			t.Errorf("IsKeyword(%q) = false", word)
		}
	}

	for _, word := range []string{"Auto", "IF", "do", "return", "elsewhere", "x"} {
		if tok := NextToken(word); tok.Category != Identifier {
			t.Errorf("NextToken(%q) = %s, want identifier", word, tok.Category.Name())
		}
	}
}

func TestScan_SkipsWhitespace(t *testing.T) {
	tok := Scan("   \n\t  foo")
	if tok.Category != Identifier || tok.Match != "foo" {
		t.Errorf("Scan() = %s %q, want identifier foo", tok.Category.Name(), tok.Match)
	}

	tok = Scan("   ")
	if tok.Category != EndOfFile {
		t.Errorf("Scan() on blank input = %s, want end_of_file", tok.Category.Name())
	}
}

func TestTokenize_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"5 * 2 + 4 / 3",
		"auto func(x,a*(2/z+q),d,b)",
		"if (true) { print(\"Hello \\\"World\\\" [({])}\");\n\ndo(thing); }",
		"auto x{(15/2)+(((3*x)-1)/2)}",
		"3 * (2+-4)^4 + 3! - 123.1",
		"x = 0xFF && y || 0b101 # trailing junk",
		"\t\n  ",
	}

	for _, input := range inputs {
		tokens := Tokenize(input)
		if len(tokens) == 0 {
			t.Fatalf("Tokenize(%q) returned no tokens", input)
		}

		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Match)
		}
		if sb.String() != input {
			t.Errorf("round trip = %q, want %q", sb.String(), input)
		}

		last := tokens[len(tokens)-1]
		if last.Category != EndOfFile && last.Category != Unknown {
			t.Errorf("last token of %q = %s, want end_of_file or unknown", input, last.Category.Name())
		}
	}
}

func TestTokenize_Categories(t *testing.T) {
	tokens := Tokenize("a+=1")
	want := []Category{Identifier, Plus, Assign, Number, EndOfFile}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, c := range want {
		if tokens[i].Category != c {
			t.Errorf("token %d = %s, want %s", i, tokens[i].Category.Name(), c.Name())
		}
	}
}

func TestCategory_String(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{Unknown, "<unknown>"},
		{EndOfFile, "<end-of-file>"},
		{Identifier, "<identifier>"},
		{Number, "<number literal>"},
		{String, "<string-literal>"},
		{RightParen, ")"},
		{RightBrace, "}"},
		{Semicolon, ";"},
		{Equals, "=="},
		{LogicalOr, "||"},
		{Category(999), "<unknown>"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}

func TestCategory_Name(t *testing.T) {
	if got := LeftParen.Name(); got != "left_paren" {
		t.Errorf("Name() = %q, want left_paren", got)
	}
	if got := GreaterThanOrEqual.Name(); got != "greater_than_or_equal" {
		t.Errorf("Name() = %q, want greater_than_or_equal", got)
	}
	if got := Category(-1).Name(); got != "unknown" {
		t.Errorf("Name() = %q, want unknown", got)
	}
}

func TestToken_Is(t *testing.T) {
	tok := NextToken("else {")
	if !tok.Is(Keyword, "else") {
		t.Error("expected else keyword")
	}
	if !tok.Is(Keyword, "") {
		t.Error("expected keyword match with empty text")
	}
	if tok.Is(Keyword, "if") {
		t.Error("else must not match if")
	}
}
