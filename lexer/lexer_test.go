// Package lexer_test contains tests for the row lexer.
//
// Tests are organised by category:
//   - TestLexer_Keywords        : the five keywords and keyword-like identifiers
//   - TestLexer_Operators       : every operator and special character
//   - TestLexer_Literals_Int    : integer literals and their values
//   - TestLexer_Unrecognized    : words that match no class
//   - TestLexer_Lines           : line grouping, blank lines, line numbers
//   - TestLexer_Tokenize        : flat stream with EndOfLine tokens
package lexer_test

import (
	"errors"
	"slices"
	"strconv"
	"testing"

	"github.com/metaphox/rowlang/ast"
	"github.com/metaphox/rowlang/lexer"
)

// tokenCase is a single (kind, lexeme) expectation used in table-driven tests.
type tokenCase struct {
	expectedKind   ast.TokenKind
	expectedLexeme string
}

// runCases tokenizes input as a single flat stream and compares it with want.
func runCases(t *testing.T, input string, want []tokenCase) {
	t.Helper()
	got, err := lexer.Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): unexpected error: %v", input, err)
	}
	if len(got) != len(want) {
		t.Fatalf("Tokenize(%q): got %d tokens %v, want %d", input, len(got), got, len(want))
	}
	for i, tc := range want {
		if got[i].Kind != tc.expectedKind {
			t.Errorf("case %d: kind mismatch: got %s, want %s (lexeme %q)", i, got[i].Kind, tc.expectedKind, got[i].Lexeme)
		}
		if got[i].Lexeme != tc.expectedLexeme {
			t.Errorf("case %d: lexeme mismatch: got %q, want %q", i, got[i].Lexeme, tc.expectedLexeme)
		}
	}
}

// ── Keywords ──────────────────────────────────────────────────────────────────

func TestLexer_Keywords(t *testing.T) {
	runCases(t, `if elif else while print`, []tokenCase{
		{ast.Keyword, "if"},
		{ast.Keyword, "elif"},
		{ast.Keyword, "else"},
		{ast.Keyword, "while"},
		{ast.Keyword, "print"},
		{ast.EndOfLine, "\n"},
	})
}

// TestLexer_KeywordBoundary checks that words that merely start with a
// keyword are identifiers.
func TestLexer_KeywordBoundary(t *testing.T) {
	runCases(t, `iffy elsewhere printer While _if`, []tokenCase{
		{ast.Identifier, "iffy"},
		{ast.Identifier, "elsewhere"},
		{ast.Identifier, "printer"},
		{ast.Identifier, "While"},
		{ast.Identifier, "_if"},
		{ast.EndOfLine, "\n"},
	})
}

// ── Operators ────────────────────────────────────────────────────────────────

func TestLexer_Operators(t *testing.T) {
	runCases(t, `+ - * / == != > < && || ! ( ) { } =`, []tokenCase{
		{ast.MathOperator, "+"},
		{ast.MathOperator, "-"},
		{ast.MathOperator, "*"},
		{ast.MathOperator, "/"},
		{ast.ComparisonOperator, "=="},
		{ast.ComparisonOperator, "!="},
		{ast.ComparisonOperator, ">"},
		{ast.ComparisonOperator, "<"},
		{ast.LogicOperator, "&&"},
		{ast.LogicOperator, "||"},
		{ast.LogicOperator, "!"},
		{ast.SpecialCharacter, "("},
		{ast.SpecialCharacter, ")"},
		{ast.SpecialCharacter, "{"},
		{ast.SpecialCharacter, "}"},
		{ast.SpecialCharacter, "="},
		{ast.EndOfLine, "\n"},
	})
}

// TestLexer_NoSplitting documents that operators must be separate words.
func TestLexer_NoSplitting(t *testing.T) {
	for _, input := range []string{"3+4", "s=1", "(s)", ">=", "print(s)"} {
		_, err := lexer.Tokenize(input)
		if !errors.Is(err, lexer.ErrUnrecognizedToken) {
			t.Errorf("Tokenize(%q): got err %v, want UnrecognizedToken", input, err)
		}
	}
}

// ── Literals ─────────────────────────────────────────────────────────────────

func TestLexer_Literals_Int(t *testing.T) {
	tests := []struct {
		input string
		value int64
	}{
		{"0", 0},
		{"7", 7},
		{"109", 109},
		{"9223372036854775807", 9223372036854775807},
	}
	for _, tt := range tests {
		lines, err := lexer.TokenizeToLines(tt.input)
		if err != nil {
			t.Fatalf("TokenizeToLines(%q): %v", tt.input, err)
		}
		tok := lines[0][0]
		if tok.Kind != ast.IntegerLiteral {
			t.Errorf("%q: kind = %s, want IntegerLiteral", tt.input, tok.Kind)
		}
		if tok.Value != tt.value {
			t.Errorf("%q: value = %d, want %d", tt.input, tok.Value, tt.value)
		}
	}
}

func TestLexer_Literals_LeadingZero(t *testing.T) {
	for _, input := range []string{"00", "007", "-1", "1a"} {
		_, err := lexer.TokenizeToLines(input)
		if !errors.Is(err, lexer.ErrUnrecognizedToken) {
			t.Errorf("TokenizeToLines(%q): got err %v, want UnrecognizedToken", input, err)
		}
	}
}

func TestLexer_Literals_Overflow(t *testing.T) {
	_, err := lexer.TokenizeToLines("x = 9223372036854775808")
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %v", err)
	}
	if lexErr.Lexeme != "9223372036854775808" {
		t.Errorf("lexeme = %q", lexErr.Lexeme)
	}
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("expected the error to wrap strconv.ErrRange, got %v", err)
	}
}

// ── Errors ───────────────────────────────────────────────────────────────────

// TestLexer_Unrecognized checks that an unknown word fails with its lexeme and
// line instead of being dropped.
func TestLexer_Unrecognized(t *testing.T) {
	input := "a = 1\n\ns @ 1"
	for name, tokenize := range map[string]func(string) error{
		"TokenizeToLines": func(s string) error { _, err := lexer.TokenizeToLines(s); return err },
		"Tokenize":        func(s string) error { _, err := lexer.Tokenize(s); return err },
	} {
		err := tokenize(input)
		var lexErr *lexer.Error
		if !errors.As(err, &lexErr) {
			t.Fatalf("%s: expected *lexer.Error, got %v", name, err)
		}
		if lexErr.Kind != lexer.UnrecognizedToken {
			t.Errorf("%s: kind = %s", name, lexErr.Kind)
		}
		if lexErr.Lexeme != "@" || lexErr.Line != 3 {
			t.Errorf("%s: got (%q, line %d), want (\"@\", line 3)", name, lexErr.Lexeme, lexErr.Line)
		}
		if got, want := lexErr.Error(), `line 3: unrecognized token "@"`; got != want {
			t.Errorf("%s: Error() = %q, want %q", name, got, want)
		}
	}
}

func TestLexer_RejectsDigitsInIdentifier(t *testing.T) {
	_, err := lexer.Tokenize("x1 = 2")
	if !errors.Is(err, lexer.ErrUnrecognizedToken) {
		t.Fatalf("got %v, want UnrecognizedToken", err)
	}
}

// ── Line grouping ─────────────────────────────────────────────────────────────

func TestLexer_Lines(t *testing.T) {
	input := "s = 0 + 1 + 2\n\n   \n\tb = 3\r\nc_ = 45\n"
	lines, err := lexer.TokenizeToLines(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(lines), lines)
	}

	first := []ast.Token{
		{Kind: ast.Identifier, Lexeme: "s", Line: 1},
		{Kind: ast.SpecialCharacter, Lexeme: "=", Line: 1},
		{Kind: ast.IntegerLiteral, Lexeme: "0", Value: 0, Line: 1},
		{Kind: ast.MathOperator, Lexeme: "+", Line: 1},
		{Kind: ast.IntegerLiteral, Lexeme: "1", Value: 1, Line: 1},
		{Kind: ast.MathOperator, Lexeme: "+", Line: 1},
		{Kind: ast.IntegerLiteral, Lexeme: "2", Value: 2, Line: 1},
	}
	if len(lines[0]) != len(first) {
		t.Fatalf("line 1: got %v", lines[0])
	}
	for i, want := range first {
		if lines[0][i] != want {
			t.Errorf("line 1 token %d: got %+v, want %+v", i, lines[0][i], want)
		}
	}

	// Blank lines are dropped but later tokens keep their source line.
	if got := lines[1][0].Line; got != 4 {
		t.Errorf("b: line = %d, want 4", got)
	}
	if got := lines[2][0]; got.Lexeme != "c_" || got.Line != 5 {
		t.Errorf("c_: got %+v", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\n\n", []string{"a", ""}},
		{"a\r\nb\rc\nd", []string{"a", "b", "c", "d"}},
		{"\r", []string{""}},
	}
	for _, tt := range tests {
		if got := lexer.SplitLines(tt.input); !slices.Equal(got, tt.want) {
			t.Errorf("SplitLines(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n", "   \t "} {
		lines, err := lexer.TokenizeToLines(input)
		if err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		if len(lines) != 0 {
			t.Errorf("%q: got %d lines, want 0", input, len(lines))
		}
	}
	tokens, err := lexer.Tokenize("")
	if err != nil || len(tokens) != 0 {
		t.Errorf(`Tokenize(""): got %v, %v`, tokens, err)
	}
}

// ── Flat stream ──────────────────────────────────────────────────────────────

// TestLexer_Tokenize checks that every source line, blank or not, is followed
// by an EndOfLine token.
func TestLexer_Tokenize(t *testing.T) {
	input := "b = 3\n   \nprint ( b )"
	runCases(t, input, []tokenCase{
		{ast.Identifier, "b"},
		{ast.SpecialCharacter, "="},
		{ast.IntegerLiteral, "3"},
		{ast.EndOfLine, "\n"},
		{ast.EndOfLine, "\n"},
		{ast.Keyword, "print"},
		{ast.SpecialCharacter, "("},
		{ast.Identifier, "b"},
		{ast.SpecialCharacter, ")"},
		{ast.EndOfLine, "\n"},
	})

	tokens, _ := lexer.Tokenize(input)
	wantLines := []int{1, 1, 1, 1, 2, 3, 3, 3, 3, 3}
	for i, tok := range tokens {
		if tok.Line != wantLines[i] {
			t.Errorf("token %d (%s): line %d, want %d", i, tok, tok.Line, wantLines[i])
		}
	}
}

func TestLexer_Program(t *testing.T) {
	input := `s = 0 + 1 + 2
b = 3

if ( s > b ) {
    print ( s )
} elif ( s > 4 ) {
    print ( 5 )
} else {
    print ( 6 )
}

while ( s < b && ! s == 0 ) {
    s = s + 8
}`
	lines, err := lexer.TokenizeToLines(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	last := lines[len(lines)-1]
	if len(last) != 1 || !last[0].Is(ast.SpecialCharacter, "}") || last[0].Line != 14 {
		t.Errorf("last line: got %+v", last)
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := map[string]bool{
		"s":        true,
		"letters_": true,
		"_":        true,
		"if":       false,
		"print":    false,
		"a1":       false,
		"":         false,
	}
	for in, want := range tests {
		if got := lexer.IsIdentifier(in); got != want {
			t.Errorf("IsIdentifier(%q) = %v, want %v", in, got, want)
		}
	}
}
