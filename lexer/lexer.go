// Package lexer turns source text into classified tokens.
//
// Call [TokenizeToLines] to get the tokens of every non-blank source line,
// grouped per line, or [Tokenize] for a flat stream with an explicit
// [ast.EndOfLine] token after each source line.
//
// Design notes:
//   - Input is split into lines, then each line into whitespace-separated
//     words. Multi-character tokens must therefore be written as their own
//     word: `3+4` is one unrecognized word, `3 + 4` is three tokens.
//   - Each word is classified on its own, with no look-ahead, in a fixed
//     order: keyword, math operator, comparison operator, logic operator,
//     special character, identifier, integer literal.
//   - A word that matches no class stops lexing with an [*Error].
//   - No state is kept between calls; both entry points are safe for
//     concurrent use.
package lexer

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/metaphox/rowlang/ast"
)

// ErrorKind classifies lexer failures.
type ErrorKind int

const (
	// UnrecognizedToken is reported for a word that matches no token class.
	UnrecognizedToken ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedToken:
		return "unrecognized token"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a positioned lexer failure.
type Error struct {
	Kind   ErrorKind
	Lexeme string // the offending word
	Line   int    // 1-based source line
	Err    error  // underlying cause, if any
}

// ErrUnrecognizedToken matches any UnrecognizedToken error via errors.Is.
var ErrUnrecognizedToken = &Error{Kind: UnrecognizedToken}

func (e *Error) Error() string {
	msg := fmt.Sprintf("line %d: %s %q", e.Line, e.Kind, e.Lexeme)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// TokenizeToLines returns the tokens of each source line that holds at least
// one word. Blank lines are dropped; the Line field of every token still
// refers to its original source line.
func TokenizeToLines(source string) ([][]ast.Token, error) {
	var rows [][]ast.Token
	for i, text := range SplitLines(source) {
		row, err := tokenizeLine(text, i+1)
		if err != nil {
			return nil, err
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// Tokenize returns all tokens in source order with an EndOfLine token after
// every source line, blank or whitespace-only lines included. Empty input
// yields no tokens.
func Tokenize(source string) ([]ast.Token, error) {
	var tokens []ast.Token
	for i, text := range SplitLines(source) {
		row, err := tokenizeLine(text, i+1)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, row...)
		tokens = append(tokens, ast.Token{Kind: ast.EndOfLine, Lexeme: ast.EOLLexeme, Line: i + 1})
	}
	return tokens, nil
}

// SplitLines splits source into lines the way the lexer numbers them: on
// \n, \r\n and \r. A final line terminator does not start another line.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	lines := strings.Split(source, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ── Internal helpers ──────────────────────────────────────────────────────────

func tokenizeLine(text string, line int) ([]ast.Token, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}
	row := make([]ast.Token, 0, len(words))
	for _, w := range words {
		tok, err := classify(w, line)
		if err != nil {
			return nil, err
		}
		row = append(row, tok)
	}
	return row, nil
}

// classify assigns a kind to a single word. The order of the cases is the
// classification priority.
func classify(word string, line int) (ast.Token, error) {
	tok := ast.Token{Lexeme: word, Line: line}
	switch {
	case slices.Contains(ast.Keywords, word):
		tok.Kind = ast.Keyword
	case slices.Contains(ast.MathOperators, word):
		tok.Kind = ast.MathOperator
	case slices.Contains(ast.ComparisonOperators, word):
		tok.Kind = ast.ComparisonOperator
	case slices.Contains(ast.LogicOperators, word):
		tok.Kind = ast.LogicOperator
	case slices.Contains(ast.SpecialCharacters, word):
		tok.Kind = ast.SpecialCharacter
	case isIdentifier(word):
		tok.Kind = ast.Identifier
	case isInteger(word):
		v, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return ast.Token{}, &Error{Kind: UnrecognizedToken, Lexeme: word, Line: line, Err: err}
		}
		tok.Kind = ast.IntegerLiteral
		tok.Value = v
	default:
		return ast.Token{}, &Error{Kind: UnrecognizedToken, Lexeme: word, Line: line}
	}
	return tok, nil
}

// IsIdentifier reports whether s matches [a-zA-Z_]+ and is not a keyword.
func IsIdentifier(s string) bool {
	return isIdentifier(s) && !slices.Contains(ast.Keywords, s)
}

// isIdentifier reports whether s matches [a-zA-Z_]+.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

// isInteger reports whether s matches 0|[1-9][0-9]*.
func isInteger(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '0' {
		return len(s) == 1
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		b == '_'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
