// Package ast defines the token model and the syntax tree produced by the
// lexer and parser.
//
// A token is the smallest classified unit of a source line. Every token
// carries its kind, the exact lexeme it was built from and the 1-based line it
// appeared on. Integer literals also carry their parsed value.
package ast

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// Keyword is one of the reserved words: if elif else while print.
	Keyword TokenKind = iota
	// MathOperator is one of + - * /.
	MathOperator
	// ComparisonOperator is one of == != > <.
	ComparisonOperator
	// LogicOperator is one of && || !.
	LogicOperator
	// SpecialCharacter is one of ( ) { } =.
	SpecialCharacter
	// Identifier matches [a-zA-Z_]+ and is not a keyword.
	Identifier
	// IntegerLiteral matches 0|[1-9][0-9]*.
	IntegerLiteral
	// EndOfLine separates source lines in the flattened token stream.
	EndOfLine
)

var kindNames = [...]string{
	Keyword:            "Keyword",
	MathOperator:       "MathOperator",
	ComparisonOperator: "ComparisonOperator",
	LogicOperator:      "LogicOperator",
	SpecialCharacter:   "SpecialCharacter",
	Identifier:         "Identifier",
	IntegerLiteral:     "IntegerLiteral",
	EndOfLine:          "EndOfLine",
}

// String returns the kind name, e.g. "Identifier".
func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// KindFromString is the inverse of TokenKind.String.
func KindFromString(name string) (TokenKind, bool) {
	for k, n := range kindNames {
		if n == name {
			return TokenKind(k), true
		}
	}
	return 0, false
}

// Lexeme tables, checked in this order by the lexer.
var (
	Keywords            = []string{"if", "elif", "else", "while", "print"}
	MathOperators       = []string{"+", "-", "*", "/"}
	ComparisonOperators = []string{"==", "!=", ">", "<"}
	LogicOperators      = []string{"&&", "||", "!"}
	SpecialCharacters   = []string{"(", ")", "{", "}", "="}
)

// EOLLexeme is the lexeme stored on EndOfLine tokens.
const EOLLexeme = "\n"

// Token is a single lexical unit. Tokens are values and are never modified
// after the lexer returns them.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Value  int64 // parsed value, IntegerLiteral only
	Line   int   // 1-based source line
}

// Is reports whether t has the given kind and lexeme.
func (t Token) Is(kind TokenKind, lexeme string) bool {
	return t.Kind == kind && t.Lexeme == lexeme
}

// String returns the lexeme, with end of line shown as `\n`.
func (t Token) String() string {
	if t.Kind == EndOfLine {
		return `\n`
	}
	return t.Lexeme
}
