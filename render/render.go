// Package render produces deterministic debug forms of tokens and programs.
//
// The output is a diagnostic aid for tests and the command line. It is not a
// stable format and carries no pointer-derived data.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metaphox/rowlang/ast"
	"github.com/metaphox/rowlang/lexer"
)

// Tokens renders each token as `Kind(lexeme)@line`, separated by spaces.
// EndOfLine tokens render as `EndOfLine@line` and end the output line.
func Tokens(tokens []ast.Token) string {
	var sb strings.Builder
	sep := ""
	for _, t := range tokens {
		sb.WriteString(sep)
		if t.Kind == ast.EndOfLine {
			fmt.Fprintf(&sb, "%s@%d\n", t.Kind, t.Line)
			sep = ""
			continue
		}
		fmt.Fprintf(&sb, "%s(%s)@%d", t.Kind, t.Lexeme, t.Line)
		sep = " "
	}
	if sep != "" {
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines renders line-grouped tokens, one source line per output line.
func Lines(lines [][]ast.Token) string {
	var sb strings.Builder
	for _, row := range lines {
		sb.WriteString(Tokens(row))
	}
	return sb.String()
}

// ParseTokens reads the form written by [Tokens] back into tokens.
// IntegerLiteral values are recomputed from their lexemes.
func ParseTokens(text string) ([]ast.Token, error) {
	var tokens []ast.Token
	for _, field := range strings.Fields(text) {
		t, err := parseToken(field)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func parseToken(field string) (ast.Token, error) {
	at := strings.LastIndexByte(field, '@')
	if at < 0 {
		return ast.Token{}, fmt.Errorf("render: token %q has no line", field)
	}
	line, err := strconv.Atoi(field[at+1:])
	if err != nil {
		return ast.Token{}, fmt.Errorf("render: token %q: bad line: %w", field, err)
	}
	head := field[:at]

	if head == ast.EndOfLine.String() {
		return ast.Token{Kind: ast.EndOfLine, Lexeme: ast.EOLLexeme, Line: line}, nil
	}

	open := strings.IndexByte(head, '(')
	if open < 0 || !strings.HasSuffix(head, ")") || open+1 >= len(head)-1 {
		return ast.Token{}, fmt.Errorf("render: malformed token %q", field)
	}
	kind, ok := ast.KindFromString(head[:open])
	if !ok {
		return ast.Token{}, fmt.Errorf("render: unknown token kind in %q", field)
	}
	t := ast.Token{Kind: kind, Lexeme: head[open+1 : len(head)-1], Line: line}
	switch kind {
	case ast.Identifier:
		if !lexer.IsIdentifier(t.Lexeme) {
			return ast.Token{}, fmt.Errorf("render: token %q: invalid identifier", field)
		}
	case ast.IntegerLiteral:
		t.Value, err = strconv.ParseInt(t.Lexeme, 10, 64)
		if err != nil {
			return ast.Token{}, fmt.Errorf("render: token %q: %w", field, err)
		}
	}
	return t, nil
}

// Program renders the program as an indented tree, two spaces per level.
//
//	Program
//	  Assignment s
//	    BinaryOp +
//	      IntLiteral 0
//	      IntLiteral 1
func Program(prog *ast.Program) string {
	var sb strings.Builder
	sb.WriteString("Program\n")
	for _, s := range prog.Statements {
		writeStatement(&sb, s, 1)
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, depth int, format string, args ...any) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, format, args...)
	sb.WriteByte('\n')
}

func writeStatement(sb *strings.Builder, s ast.Statement, depth int) {
	switch s := s.(type) {
	case *ast.Assignment:
		writeLine(sb, depth, "Assignment %s", s.Name)
		writeExpression(sb, s.Value, depth+1)
	case *ast.Print:
		writeLine(sb, depth, "Print")
		writeExpression(sb, s.Value, depth+1)
	case *ast.While:
		writeLine(sb, depth, "While")
		writeExpression(sb, s.Condition, depth+1)
		writeBlock(sb, "Body", s.Body, depth+1)
	case *ast.If:
		writeLine(sb, depth, "If")
		for _, b := range s.Branches {
			writeLine(sb, depth+1, "Branch")
			writeExpression(sb, b.Condition, depth+2)
			writeBlock(sb, "Body", b.Body, depth+2)
		}
		if s.Else != nil {
			writeBlock(sb, "Else", s.Else, depth+1)
		}
	default:
		writeLine(sb, depth, "%T", s)
	}
}

func writeBlock(sb *strings.Builder, label string, b *ast.Block, depth int) {
	writeLine(sb, depth, "%s", label)
	for _, s := range b.Statements {
		writeStatement(sb, s, depth+1)
	}
}

func writeExpression(sb *strings.Builder, e ast.Expression, depth int) {
	switch e := e.(type) {
	case *ast.IntLiteral:
		writeLine(sb, depth, "IntLiteral %d", e.Value)
	case *ast.Var:
		writeLine(sb, depth, "Var %s", e.Name)
	case *ast.UnaryOp:
		writeLine(sb, depth, "UnaryOp %s", e.Operator)
		writeExpression(sb, e.Operand, depth+1)
	case *ast.BinaryOp:
		writeLine(sb, depth, "BinaryOp %s", e.Operator)
		writeExpression(sb, e.Left, depth+1)
		writeExpression(sb, e.Right, depth+1)
	case *ast.Comparison:
		writeLine(sb, depth, "Comparison %s", e.Operator)
		writeExpression(sb, e.Left, depth+1)
		writeExpression(sb, e.Right, depth+1)
	case *ast.Logical:
		writeLine(sb, depth, "Logical %s", e.Operator)
		writeExpression(sb, e.Left, depth+1)
		writeExpression(sb, e.Right, depth+1)
	default:
		writeLine(sb, depth, "%T", e)
	}
}
