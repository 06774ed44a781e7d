package ast

import (
	"fmt"
	"strings"
)

// The node hierarchy is:
//
//	Node (interface)
//	  Statement (interface)
//	    Assignment, If, While, Print
//	  Expression (interface)
//	    IntLiteral, Var, UnaryOp, BinaryOp, Comparison, Logical
//
// Every node records the token it starts at so later stages can report a line.

// ── Interfaces ────────────────────────────────────────────────────────────────

// Node is the root interface for every element of the tree.
type Node interface {
	// TokenLiteral returns the lexeme of the token that began this node.
	TokenLiteral() string
	// String returns a compact, parenthesized form for debugging and tests.
	String() string
}

// Statement is a node executed for its effect.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that evaluates to a value.
type Expression interface {
	Node
	expressionNode()
}

// ── Program and blocks ────────────────────────────────────────────────────────

// Program is the root node. Statements are kept in source order, which is
// also execution order.
type Program struct {
	Statements []Statement
}

// TokenLiteral returns the literal of the first statement's starting token,
// or "" for an empty program.
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// String returns one statement per line.
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Block is a brace-delimited statement sequence. It may be empty.
type Block struct {
	Token      Token // the '{' token
	Statements []Statement
}

func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// ── Statements ────────────────────────────────────────────────────────────────

// Assignment binds the value of an expression to a name.
//
//	s = 0 + 1 + 2
type Assignment struct {
	Token Token // the identifier token
	Name  string
	Value Expression
}

func (s *Assignment) statementNode()       {}
func (s *Assignment) TokenLiteral() string { return s.Token.Lexeme }
func (s *Assignment) String() string {
	return fmt.Sprintf("%s = %s", s.Name, s.Value.String())
}

// Branch is one condition → body pair of an if/elif chain.
type Branch struct {
	Token     Token // the 'if' or 'elif' token
	Condition Expression
	Body      *Block
}

func (b Branch) String() string {
	return fmt.Sprintf("%s (%s) %s", b.Token.Lexeme, b.Condition.String(), b.Body.String())
}

// If is an if/elif/else chain. Branches holds the 'if' branch followed by
// every 'elif' in source order and is never empty. Else is nil when the chain
// has no 'else'; it runs only when no branch condition holds.
//
//	if ( s > b ) { print ( s ) } elif ( s > 4 ) { print ( 5 ) } else { print ( 6 ) }
type If struct {
	Token    Token // the 'if' token
	Branches []Branch
	Else     *Block
}

func (s *If) statementNode()       {}
func (s *If) TokenLiteral() string { return s.Token.Lexeme }
func (s *If) String() string {
	parts := make([]string, 0, len(s.Branches)+1)
	for _, b := range s.Branches {
		parts = append(parts, b.String())
	}
	if s.Else != nil {
		parts = append(parts, "else "+s.Else.String())
	}
	return strings.Join(parts, " ")
}

// While is a conditional loop.
//
//	while ( s < b ) { s = s + 8 }
type While struct {
	Token     Token // the 'while' token
	Condition Expression
	Body      *Block
}

func (s *While) statementNode()       {}
func (s *While) TokenLiteral() string { return s.Token.Lexeme }
func (s *While) String() string {
	return fmt.Sprintf("while (%s) %s", s.Condition.String(), s.Body.String())
}

// Print outputs the value of an expression.
type Print struct {
	Token Token // the 'print' token
	Value Expression
}

func (s *Print) statementNode()       {}
func (s *Print) TokenLiteral() string { return s.Token.Lexeme }
func (s *Print) String() string       { return fmt.Sprintf("print (%s)", s.Value.String()) }

// ── Expressions ───────────────────────────────────────────────────────────────

// IntLiteral is a non-negative decimal integer literal.
type IntLiteral struct {
	Token Token
	Value int64
}

func (e *IntLiteral) expressionNode()      {}
func (e *IntLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *IntLiteral) String() string       { return e.Token.Lexeme }

// Var is a reference to a named variable.
type Var struct {
	Token Token
	Name  string
}

func (e *Var) expressionNode()      {}
func (e *Var) TokenLiteral() string { return e.Token.Lexeme }
func (e *Var) String() string       { return e.Name }

// UnaryOp is a prefix operation: -x or !x.
type UnaryOp struct {
	Token    Token  // the operator token
	Operator string // "-" or "!"
	Operand  Expression
}

func (e *UnaryOp) expressionNode()      {}
func (e *UnaryOp) TokenLiteral() string { return e.Token.Lexeme }
func (e *UnaryOp) String() string {
	return fmt.Sprintf("(%s%s)", e.Operator, e.Operand.String())
}

// BinaryOp is an arithmetic operation: + - * /.
type BinaryOp struct {
	Token    Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryOp) expressionNode()      {}
func (e *BinaryOp) TokenLiteral() string { return e.Token.Lexeme }
func (e *BinaryOp) String() string       { return infixString(e.Left, e.Operator, e.Right) }

// Comparison compares two arithmetic values: == != > <.
type Comparison struct {
	Token    Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *Comparison) expressionNode()      {}
func (e *Comparison) TokenLiteral() string { return e.Token.Lexeme }
func (e *Comparison) String() string       { return infixString(e.Left, e.Operator, e.Right) }

// Logical combines two conditions: && ||.
type Logical struct {
	Token    Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *Logical) expressionNode()      {}
func (e *Logical) TokenLiteral() string { return e.Token.Lexeme }
func (e *Logical) String() string       { return infixString(e.Left, e.Operator, e.Right) }

func infixString(left Expression, op string, right Expression) string {
	return fmt.Sprintf("(%s %s %s)", left.String(), op, right.String())
}
