// Package parser implements the recursive-descent parser.
//
// The parser consumes the line-grouped tokens produced by
// [lexer.TokenizeToLines] and builds an [ast.Program]. Expressions are parsed
// with one function per precedence level, lowest first:
//
//	Logical     && ||          left-assoc
//	Comparison  == != > <      non-chaining
//	Additive    + -            left-assoc
//	Multiplicative * /         left-assoc
//	Unary       - !            prefix
//	Primary     integer, identifier, ( expr )
//
// Usage:
//
//	lines, err := lexer.TokenizeToLines(source)
//	...
//	prog, err := parser.ParseProgram(lines)
//
// There is no error recovery: the first problem stops the parse and is
// returned as a [*Error] carrying the source line. No partial program is
// returned on failure.
package parser

import (
	"fmt"

	"github.com/metaphox/rowlang/ast"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	// UnexpectedToken: a production needed a specific token and found another.
	UnexpectedToken ErrorKind = iota
	// UnmatchedBlock: a '{' without its '}' or a '}' without its '{'.
	UnmatchedBlock
	// DanglingBranch: 'elif' or 'else' without a preceding if chain.
	DanglingBranch
	// EmptyExpression: an expression position had no tokens to consume.
	EmptyExpression
	// ExpectedAssignment: a statement that is not a keyword statement lacks '='
	// as its second token.
	ExpectedAssignment
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnmatchedBlock:
		return "unmatched block"
	case DanglingBranch:
		return "dangling branch"
	case EmptyExpression:
		return "empty expression"
	case ExpectedAssignment:
		return "expected assignment"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a positioned parse failure.
type Error struct {
	Kind     ErrorKind
	Expected string // what the production wanted (UnexpectedToken, ExpectedAssignment)
	Found    string // offending lexeme; "" at end of line or input
	Line     int    // 1-based source line
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrUnexpectedToken    = &Error{Kind: UnexpectedToken}
	ErrUnmatchedBlock     = &Error{Kind: UnmatchedBlock}
	ErrDanglingBranch     = &Error{Kind: DanglingBranch}
	ErrEmptyExpression    = &Error{Kind: EmptyExpression}
	ErrExpectedAssignment = &Error{Kind: ExpectedAssignment}
)

func (e *Error) Error() string {
	found := "end of line"
	if e.Found != "" {
		found = fmt.Sprintf("%q", e.Found)
	}
	switch e.Kind {
	case UnexpectedToken, ExpectedAssignment:
		return fmt.Sprintf("line %d: %s: expected %s, found %s", e.Line, e.Kind, e.Expected, found)
	case UnmatchedBlock, DanglingBranch:
		return fmt.Sprintf("line %d: %s %s", e.Line, e.Kind, found)
	default:
		return fmt.Sprintf("line %d: %s", e.Line, e.Kind)
	}
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ParseProgram builds the program for the given source lines. Empty input
// yields a program with no statements.
func ParseProgram(lines [][]ast.Token) (*ast.Program, error) {
	return newParser(lines).parseProgram()
}

// ParseTokens parses a flat token stream as produced by [lexer.Tokenize].
// EndOfLine tokens mark the line boundaries.
func ParseTokens(tokens []ast.Token) (*ast.Program, error) {
	var lines [][]ast.Token
	var row []ast.Token
	for _, t := range tokens {
		if t.Kind == ast.EndOfLine {
			if len(row) > 0 {
				lines = append(lines, row)
			}
			row = nil
			continue
		}
		row = append(row, t)
	}
	if len(row) > 0 {
		lines = append(lines, row)
	}
	return ParseProgram(lines)
}

// ── Parser state ──────────────────────────────────────────────────────────────

// parser is a cursor over the flattened token stream. Source lines are joined
// with EndOfLine tokens so that statements and expressions can see where a
// line ends. pos is the only state that changes while parsing.
type parser struct {
	tokens   []ast.Token
	pos      int
	lastLine int // line reported for errors at end of input
}

func newParser(lines [][]ast.Token) *parser {
	p := &parser{}
	for _, row := range lines {
		n := 0
		for _, t := range row {
			if t.Kind == ast.EndOfLine {
				continue
			}
			p.tokens = append(p.tokens, t)
			p.lastLine = t.Line
			n++
		}
		if n > 0 {
			p.tokens = append(p.tokens, ast.Token{Kind: ast.EndOfLine, Lexeme: ast.EOLLexeme, Line: p.lastLine})
		}
	}
	return p
}

// ── Internal token management ─────────────────────────────────────────────────

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

// cur returns the current token. At end of input it returns an EndOfLine
// token on the last line.
func (p *parser) cur() ast.Token { return p.at(p.pos) }

func (p *parser) at(i int) ast.Token {
	if i >= len(p.tokens) {
		return ast.Token{Kind: ast.EndOfLine, Line: p.lastLine}
	}
	return p.tokens[i]
}

// advance consumes and returns the current token.
func (p *parser) advance() ast.Token {
	t := p.cur()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

func (p *parser) curIs(kind ast.TokenKind, lexeme string) bool {
	return p.cur().Is(kind, lexeme)
}

func (p *parser) curIsKeyword(kw string) bool { return p.curIs(ast.Keyword, kw) }

func (p *parser) curIsSpecial(ch string) bool { return p.curIs(ast.SpecialCharacter, ch) }

// atLineEnd reports whether the cursor is on an EndOfLine token or past the
// last token.
func (p *parser) atLineEnd() bool { return p.cur().Kind == ast.EndOfLine }

func (p *parser) skipNewlines() {
	for !p.atEnd() && p.cur().Kind == ast.EndOfLine {
		p.pos++
	}
}

// expect consumes the current token if it is the given special character.
func (p *parser) expect(ch string) (ast.Token, error) {
	if p.curIsSpecial(ch) {
		return p.advance(), nil
	}
	return ast.Token{}, p.unexpected(fmt.Sprintf("%q", ch))
}

func (p *parser) unexpected(expected string) *Error {
	t := p.cur()
	return &Error{Kind: UnexpectedToken, Expected: expected, Found: found(t), Line: t.Line}
}

// found returns the lexeme to report for t, "" for end of line or input.
func found(t ast.Token) string {
	if t.Kind == ast.EndOfLine {
		return ""
	}
	return t.Lexeme
}

// ── Statement parsing ─────────────────────────────────────────────────────────

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for {
		p.skipNewlines()
		if p.atEnd() {
			return prog, nil
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, s)
		if err := p.endStatement(); err != nil {
			return nil, err
		}
	}
}

// parseStatement dispatches on the leading token. Keywords select their
// production; anything else must start an assignment.
func (p *parser) parseStatement() (ast.Statement, error) {
	t := p.cur()
	switch {
	case t.Kind == ast.Keyword:
		switch t.Lexeme {
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "print":
			return p.parsePrint()
		default: // elif, else
			return nil, &Error{Kind: DanglingBranch, Found: t.Lexeme, Line: t.Line}
		}
	case t.Is(ast.SpecialCharacter, "{"), t.Is(ast.SpecialCharacter, "}"):
		// A brace that does not follow a guard has no partner.
		return nil, &Error{Kind: UnmatchedBlock, Found: t.Lexeme, Line: t.Line}
	default:
		return p.parseAssignment()
	}
}

// endStatement checks that a statement is followed by the end of its line or
// by the '}' closing the enclosing block. Neither is consumed.
func (p *parser) endStatement() error {
	if p.atLineEnd() || p.curIsSpecial("}") {
		return nil
	}
	return p.unexpected("end of line")
}

// parseAssignment parses `name = expr`.
func (p *parser) parseAssignment() (ast.Statement, error) {
	name := p.cur()
	if next := p.at(p.pos + 1); !next.Is(ast.SpecialCharacter, "=") {
		return nil, &Error{Kind: ExpectedAssignment, Expected: `"="`, Found: found(next), Line: name.Line}
	}
	if name.Kind != ast.Identifier {
		return nil, p.unexpected("identifier")
	}
	p.pos += 2 // name and '='

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Token: name, Name: name.Lexeme, Value: value}, nil
}

// parsePrint parses `print ( expr )`.
func (p *parser) parsePrint() (ast.Statement, error) {
	tok := p.advance() // 'print'
	value, err := p.parseParenthesized()
	if err != nil {
		return nil, err
	}
	return &ast.Print{Token: tok, Value: value}, nil
}

// parseWhile parses `while ( cond ) { body }`.
func (p *parser) parseWhile() (ast.Statement, error) {
	tok := p.advance() // 'while'
	cond, body, err := p.parseGuardedBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Token: tok, Condition: cond, Body: body}, nil
}

// parseIf parses an if chain with any number of elif branches and an
// optional else. elif and else may follow the closing '}' on the same line
// or on a later one.
func (p *parser) parseIf() (ast.Statement, error) {
	tok := p.advance() // 'if'
	cond, body, err := p.parseGuardedBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{
		Token:    tok,
		Branches: []ast.Branch{{Token: tok, Condition: cond, Body: body}},
	}

	for p.continuesChain() {
		kw := p.advance()
		if kw.Lexeme == "else" {
			elseBody, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = elseBody
			break
		}
		cond, body, err := p.parseGuardedBlock()
		if err != nil {
			return nil, err
		}
		stmt.Branches = append(stmt.Branches, ast.Branch{Token: kw, Condition: cond, Body: body})
	}
	return stmt, nil
}

// continuesChain looks past line breaks for 'elif' or 'else'. When one is
// found the cursor is left on it; otherwise the cursor is not moved.
func (p *parser) continuesChain() bool {
	save := p.pos
	p.skipNewlines()
	if p.curIsKeyword("elif") || p.curIsKeyword("else") {
		return true
	}
	p.pos = save
	return false
}

// parseGuardedBlock parses `( cond ) { body }`.
func (p *parser) parseGuardedBlock() (ast.Expression, *ast.Block, error) {
	cond, err := p.parseParenthesized()
	if err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// parseParenthesized parses `( expr )`.
func (p *parser) parseParenthesized() (ast.Expression, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return e, nil
}

// parseBlock parses `{ stmts }`. The block may span lines and may be empty.
// Running out of input before '}' is an UnmatchedBlock reported on the line
// of the opening brace.
func (p *parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Token: open}
	for {
		p.skipNewlines()
		if p.atEnd() {
			return nil, &Error{Kind: UnmatchedBlock, Found: open.Lexeme, Line: open.Line}
		}
		if p.curIsSpecial("}") {
			p.advance()
			return block, nil
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, s)
		if err := p.endStatement(); err != nil {
			return nil, err
		}
	}
}

// ── Expression parsing ────────────────────────────────────────────────────────

func (p *parser) parseExpression() (ast.Expression, error) {
	return p.parseLogical()
}

// parseLogical: Comparison (("&&"|"||") Comparison)*
func (p *parser) parseLogical() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.LogicOperator, "&&") || p.curIs(ast.LogicOperator, "||") {
		op := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

// parseComparison: Additive (op Additive)?
// A second comparison operator is rejected rather than left to the caller.
func (p *parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != ast.ComparisonOperator {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == ast.ComparisonOperator {
		return nil, p.unexpected(`"&&" or "||"`)
	}
	return &ast.Comparison{Token: op, Operator: op.Lexeme, Left: left, Right: right}, nil
}

// parseAdditive: Multiplicative (("+"|"-") Multiplicative)*
func (p *parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.MathOperator, "+") || p.curIs(ast.MathOperator, "-") {
		op := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

// parseMultiplicative: Unary (("*"|"/") Unary)*
func (p *parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.curIs(ast.MathOperator, "*") || p.curIs(ast.MathOperator, "/") {
		op := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Token: op, Operator: op.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary: ("-"|"!")? Primary
func (p *parser) parseUnary() (ast.Expression, error) {
	if !p.curIs(ast.MathOperator, "-") && !p.curIs(ast.LogicOperator, "!") {
		return p.parsePrimary()
	}
	op := p.advance()
	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Token: op, Operator: op.Lexeme, Operand: operand}, nil
}

// parsePrimary: IntegerLiteral | Identifier | "(" Expression ")"
func (p *parser) parsePrimary() (ast.Expression, error) {
	t := p.cur()
	switch {
	case p.atLineEnd() || t.Is(ast.SpecialCharacter, ")") || t.Is(ast.SpecialCharacter, "}"):
		return nil, &Error{Kind: EmptyExpression, Found: found(t), Line: t.Line}
	case t.Kind == ast.IntegerLiteral:
		p.advance()
		return &ast.IntLiteral{Token: t, Value: t.Value}, nil
	case t.Kind == ast.Identifier:
		p.advance()
		return &ast.Var{Token: t, Name: t.Lexeme}, nil
	case t.Is(ast.SpecialCharacter, "("):
		return p.parseParenthesized()
	default:
		return nil, p.unexpected("expression")
	}
}
