// Package compiler chains the lexer and parser into a single front-end pass.
//
// A [Compiler] reads source through a [SourceProvider], tokenizes it, parses
// it and returns the program. Errors from either stage are returned wrapped
// with the source name; use errors.As with *lexer.Error or *parser.Error to
// inspect them, or [FormatError] to render them for a terminal.
package compiler

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/metaphox/rowlang/ast"
	"github.com/metaphox/rowlang/lexer"
	"github.com/metaphox/rowlang/parser"
)

// Compiler runs the front end. The zero value is not usable; create one
// with [New].
type Compiler struct {
	sources SourceProvider
	log     *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSources sets the provider used by CompileNamed and TokenizeNamed.
func WithSources(s SourceProvider) Option {
	return func(c *Compiler) { c.sources = s }
}

// New returns a Compiler reading from the working directory.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		sources: FileSource{},
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile tokenizes and parses src. name is used in errors and logs only.
func (c *Compiler) Compile(name, src string) (*ast.Program, error) {
	lines, err := lexer.TokenizeToLines(src)
	if err != nil {
		c.log.Warn("lex failed", "source", name, "error", err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.log.Debug("lexed", "source", name, "lines", len(lines), "tokens", countTokens(lines))

	prog, err := parser.ParseProgram(lines)
	if err != nil {
		c.log.Warn("parse failed", "source", name, "error", err)
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.log.Debug("parsed", "source", name, "statements", len(prog.Statements))
	return prog, nil
}

// CompileNamed reads name from the source provider and compiles it. The
// source text is returned as well so callers can render errors against it.
func (c *Compiler) CompileNamed(name string) (*ast.Program, string, error) {
	src, err := c.sources.ReadSource(name)
	if err != nil {
		return nil, "", err
	}
	prog, err := c.Compile(name, src)
	return prog, src, err
}

// TokenizeNamed reads name from the source provider and returns its tokens
// grouped by line.
func (c *Compiler) TokenizeNamed(name string) ([][]ast.Token, string, error) {
	src, err := c.sources.ReadSource(name)
	if err != nil {
		return nil, "", err
	}
	lines, err := lexer.TokenizeToLines(src)
	if err != nil {
		c.log.Warn("lex failed", "source", name, "error", err)
		return nil, src, fmt.Errorf("%s: %w", name, err)
	}
	c.log.Debug("lexed", "source", name, "lines", len(lines), "tokens", countTokens(lines))
	return lines, src, nil
}

func countTokens(lines [][]ast.Token) int {
	n := 0
	for _, row := range lines {
		n += len(row)
	}
	return n
}
