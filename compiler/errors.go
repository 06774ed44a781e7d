package compiler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/metaphox/rowlang/lexer"
	"github.com/metaphox/rowlang/parser"
)

// FormatError renders a lexer or parser error with a snippet of src around
// the offending line:
//
//	PARSE ERROR in main.rl at line 2: unmatched block "{"
//
//	   1 | s = 0
//	>  2 | while ( s < 3 ) {
//
// Up to one line of context is shown on each side. Other errors are returned
// as their plain message.
func FormatError(err error, name, src string) string {
	var (
		header string
		line   int
		msg    string
	)
	var lexErr *lexer.Error
	var parseErr *parser.Error
	switch {
	case errors.As(err, &lexErr):
		header, line = "LEXICAL ERROR", lexErr.Line
		msg = strings.TrimPrefix(lexErr.Error(), linePrefix(line))
	case errors.As(err, &parseErr):
		header, line = "PARSE ERROR", parseErr.Line
		msg = strings.TrimPrefix(parseErr.Error(), linePrefix(line))
	default:
		return err.Error()
	}

	var sb strings.Builder
	sb.WriteString(header)
	if name != "" {
		fmt.Fprintf(&sb, " in %s", name)
	}
	fmt.Fprintf(&sb, " at line %d: %s\n", line, msg)

	lines := lexer.SplitLines(src)
	if line < 1 || line > len(lines) {
		return sb.String()
	}
	sb.WriteByte('\n')
	width := len(fmt.Sprint(min(line+1, len(lines))))
	for n := max(1, line-1); n <= min(line+1, len(lines)); n++ {
		marker := " "
		if n == line {
			marker = ">"
		}
		fmt.Fprintf(&sb, "%s %*d | %s\n", marker, width+1, n, lines[n-1])
	}
	return sb.String()
}

func linePrefix(line int) string { return fmt.Sprintf("line %d: ", line) }
