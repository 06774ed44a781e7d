package render_test

import (
	"slices"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/rowlang/ast"
	"github.com/metaphox/rowlang/lexer"
	"github.com/metaphox/rowlang/parser"
	"github.com/metaphox/rowlang/render"
)

const sample = `s = 0 + 1 + 2
b = 3

if ( s > b ) {
    print ( s )
} elif ( s > 4 ) {
    print ( - 5 )
} else {
}

while ( s < b || ! b ) {
    s = s + 8
}`

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	lines, err := lexer.TokenizeToLines(src)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := parser.ParseProgram(lines)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestTokens(t *testing.T) {
	tokens, err := lexer.Tokenize("s = 0 + 1\n\nprint ( s )")
	if err != nil {
		t.Fatal(err)
	}
	want := "Identifier(s)@1 SpecialCharacter(=)@1 IntegerLiteral(0)@1 MathOperator(+)@1 IntegerLiteral(1)@1 EndOfLine@1\n" +
		"EndOfLine@2\n" +
		"Keyword(print)@3 SpecialCharacter(()@3 Identifier(s)@3 SpecialCharacter())@3 EndOfLine@3\n"
	if got := render.Tokens(tokens); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestLines(t *testing.T) {
	lines, err := lexer.TokenizeToLines("a = 1\n\n b = a")
	if err != nil {
		t.Fatal(err)
	}
	want := "Identifier(a)@1 SpecialCharacter(=)@1 IntegerLiteral(1)@1\n" +
		"Identifier(b)@3 SpecialCharacter(=)@3 Identifier(a)@3\n"
	if got := render.Lines(lines); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

// TestTokensRoundTrip checks that the rendered token form reads back into an
// equal token sequence.
func TestTokensRoundTrip(t *testing.T) {
	for _, src := range []string{"", "x = 1", sample, "a = ( 1 ) * ( ( 2 ) )\n\n\nb = ! a && a != 0 || a == 9223372036854775807"} {
		tokens, err := lexer.Tokenize(src)
		if err != nil {
			t.Fatal(err)
		}
		text := render.Tokens(tokens)
		back, err := render.ParseTokens(text)
		if err != nil {
			t.Fatalf("ParseTokens: %v\n%s", err, text)
		}
		if !slices.Equal(back, tokens) {
			t.Errorf("round trip mismatch:\n got %v\nwant %v", back, tokens)
		}
		if again := render.Tokens(back); again != text {
			t.Errorf("second render differs:\n%s\n%s", again, text)
		}
	}
}

func TestParseTokensErrors(t *testing.T) {
	for _, in := range []string{
		"Identifier(s)",
		"Identifier(s)@x",
		"Identifier@1",
		"Identifier()@1",
		"Bogus(s)@1",
		"IntegerLiteral(99999999999999999999)@1",
		"Identifier(if)@1",
		"Identifier(a1)@1",
	} {
		if _, err := render.ParseTokens(in); err == nil {
			t.Errorf("ParseTokens(%q): expected error", in)
		}
	}
}

func TestProgram(t *testing.T) {
	prog := mustParse(t, sample)
	want := `Program
  Assignment s
    BinaryOp +
      BinaryOp +
        IntLiteral 0
        IntLiteral 1
      IntLiteral 2
  Assignment b
    IntLiteral 3
  If
    Branch
      Comparison >
        Var s
        Var b
      Body
        Print
          Var s
    Branch
      Comparison >
        Var s
        IntLiteral 4
      Body
        Print
          UnaryOp -
            IntLiteral 5
    Else
  While
    Logical ||
      Comparison <
        Var s
        Var b
      UnaryOp !
        Var b
    Body
      Assignment s
        BinaryOp +
          Var s
          IntLiteral 8
`
	got := render.Program(prog)
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if again := render.Program(mustParse(t, sample)); again != got {
		t.Error("rendering is not deterministic")
	}
}

func TestProgramEmpty(t *testing.T) {
	if got := render.Program(&ast.Program{}); got != "Program\n" {
		t.Errorf("got %q", got)
	}
}

func TestYAML(t *testing.T) {
	out, err := render.YAML(mustParse(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Program []map[string]any `yaml:"program"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, out)
	}
	if len(doc.Program) != 4 {
		t.Fatalf("got %d statements:\n%s", len(doc.Program), out)
	}

	first := doc.Program[0]
	if first["node"] != "Assignment" || first["name"] != "s" || first["line"] != 1 {
		t.Errorf("first statement: %v", first)
	}
	expr := first["expr"].(map[string]any)
	if expr["node"] != "BinaryOp" || expr["op"] != "+" {
		t.Errorf("first expr: %v", expr)
	}
	if right := expr["right"].(map[string]any); right["value"] != 2 {
		t.Errorf("right operand: %v", right)
	}

	ifNode := doc.Program[2]
	branches := ifNode["branches"].([]any)
	if len(branches) != 2 {
		t.Errorf("if branches: %v", branches)
	}
	elseBody, ok := ifNode["else"].([]any)
	if !ok || len(elseBody) != 0 {
		t.Errorf("empty else should render as an empty list, got %#v", ifNode["else"])
	}
	if !strings.Contains(string(out), "program:\n  - node: Assignment\n") {
		t.Errorf("unexpected layout:\n%s", out)
	}
}

func TestYAMLOmitsMissingElse(t *testing.T) {
	out, err := render.YAML(mustParse(t, "if ( a ) { x = 0 }"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "else") {
		t.Errorf("missing else must be omitted:\n%s", out)
	}
	if !strings.Contains(string(out), "value: 0") {
		t.Errorf("zero literal must keep its value:\n%s", out)
	}
}
