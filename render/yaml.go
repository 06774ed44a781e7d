package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/metaphox/rowlang/ast"
)

// yamlNode is the serialized shape of every statement and expression.
// Field order fixes key order in the output.
type yamlNode struct {
	Node      string      `yaml:"node"`
	Line      int         `yaml:"line"`
	Name      string      `yaml:"name,omitempty"`
	Operator  string      `yaml:"op,omitempty"`
	Value     *int64      `yaml:"value,omitempty"`
	Expr      *yamlNode   `yaml:"expr,omitempty"`
	Condition *yamlNode   `yaml:"condition,omitempty"`
	Operand   *yamlNode   `yaml:"operand,omitempty"`
	Left      *yamlNode   `yaml:"left,omitempty"`
	Right     *yamlNode   `yaml:"right,omitempty"`
	Branches  []yamlNode  `yaml:"branches,omitempty"`
	Body      *[]yamlNode `yaml:"body,omitempty"`
	Else      *[]yamlNode `yaml:"else,omitempty"`
}

// YAML renders the program as a YAML document with a top-level `program`
// sequence. An empty else block is kept as `else: []`; a missing one is
// omitted.
func YAML(prog *ast.Program) ([]byte, error) {
	doc := struct {
		Program []yamlNode `yaml:"program"`
	}{Program: yamlStatements(prog.Statements)}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("render: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("render: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlStatements(stmts []ast.Statement) []yamlNode {
	out := make([]yamlNode, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, yamlStatement(s))
	}
	return out
}

func yamlBlock(b *ast.Block) *[]yamlNode {
	if b == nil {
		return nil
	}
	stmts := yamlStatements(b.Statements)
	return &stmts
}

func yamlStatement(s ast.Statement) yamlNode {
	switch s := s.(type) {
	case *ast.Assignment:
		return yamlNode{Node: "Assignment", Line: s.Token.Line, Name: s.Name, Expr: yamlExpression(s.Value)}
	case *ast.Print:
		return yamlNode{Node: "Print", Line: s.Token.Line, Expr: yamlExpression(s.Value)}
	case *ast.While:
		return yamlNode{Node: "While", Line: s.Token.Line, Condition: yamlExpression(s.Condition), Body: yamlBlock(s.Body)}
	case *ast.If:
		n := yamlNode{Node: "If", Line: s.Token.Line, Else: yamlBlock(s.Else)}
		for _, b := range s.Branches {
			n.Branches = append(n.Branches, yamlNode{
				Node:      "Branch",
				Line:      b.Token.Line,
				Condition: yamlExpression(b.Condition),
				Body:      yamlBlock(b.Body),
			})
		}
		return n
	default:
		return yamlNode{Node: fmt.Sprintf("%T", s)}
	}
}

func yamlExpression(e ast.Expression) *yamlNode {
	switch e := e.(type) {
	case *ast.IntLiteral:
		v := e.Value
		return &yamlNode{Node: "IntLiteral", Line: e.Token.Line, Value: &v}
	case *ast.Var:
		return &yamlNode{Node: "Var", Line: e.Token.Line, Name: e.Name}
	case *ast.UnaryOp:
		return &yamlNode{Node: "UnaryOp", Line: e.Token.Line, Operator: e.Operator, Operand: yamlExpression(e.Operand)}
	case *ast.BinaryOp:
		return yamlInfix("BinaryOp", e.Token, e.Operator, e.Left, e.Right)
	case *ast.Comparison:
		return yamlInfix("Comparison", e.Token, e.Operator, e.Left, e.Right)
	case *ast.Logical:
		return yamlInfix("Logical", e.Token, e.Operator, e.Left, e.Right)
	default:
		return &yamlNode{Node: fmt.Sprintf("%T", e)}
	}
}

func yamlInfix(node string, tok ast.Token, op string, left, right ast.Expression) *yamlNode {
	return &yamlNode{
		Node:     node,
		Line:     tok.Line,
		Operator: op,
		Left:     yamlExpression(left),
		Right:    yamlExpression(right),
	}
}
