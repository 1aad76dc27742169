// Package astjson serializes and deserializes a FlowLang ast.Program to
// and from the toolkit's JSON AST shape: a "type"-tagged node tree with
// body/left/right/test/consequent/alternate/callee/arguments fields,
// and a Literal node whose bare "value" holds the literal itself
// (string, bool, or number). Marshal builds the document incrementally
// with sjson.SetRaw rather than through an intermediate Go struct tree;
// Unmarshal walks it back with gjson. Both are already pulled in
// transitively by the toolkit's snapshot-testing dependency and are a
// better fit here than a struct-tagged encoding/json type, since the
// node shape is a tagged union gjson/sjson navigate without one.
package astjson

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/flowconv/flowconv/internal/ast"
)

// Marshal renders prog as the toolkit's JSON AST shape.
func Marshal(prog *ast.Program) (string, error) {
	body, err := marshalStatements(prog.Statements)
	if err != nil {
		return "", err
	}
	doc, _ := sjson.Set(`{}`, "type", "Program")
	return sjson.SetRaw(doc, "body", body)
}

// Unmarshal parses the toolkit's JSON AST shape back into a Program.
func Unmarshal(data string) (*ast.Program, error) {
	root := gjson.Parse(data)
	if t := root.Get("type").String(); t != "Program" {
		return nil, fmt.Errorf("astjson: expected a Program node, got %q", t)
	}
	stmts, err := unmarshalStatements(root.Get("body"))
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

func marshalStatements(stmts []ast.Statement) (string, error) {
	arr := "[]"
	for i, stmt := range stmts {
		raw, err := marshalStatement(stmt)
		if err != nil {
			return "", err
		}
		arr, err = sjson.SetRaw(arr, strconv.Itoa(i), raw)
		if err != nil {
			return "", err
		}
	}
	return arr, nil
}

func marshalBlock(b *ast.Block) (string, error) {
	body, err := marshalStatements(b.Statements)
	if err != nil {
		return "", err
	}
	doc, _ := sjson.Set(`{}`, "type", "BlockStatement")
	return sjson.SetRaw(doc, "body", body)
}

func marshalStatement(stmt ast.Statement) (string, error) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		left, err := marshalExpr(s.Left)
		if err != nil {
			return "", err
		}
		right, err := marshalExpr(s.Right)
		if err != nil {
			return "", err
		}
		doc, _ := sjson.Set(`{}`, "type", "AssignmentStatement")
		doc, _ = sjson.SetRaw(doc, "left", left)
		return sjson.SetRaw(doc, "right", right)

	case *ast.ExpressionStatement:
		expr, err := marshalExpr(s.Expression)
		if err != nil {
			return "", err
		}
		doc, _ := sjson.Set(`{}`, "type", "ExpressionStatement")
		return sjson.SetRaw(doc, "expression", expr)

	case *ast.BreakStatement:
		return sjson.Set(`{}`, "type", "BreakStatement")

	case *ast.IfStatement:
		test, err := marshalExpr(s.Test)
		if err != nil {
			return "", err
		}
		consequent, err := marshalBlock(s.Consequent)
		if err != nil {
			return "", err
		}
		doc, _ := sjson.Set(`{}`, "type", "IfStatement")
		doc, _ = sjson.SetRaw(doc, "test", test)
		doc, _ = sjson.SetRaw(doc, "consequent", consequent)
		if s.Alternate != nil {
			alternate, err := marshalBlock(s.Alternate)
			if err != nil {
				return "", err
			}
			return sjson.SetRaw(doc, "alternate", alternate)
		}
		return sjson.Set(doc, "alternate", nil)

	case *ast.WhileStatement:
		test, err := marshalExpr(s.Test)
		if err != nil {
			return "", err
		}
		body, err := marshalBlock(s.Body)
		if err != nil {
			return "", err
		}
		doc, _ := sjson.Set(`{}`, "type", "WhileStatement")
		doc, _ = sjson.SetRaw(doc, "test", test)
		return sjson.SetRaw(doc, "body", body)

	default:
		return "", fmt.Errorf("astjson: unsupported statement %T", stmt)
	}
}

func marshalExpr(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return marshalLiteral(e)

	case *ast.Identifier:
		return sjson.Set(`{"type":"Identifier"}`, "name", e.Value)

	case *ast.BinaryExpression:
		left, err := marshalExpr(e.Left)
		if err != nil {
			return "", err
		}
		right, err := marshalExpr(e.Right)
		if err != nil {
			return "", err
		}
		doc, _ := sjson.Set(`{}`, "type", "BinaryExpression")
		doc, _ = sjson.Set(doc, "operator", e.Operator)
		doc, _ = sjson.SetRaw(doc, "left", left)
		return sjson.SetRaw(doc, "right", right)

	case *ast.UnaryExpression:
		arg, err := marshalExpr(e.Right)
		if err != nil {
			return "", err
		}
		doc, _ := sjson.Set(`{}`, "type", "UnaryExpression")
		doc, _ = sjson.Set(doc, "operator", e.Operator)
		return sjson.SetRaw(doc, "argument", arg)

	case *ast.CallExpression:
		doc, _ := sjson.Set(`{}`, "type", "CallExpression")
		doc, _ = sjson.Set(doc, "callee", e.Callee)
		args := "[]"
		for i, a := range e.Args {
			raw, err := marshalExpr(a)
			if err != nil {
				return "", err
			}
			args, err = sjson.SetRaw(args, strconv.Itoa(i), raw)
			if err != nil {
				return "", err
			}
		}
		return sjson.SetRaw(doc, "arguments", args)

	default:
		return "", fmt.Errorf("astjson: unsupported expression %T", expr)
	}
}

// marshalLiteral keeps an explicit decimal point on every FloatLiteral
// value (3 becomes "3.0") so Unmarshal can recover the Int/Float
// distinction from the raw JSON number text alone.
func marshalLiteral(l *ast.Literal) (string, error) {
	doc, _ := sjson.Set(`{}`, "type", "Literal")
	switch l.Kind {
	case ast.IntLiteral:
		return sjson.SetRaw(doc, "value", strconv.FormatInt(l.IntValue, 10))
	case ast.FloatLiteral:
		text := strconv.FormatFloat(l.FloatValue, 'f', -1, 64)
		if !strings.ContainsRune(text, '.') {
			text += ".0"
		}
		return sjson.SetRaw(doc, "value", text)
	case ast.BoolLiteral:
		return sjson.Set(doc, "value", l.BoolValue)
	case ast.StringLiteralKind:
		return sjson.Set(doc, "value", l.StringValue)
	default:
		return "", fmt.Errorf("astjson: unknown literal kind %d", l.Kind)
	}
}

func unmarshalStatements(arr gjson.Result) ([]ast.Statement, error) {
	var stmts []ast.Statement
	var outerErr error
	arr.ForEach(func(_, value gjson.Result) bool {
		stmt, err := unmarshalStatement(value)
		if err != nil {
			outerErr = err
			return false
		}
		stmts = append(stmts, stmt)
		return true
	})
	return stmts, outerErr
}

func unmarshalBlock(node gjson.Result) (*ast.Block, error) {
	stmts, err := unmarshalStatements(node.Get("body"))
	if err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts}, nil
}

func unmarshalStatement(node gjson.Result) (ast.Statement, error) {
	switch node.Get("type").String() {
	case "AssignmentStatement":
		leftExpr, err := unmarshalExpr(node.Get("left"))
		if err != nil {
			return nil, err
		}
		ident, ok := leftExpr.(*ast.Identifier)
		if !ok {
			return nil, fmt.Errorf("astjson: AssignmentStatement.left must be an Identifier")
		}
		right, err := unmarshalExpr(node.Get("right"))
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentStatement{Left: ident, Right: right}, nil

	case "ExpressionStatement":
		expr, err := unmarshalExpr(node.Get("expression"))
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: expr}, nil

	case "BreakStatement":
		return &ast.BreakStatement{}, nil

	case "IfStatement":
		test, err := unmarshalExpr(node.Get("test"))
		if err != nil {
			return nil, err
		}
		consequent, err := unmarshalBlock(node.Get("consequent"))
		if err != nil {
			return nil, err
		}
		var alternate *ast.Block
		if alt := node.Get("alternate"); alt.Exists() && alt.Type != gjson.Null {
			alternate, err = unmarshalBlock(alt)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate}, nil

	case "WhileStatement":
		test, err := unmarshalExpr(node.Get("test"))
		if err != nil {
			return nil, err
		}
		body, err := unmarshalBlock(node.Get("body"))
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Test: test, Body: body}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown statement node type %q", node.Get("type").String())
	}
}

func unmarshalExpr(node gjson.Result) (ast.Expression, error) {
	switch node.Get("type").String() {
	case "Literal":
		return unmarshalLiteral(node)

	case "Identifier":
		return &ast.Identifier{Value: node.Get("name").String()}, nil

	case "BinaryExpression":
		left, err := unmarshalExpr(node.Get("left"))
		if err != nil {
			return nil, err
		}
		right, err := unmarshalExpr(node.Get("right"))
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpression{Operator: node.Get("operator").String(), Left: left, Right: right}, nil

	case "UnaryExpression":
		arg, err := unmarshalExpr(node.Get("argument"))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Operator: node.Get("operator").String(), Right: arg}, nil

	case "CallExpression":
		var args []ast.Expression
		var outerErr error
		node.Get("arguments").ForEach(func(_, v gjson.Result) bool {
			a, err := unmarshalExpr(v)
			if err != nil {
				outerErr = err
				return false
			}
			args = append(args, a)
			return true
		})
		if outerErr != nil {
			return nil, outerErr
		}
		return &ast.CallExpression{Callee: node.Get("callee").String(), Args: args}, nil

	default:
		return nil, fmt.Errorf("astjson: unknown expression node type %q", node.Get("type").String())
	}
}

func unmarshalLiteral(node gjson.Result) (*ast.Literal, error) {
	value := node.Get("value")
	switch value.Type {
	case gjson.True, gjson.False:
		return &ast.Literal{Kind: ast.BoolLiteral, BoolValue: value.Bool()}, nil
	case gjson.String:
		return &ast.Literal{Kind: ast.StringLiteralKind, StringValue: value.String()}, nil
	case gjson.Number:
		if strings.ContainsRune(value.Raw, '.') {
			return &ast.Literal{Kind: ast.FloatLiteral, FloatValue: value.Float()}, nil
		}
		return &ast.Literal{Kind: ast.IntLiteral, IntValue: value.Int()}, nil
	default:
		return nil, fmt.Errorf("astjson: Literal.value has unsupported JSON type %v", value.Type)
	}
}
