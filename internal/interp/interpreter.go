// Package interp is a tree-walking evaluator for the FlowLang AST. It
// has no static type checking pass: type mismatches (ordering a string
// against a number with <, MOD on a float) surface as a RuntimeError the
// first time the offending expression is actually evaluated. == and !=
// accept any pair of values; operands of different kinds compare unequal.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/lexer"
)

// InputFunc supplies the raw line for an INPUT(prompt) call.
type InputFunc func(prompt string) (string, error)

// OutputFunc receives one OUTPUT argument already rendered to text.
type OutputFunc func(text string)

// RuntimeError is a failure only a running program can detect: an
// undefined identifier, a type an operator can't accept, or division
// by zero.
type RuntimeError struct {
	Message string
	Pos     lexer.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Interpreter evaluates one program at a time against a fresh
// environment.
type Interpreter struct {
	input  InputFunc
	output OutputFunc
	env    *environment
}

// New builds an Interpreter. Either callback may be nil: a nil input
// fails any INPUT call with a RuntimeError, a nil output discards
// OUTPUT text instead of failing.
func New(input InputFunc, output OutputFunc) *Interpreter {
	return &Interpreter{input: input, output: output}
}

// signal is the control-flow result of running a statement list: either
// nothing unusual happened, or a BREAK is unwinding toward the nearest
// enclosing WhileStatement.
type signal int

const (
	signalNone signal = iota
	signalBreak
)

// Run executes prog from a fresh environment and returns the final
// variable bindings.
func (i *Interpreter) Run(prog *ast.Program) (Store, error) {
	i.env = newEnvironment()
	if _, err := i.execStatements(prog.Statements); err != nil {
		return nil, err
	}
	return i.env.vars, nil
}

func (i *Interpreter) execStatements(stmts []ast.Statement) (signal, error) {
	for _, stmt := range stmts {
		sig, err := i.execStatement(stmt)
		if err != nil {
			return signalNone, err
		}
		if sig == signalBreak {
			return signalBreak, nil
		}
	}
	return signalNone, nil
}

func (i *Interpreter) execStatement(stmt ast.Statement) (signal, error) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		v, err := i.eval(s.Right)
		if err != nil {
			return signalNone, err
		}
		i.env.set(s.Left.Value, v)
		return signalNone, nil

	case *ast.ExpressionStatement:
		_, err := i.eval(s.Expression)
		return signalNone, err

	case *ast.BreakStatement:
		return signalBreak, nil

	case *ast.IfStatement:
		test, err := i.evalBool(s.Test)
		if err != nil {
			return signalNone, err
		}
		if test {
			return i.execStatements(s.Consequent.Statements)
		}
		if s.Alternate != nil {
			return i.execStatements(s.Alternate.Statements)
		}
		return signalNone, nil

	case *ast.WhileStatement:
		for {
			test, err := i.evalBool(s.Test)
			if err != nil {
				return signalNone, err
			}
			if !test {
				return signalNone, nil
			}
			sig, err := i.execStatements(s.Body.Statements)
			if err != nil {
				return signalNone, err
			}
			if sig == signalBreak {
				return signalNone, nil
			}
		}

	default:
		return signalNone, i.typeError(stmt, fmt.Sprintf("unsupported statement %T", stmt))
	}
}

func (i *Interpreter) evalBool(expr ast.Expression) (bool, error) {
	v, err := i.eval(expr)
	if err != nil {
		return false, err
	}
	if v.Kind != BoolVal {
		return false, i.typeError(expr, "condition must be a boolean expression")
	}
	return v.Bool, nil
}

func (i *Interpreter) eval(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return evalLiteral(e), nil
	case *ast.Identifier:
		v, ok := i.env.get(e.Value)
		if !ok {
			return Value{}, i.typeError(e, fmt.Sprintf("undefined variable %q", e.Value))
		}
		return v, nil
	case *ast.UnaryExpression:
		return i.evalUnary(e)
	case *ast.BinaryExpression:
		return i.evalBinary(e)
	case *ast.CallExpression:
		return i.evalCall(e)
	default:
		return Value{}, i.typeError(expr, fmt.Sprintf("unsupported expression %T", expr))
	}
}

func evalLiteral(l *ast.Literal) Value {
	switch l.Kind {
	case ast.IntLiteral:
		return Int(l.IntValue)
	case ast.FloatLiteral:
		return Float(l.FloatValue)
	case ast.BoolLiteral:
		return Bool(l.BoolValue)
	default:
		return Str(l.StringValue)
	}
}

func (i *Interpreter) typeError(node ast.Node, msg string) *RuntimeError {
	return &RuntimeError{Message: msg, Pos: node.Pos()}
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpression) (Value, error) {
	v, err := i.eval(e.Right)
	if err != nil {
		return Value{}, err
	}
	switch e.Operator {
	case "NOT":
		if v.Kind != BoolVal {
			return Value{}, i.typeError(e, "NOT requires a boolean operand")
		}
		return Bool(!v.Bool), nil
	case "-":
		if !v.isNumeric() {
			return Value{}, i.typeError(e, "unary - requires a numeric operand")
		}
		if v.Kind == IntVal {
			return Int(-v.Int), nil
		}
		return Float(-v.Float), nil
	default:
		return Value{}, i.typeError(e, fmt.Sprintf("unknown unary operator %q", e.Operator))
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpression) (Value, error) {
	left, err := i.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := i.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Operator {
	case "+":
		if left.Kind == StringVal && right.Kind == StringVal {
			return Str(left.String + right.String), nil
		}
		return i.arith(e, left, right, func(a, b int64) int64 { return a + b }, func(a, b float64) float64 { return a + b })
	case "-":
		return i.arith(e, left, right, func(a, b int64) int64 { return a - b }, func(a, b float64) float64 { return a - b })
	case "*":
		return i.arith(e, left, right, func(a, b int64) int64 { return a * b }, func(a, b float64) float64 { return a * b })
	case "/":
		if !left.isNumeric() || !right.isNumeric() {
			return Value{}, i.typeError(e, "/ requires numeric operands")
		}
		rf := right.asFloat()
		if rf == 0 {
			return Value{}, i.typeError(e, "division by zero")
		}
		return Float(left.asFloat() / rf), nil
	case "MOD":
		if left.Kind != IntVal || right.Kind != IntVal {
			return Value{}, i.typeError(e, "MOD requires integer operands")
		}
		if right.Int == 0 {
			return Value{}, i.typeError(e, "division by zero")
		}
		return Int(left.Int % right.Int), nil
	case "==":
		return Bool(valuesEqual(left, right)), nil
	case "!=":
		return Bool(!valuesEqual(left, right)), nil
	case "<", ">", "<=", ">=":
		return i.compare(e, left, right)
	case "AND":
		if left.Kind != BoolVal || right.Kind != BoolVal {
			return Value{}, i.typeError(e, "AND requires boolean operands")
		}
		return Bool(left.Bool && right.Bool), nil
	case "OR":
		if left.Kind != BoolVal || right.Kind != BoolVal {
			return Value{}, i.typeError(e, "OR requires boolean operands")
		}
		return Bool(left.Bool || right.Bool), nil
	default:
		return Value{}, i.typeError(e, fmt.Sprintf("unknown binary operator %q", e.Operator))
	}
}

func (i *Interpreter) arith(e *ast.BinaryExpression, left, right Value, intOp func(a, b int64) int64, floatOp func(a, b float64) float64) (Value, error) {
	if !left.isNumeric() || !right.isNumeric() {
		return Value{}, i.typeError(e, fmt.Sprintf("%s requires numeric operands", e.Operator))
	}
	if left.Kind == IntVal && right.Kind == IntVal {
		return Int(intOp(left.Int, right.Int)), nil
	}
	return Float(floatOp(left.asFloat(), right.asFloat())), nil
}

func (i *Interpreter) compare(e *ast.BinaryExpression, left, right Value) (Value, error) {
	if !left.isNumeric() || !right.isNumeric() {
		return Value{}, i.typeError(e, fmt.Sprintf("%s requires numeric operands", e.Operator))
	}
	l, r := left.asFloat(), right.asFloat()
	switch e.Operator {
	case "<":
		return Bool(l < r), nil
	case ">":
		return Bool(l > r), nil
	case "<=":
		return Bool(l <= r), nil
	default:
		return Bool(l >= r), nil
	}
}

func valuesEqual(a, b Value) bool {
	if a.isNumeric() && b.isNumeric() {
		return a.asFloat() == b.asFloat()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case BoolVal:
		return a.Bool == b.Bool
	case StringVal:
		return a.String == b.String
	default:
		return false
	}
}

func (i *Interpreter) evalCall(e *ast.CallExpression) (Value, error) {
	switch e.Callee {
	case "Input":
		prompt := ""
		if len(e.Args) > 0 {
			v, err := i.eval(e.Args[0])
			if err != nil {
				return Value{}, err
			}
			prompt = v.Display()
		}
		if i.input == nil {
			return Value{}, i.typeError(e, "no input source configured")
		}
		line, err := i.input(prompt)
		if err != nil {
			return Value{}, err
		}
		return coerceInput(line), nil

	case "Output":
		if len(e.Args) != 1 {
			return Value{}, i.typeError(e, "OUTPUT takes exactly one argument")
		}
		v, err := i.eval(e.Args[0])
		if err != nil {
			return Value{}, err
		}
		if i.output != nil {
			i.output(v.Display())
		}
		return v, nil

	default:
		return Value{}, i.typeError(e, fmt.Sprintf("unknown function %q", e.Callee))
	}
}

// coerceInput converts a raw INPUT line to the narrowest Value it
// parses as: an int, then a float, then a bare TRUE/FALSE, falling back
// to the line verbatim as a string.
func coerceInput(line string) Value {
	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		return Int(n)
	}
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		return Float(f)
	}
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "TRUE":
		return Bool(true)
	case "FALSE":
		return Bool(false)
	}
	return Str(line)
}
