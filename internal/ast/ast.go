// Package ast defines the abstract syntax tree for FlowLang programs.
//
// The tree is a closed tagged sum: every node kind is listed here, there
// are no parent back-references, and no node is shared by more than one
// owner. Once produced by a parser, an AST is immutable.
package ast

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/flowconv/flowconv/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node was
	// built from; mainly useful for diagnostics.
	TokenLiteral() string

	// String renders the node back to FlowLang-like surface text. It is
	// a debugging aid, not the canonical generator (see internal/printer).
	String() string

	// Pos returns the node's source position.
	Pos() lexer.Position
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the AST: an ordered sequence of statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

// Block is an ordered sequence of statements nested inside an IfStatement
// or WhileStatement. Unlike Program it carries no position of its own;
// callers derive one from the first statement when needed.
type Block struct {
	Statements []Statement
}

func (b *Block) String() string {
	var out bytes.Buffer
	for _, stmt := range b.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}

// LiteralKind tags which of Literal's value variants is populated.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	BoolLiteral
	StringLiteralKind
)

// Literal carries exactly one value variant, selected by Kind. String
// values are stored unquoted; quote stripping happens at construction.
type Literal struct {
	Token lexer.Token
	Kind  LiteralKind

	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string {
	switch l.Kind {
	case IntLiteral:
		return strconv.FormatInt(l.IntValue, 10)
	case FloatLiteral:
		return strconv.FormatFloat(l.FloatValue, 'f', -1, 64)
	case BoolLiteral:
		if l.BoolValue {
			return "TRUE"
		}
		return "FALSE"
	case StringLiteralKind:
		return `"` + l.StringValue + `"`
	default:
		return fmt.Sprintf("<unknown literal kind %d>", l.Kind)
	}
}

// Identifier is a variable or callee name.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// BinaryExpression is a two-operand operation: +, -, *, /, MOD, ==, !=,
// <, >, <=, >=, AND, OR.
type BinaryExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() lexer.Position  { return be.Token.Pos }
func (be *BinaryExpression) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpression is a one-operand operation: NOT, unary -.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() lexer.Position  { return ue.Token.Pos }
func (ue *UnaryExpression) String() string {
	if ue.Operator == "NOT" {
		return "NOT " + ue.Right.String()
	}
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(ue.Operator)
	out.WriteString(ue.Right.String())
	out.WriteString(")")
	return out.String()
}

// CallExpression is a named call. Callee is a bare name string, not an
// Identifier node — FlowLang has no first-class function values. The
// two reserved callees are Input (one argument, the prompt) and Output
// (one argument; only legal wrapped in an ExpressionStatement).
type CallExpression struct {
	Token    lexer.Token
	Callee   string
	Args     []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Args))
	for i, a := range ce.Args {
		args[i] = a.String()
	}
	callee := ce.Callee
	if callee == "Input" {
		callee = "INPUT"
	}
	return fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
}

// AssignmentStatement is `Left := Right`. Left is always an Identifier.
type AssignmentStatement struct {
	Token lexer.Token
	Left  *Identifier
	Right Expression
}

func (as *AssignmentStatement) statementNode()      {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignmentStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssignmentStatement) String() string {
	return fmt.Sprintf("%s := %s", as.Left.String(), as.Right.String())
}

// ExpressionStatement wraps a standalone CallExpression — in practice
// always Output(...).
type ExpressionStatement struct {
	Token      lexer.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()      {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}

// IfStatement is `IF test THEN consequent [ELSE alternate] ENDIF`.
// Alternate is nil when there is no ELSE branch.
type IfStatement struct {
	Token       lexer.Token
	Test        Expression
	Consequent  *Block
	Alternate   *Block
}

func (is *IfStatement) statementNode()      {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("IF ")
	out.WriteString(is.Test.String())
	out.WriteString(" THEN\n")
	out.WriteString(is.Consequent.String())
	if is.Alternate != nil {
		out.WriteString("ELSE\n")
		out.WriteString(is.Alternate.String())
	}
	out.WriteString("ENDIF")
	return out.String()
}

// WhileStatement is `WHILE test DO body ENDLOOP`, or, when Test is the
// literal boolean true, the unconditional `LOOP body ENDLOOP` form.
type WhileStatement struct {
	Token lexer.Token
	Test  Expression
	Body  *Block
}

func (ws *WhileStatement) statementNode()      {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() lexer.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	var out bytes.Buffer
	if IsLiteralTrue(ws.Test) {
		out.WriteString("LOOP\n")
	} else {
		out.WriteString("WHILE ")
		out.WriteString(ws.Test.String())
		out.WriteString(" DO\n")
	}
	out.WriteString(ws.Body.String())
	out.WriteString("ENDLOOP")
	return out.String()
}

// BreakStatement is `BREAK`. It carries no payload.
type BreakStatement struct {
	Token lexer.Token
}

func (bs *BreakStatement) statementNode()      {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BreakStatement) String() string       { return "BREAK" }

// IsLiteralTrue reports whether expr is exactly the boolean literal
// true — the marker WhileStatement.Test uses for the LOOP surface form
// and for the diagram generator's mid-test idiom detector.
func IsLiteralTrue(expr Expression) bool {
	lit, ok := expr.(*Literal)
	return ok && lit.Kind == BoolLiteral && lit.BoolValue
}
