package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/errors"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p, err := Parse(src, "")
	require.NoError(t, err)
	return p
}

func TestParse_Assignment(t *testing.T) {
	p := mustParse(t, "total := a + 1\n")
	require.Len(t, p.Statements, 1)

	assign, ok := p.Statements[0].(*ast.AssignmentStatement)
	require.True(t, ok)
	assert.Equal(t, "total", assign.Left.Value)
	assert.Equal(t, "(a + 1)", assign.Right.String())
}

func TestParse_IfElse(t *testing.T) {
	// S4
	p := mustParse(t, `IF (a > 0) THEN OUTPUT "p" ELSE OUTPUT "n" ENDIF`+"\n")
	require.Len(t, p.Statements, 1)

	ifStmt, ok := p.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	require.Len(t, ifStmt.Consequent.Statements, 1)
	require.NotNil(t, ifStmt.Alternate)
	require.Len(t, ifStmt.Alternate.Statements, 1)
	assert.IsType(t, &ast.ExpressionStatement{}, ifStmt.Consequent.Statements[0])
	assert.IsType(t, &ast.ExpressionStatement{}, ifStmt.Alternate.Statements[0])
}

func TestParse_InputAssignment(t *testing.T) {
	// S5
	p := mustParse(t, `x := INPUT("?")` + "\n")
	require.Len(t, p.Statements, 1)

	assign := p.Statements[0].(*ast.AssignmentStatement)
	assert.Equal(t, "x", assign.Left.Value)

	call, ok := assign.Right.(*ast.CallExpression)
	require.True(t, ok)
	assert.Equal(t, "Input", call.Callee)
	require.Len(t, call.Args, 1)

	lit := call.Args[0].(*ast.Literal)
	assert.Equal(t, ast.StringLiteralKind, lit.Kind)
	assert.Equal(t, "?", lit.StringValue)
}

func TestParse_LoopAndBreak(t *testing.T) {
	src := "LOOP\n" +
		"  IF (x == 10) THEN\n" +
		"    BREAK\n" +
		"  ENDIF\n" +
		"  x := (x + 1)\n" +
		"ENDLOOP\n"
	p := mustParse(t, src)
	require.Len(t, p.Statements, 1)

	ws, ok := p.Statements[0].(*ast.WhileStatement)
	require.True(t, ok)
	assert.True(t, ast.IsLiteralTrue(ws.Test))
	require.Len(t, ws.Body.Statements, 2)
	assert.IsType(t, &ast.IfStatement{}, ws.Body.Statements[0])
	assert.IsType(t, &ast.AssignmentStatement{}, ws.Body.Statements[1])
}

func TestParse_While(t *testing.T) {
	p := mustParse(t, "WHILE x < 10 DO\n  x := (x + 1)\nENDLOOP\n")
	ws := p.Statements[0].(*ast.WhileStatement)
	assert.False(t, ast.IsLiteralTrue(ws.Test))
	assert.Equal(t, "(x < 10)", ws.Test.String())
}

func TestParse_OutputWithNoArgumentIsEmptyExpression(t *testing.T) {
	// S6
	_, err := Parse("OUTPUT\n", "")
	require.Error(t, err)
	perr, ok := err.(*errors.ParseError)
	require.True(t, ok)
	assert.Equal(t, errors.EmptyExpression, perr.Kind)
}

func TestParse_LiteralAssignmentTargetIsInvalid(t *testing.T) {
	_, err := Parse("1 := 2\n", "")
	require.Error(t, err)
	perr, ok := err.(*errors.ParseError)
	require.True(t, ok)
	assert.Equal(t, errors.InvalidAssignmentTarget, perr.Kind)
}

func TestParse_CommentsAreTransparent(t *testing.T) {
	withComment := mustParse(t, "x := 1 -- set x\n")
	without := mustParse(t, "x := 1\n")
	assert.Equal(t, without.String(), withComment.String())
}

func TestParse_ExpressionSpansLinesInsideParens(t *testing.T) {
	p := mustParse(t, "x := (1 +\n  2)\n")
	assign := p.Statements[0].(*ast.AssignmentStatement)
	assert.Equal(t, "(1 + 2)", assign.Right.String())
}
