package flowxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowconv/flowconv/internal/ast"
)

const loopDoc = `<Start xmlns:a="http://schemas.datacontract.org/2004/07/raptor">
  <_Successor>
    <Loop>
      <a:_text_str>x = 10</a:_text_str>
      <_before_Child></_before_Child>
      <_after_Child>
        <Rectangle>
          <a:_text_str>x := x + 1</a:_text_str>
        </Rectangle>
      </_after_Child>
    </Loop>
  </_Successor>
</Start>`

func TestTranslate_MidTestLoopRewrite(t *testing.T) {
	// S2
	prog, err := Translate(loopDoc)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	ws, ok := prog.Statements[0].(*ast.WhileStatement)
	require.True(t, ok)
	assert.True(t, ast.IsLiteralTrue(ws.Test))
	require.Len(t, ws.Body.Statements, 2)

	ifStmt, ok := ws.Body.Statements[0].(*ast.IfStatement)
	require.True(t, ok)
	assert.Equal(t, "(x == 10)", ifStmt.Test.String())
	require.Len(t, ifStmt.Consequent.Statements, 1)
	assert.IsType(t, &ast.BreakStatement{}, ifStmt.Consequent.Statements[0])
	assert.Nil(t, ifStmt.Alternate)

	assign, ok := ws.Body.Statements[1].(*ast.AssignmentStatement)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Left.Value)
	assert.Equal(t, "(x + 1)", assign.Right.String())
}

const rectangleWithoutAssignDoc = `<Start>
  <_Successor>
    <Rectangle>
      <_text_str>DoSomething()</_text_str>
    </Rectangle>
  </_Successor>
</Start>`

func TestTranslate_RectangleWithoutAssignProducesNoStatement(t *testing.T) {
	prog, err := Translate(rectangleWithoutAssignDoc)
	require.NoError(t, err)
	assert.Empty(t, prog.Statements)
}

const inputOutputDoc = `<Start>
  <_Successor>
    <Parallelogram>
      <_is_input>true</_is_input>
      <_text_str>x</_text_str>
      <_prompt>"Enter x"</_prompt>
    </Parallelogram>
  </_Successor>
</Start>`

func TestTranslate_InputParallelogram(t *testing.T) {
	prog, err := Translate(inputOutputDoc)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	assign := prog.Statements[0].(*ast.AssignmentStatement)
	assert.Equal(t, "x", assign.Left.Value)

	call := assign.Right.(*ast.CallExpression)
	assert.Equal(t, "Input", call.Callee)
	assert.Equal(t, "Enter x", call.Args[0].(*ast.Literal).StringValue)
}

func TestPreprocessExpr_OperatorAndKeywordSubstitution(t *testing.T) {
	assert.Equal(t, "x == 10", preprocessExpr("x = 10"))
	assert.Equal(t, "x != 10", preprocessExpr("x <> 10"))
	assert.Equal(t, "x MOD 2 == 0", preprocessExpr("x mod 2 = 0"))
	assert.Equal(t, "(a AND b) OR (NOT c)", preprocessExpr("(a and b) or (not c)"))
	assert.Equal(t, "x <= 10", preprocessExpr("x <= 10"))
	assert.Equal(t, "x := 10", preprocessExpr("x := 10"))
}
