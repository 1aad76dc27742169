package astjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/flowconv/flowconv/internal/parser"
	"github.com/flowconv/flowconv/internal/printer"
)

func TestMarshal_ProducesTaggedNodeShape(t *testing.T) {
	prog, err := parser.Parse("x := 1 + 2\nOUTPUT x\n", "")
	require.NoError(t, err)

	data, err := Marshal(prog)
	require.NoError(t, err)

	assert.Equal(t, "Program", gjson.Get(data, "type").String())
	assert.Equal(t, "AssignmentStatement", gjson.Get(data, "body.0.type").String())
	assert.Equal(t, "BinaryExpression", gjson.Get(data, "body.0.right.type").String())
	assert.Equal(t, "+", gjson.Get(data, "body.0.right.operator").String())
	assert.Equal(t, "ExpressionStatement", gjson.Get(data, "body.1.type").String())
	assert.Equal(t, "Output", gjson.Get(data, "body.1.expression.callee").String())
}

func TestRoundTrip_PreservesIntVsFloat(t *testing.T) {
	prog, err := parser.Parse("x := 3\ny := 3.5\n", "")
	require.NoError(t, err)

	data, err := Marshal(prog)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, printer.Print(prog), printer.Print(back))
}

func TestRoundTrip_MidTestLoop(t *testing.T) {
	prog, err := parser.Parse("LOOP\n  IF x == 10 THEN\n    BREAK\n  ENDIF\n  x := (x + 1)\nENDLOOP\n", "")
	require.NoError(t, err)

	data, err := Marshal(prog)
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, printer.Print(prog), printer.Print(back))
}

func TestUnmarshal_RejectsNonProgramRoot(t *testing.T) {
	_, err := Unmarshal(`{"type":"Literal","value":1}`)
	assert.Error(t, err)
}
