package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowconv/flowconv/internal/parser"
)

func run(t *testing.T, src string, in InputFunc) (Store, []string) {
	t.Helper()
	prog, err := parser.Parse(src, "")
	require.NoError(t, err)

	var out []string
	i := New(in, func(text string) { out = append(out, text) })
	store, err := i.Run(prog)
	require.NoError(t, err)
	return store, out
}

func TestRun_ArithmeticPrecedence(t *testing.T) {
	store, _ := run(t, "x := 1 + 2 * 3\n", nil)
	assert.Equal(t, Int(7), store["x"])
}

func TestRun_LoopAndBreak(t *testing.T) {
	store, _ := run(t, "x := 0\nLOOP\n  IF x == 3 THEN\n    BREAK\n  ENDIF\n  x := (x + 1)\nENDLOOP\n", nil)
	assert.Equal(t, Int(3), store["x"])
}

func TestRun_WhileLoop(t *testing.T) {
	store, _ := run(t, "x := 0\nWHILE x < 5 DO\n  x := (x + 1)\nENDLOOP\n", nil)
	assert.Equal(t, Int(5), store["x"])
}

func TestRun_OutputCollectsText(t *testing.T) {
	_, out := run(t, `OUTPUT "hi"`+"\n", nil)
	assert.Equal(t, []string{"hi"}, out)
}

func TestRun_InputIsCoercedByShape(t *testing.T) {
	calls := 0
	in := func(prompt string) (string, error) {
		calls++
		assert.Equal(t, "age?", prompt)
		return "42", nil
	}
	store, _ := run(t, `x := INPUT("age?")`+"\n", in)
	assert.Equal(t, Int(42), store["x"])
	assert.Equal(t, 1, calls)
}

func TestRun_UndefinedVariableIsRuntimeError(t *testing.T) {
	prog, err := parser.Parse("y := x\n", "")
	require.NoError(t, err)

	i := New(nil, nil)
	_, err = i.Run(prog)
	require.Error(t, err)
	_, ok := err.(*RuntimeError)
	assert.True(t, ok)
}

func TestRun_DivisionByZero(t *testing.T) {
	prog, err := parser.Parse("x := 1 / 0\n", "")
	require.NoError(t, err)

	i := New(nil, nil)
	_, err = i.Run(prog)
	require.Error(t, err)
}

func TestRun_ModRequiresIntegers(t *testing.T) {
	prog, err := parser.Parse("x := 1.5 MOD 2\n", "")
	require.NoError(t, err)

	i := New(nil, nil)
	_, err = i.Run(prog)
	require.Error(t, err)
}

func TestRun_StringConcatenation(t *testing.T) {
	store, _ := run(t, `x := "a" + "b"`+"\n", nil)
	assert.Equal(t, Str("ab"), store["x"])
}
