package printer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowconv/flowconv/internal/parser"
)

func TestPrint_NestsIfAndWhile(t *testing.T) {
	prog, err := parser.Parse("IF a > 0 THEN\n  WHILE x < 10 DO\n    x := (x + 1)\n  ENDLOOP\nENDIF\n", "")
	require.NoError(t, err)

	got := Print(prog)
	want := "IF (a > 0) THEN\n" +
		"  WHILE (x < 10) DO\n" +
		"    x := (x + 1)\n" +
		"  ENDLOOP\n" +
		"ENDIF\n"
	assert.Equal(t, want, got)
}

func TestPrint_MidTestLoopRewrittenAsLoop(t *testing.T) {
	prog, err := parser.Parse("LOOP\n  IF x == 10 THEN\n    BREAK\n  ENDIF\n  x := (x + 1)\nENDLOOP\n", "")
	require.NoError(t, err)

	got := Print(prog)
	want := "LOOP\n" +
		"  IF (x == 10) THEN\n" +
		"    BREAK\n" +
		"  ENDIF\n" +
		"  x := (x + 1)\n" +
		"ENDLOOP\n"
	assert.Equal(t, want, got)
}

func TestPrint_OutputAndAssignment(t *testing.T) {
	prog, err := parser.Parse(`x := INPUT("?")` + "\nOUTPUT x\n", "")
	require.NoError(t, err)

	got := Print(prog)
	want := "x := INPUT(\"?\")\n" + "OUTPUT x\n"
	assert.Equal(t, want, got)
}
