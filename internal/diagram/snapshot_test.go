package diagram

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/flowconv/flowconv/internal/parser"
)

// Whole-document snapshots catch accidental shifts in node numbering,
// preamble wording, or edge ordering that per-field assertions miss.
func TestGenerateMermaid_Snapshots(t *testing.T) {
	programs := map[string]string{
		"straight_line": "x := 1\nOUTPUT x\n",
		"if_else":       "IF x > 0 THEN\n  OUTPUT \"pos\"\nELSE\n  OUTPUT \"non-pos\"\nENDIF\n",
		"mid_test_loop": "LOOP\n  IF x == 10 THEN\n    BREAK\n  ENDIF\n  x := (x + 1)\nENDLOOP\n",
	}

	for name, src := range programs {
		prog, err := parser.Parse(src, "")
		require.NoError(t, err)

		out, err := GenerateMermaid(prog)
		require.NoError(t, err)
		snaps.MatchSnapshot(t, name, out)
	}
}

func TestGenerateGraphviz_Snapshots(t *testing.T) {
	programs := map[string]string{
		"straight_line": "x := 1\nOUTPUT x\n",
		"while_loop":    "WHILE x < 10 DO\n  x := (x + 1)\nENDLOOP\n",
	}

	for name, src := range programs {
		prog, err := parser.Parse(src, "")
		require.NoError(t, err)

		out, err := GenerateGraphviz(prog)
		require.NoError(t, err)
		snaps.MatchSnapshot(t, name, out)
	}
}
