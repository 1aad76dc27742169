package flowconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlowLang_RunGenerateRoundTrip(t *testing.T) {
	prog, err := ParseFlowLang("x := 1 + 2\nOUTPUT x\n", "")
	require.NoError(t, err)

	var out []string
	store, err := Run(prog, nil, func(text string) { out = append(out, text) })
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, out)
	assert.Equal(t, int64(3), store["x"].Int)

	assert.Equal(t, "x := (1 + 2)\nOUTPUT x\n", GenerateFlowLang(prog))
}

func TestParseFlowXML_MidTestLoopRewriteFeedsDiagram(t *testing.T) {
	doc := `<Start>
  <_Successor>
    <Loop>
      <_text_str>x = 10</_text_str>
      <_before_Child></_before_Child>
      <_after_Child>
        <Rectangle><_text_str>x := x + 1</_text_str></Rectangle>
      </_after_Child>
    </Loop>
  </_Successor>
</Start>`
	prog, err := ParseFlowXML(doc)
	require.NoError(t, err)

	mermaid, err := GenerateMermaid(prog)
	require.NoError(t, err)
	assert.Contains(t, mermaid, "graph TD;")

	dot, err := GenerateGraphviz(prog)
	require.NoError(t, err)
	assert.Contains(t, dot, "digraph Flowchart {")
}

func TestLooksLikeFlowXML(t *testing.T) {
	assert.True(t, LooksLikeFlowXML("  <Start></Start>"))
	assert.False(t, LooksLikeFlowXML("x := 1\n"))
}
