package diagram

import (
	"fmt"
	"strings"

	"github.com/flowconv/flowconv/internal/ast"
)

// mermaidGenerator accumulates Mermaid flowchart node and edge
// declarations as the shared walk visits the AST.
type mermaidGenerator struct {
	nodeCount int
	nodeDefs  []string
	edgeDefs  []string
}

var mermaidShapeDelims = map[NodeShape][2]string{
	ShapeStart:    {`("`, `")`},
	ShapeProcess:  {`["`, `"]`},
	ShapeIO:       {`[/"`, `"/]`},
	ShapeDecision: {`{"`, `"}`},
	ShapeMerge:    {`(("`, `"))`},
}

// escapeMermaidLabel quotes a label for Mermaid's double-quoted node
// text: a literal `"` is the only character that needs escaping.
func escapeMermaidLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "#quot;")
}

func (m *mermaidGenerator) addNode(label string, shape NodeShape) string {
	id := fmt.Sprintf("N%d", m.nodeCount)
	m.nodeCount++

	delims := mermaidShapeDelims[shape]
	m.nodeDefs = append(m.nodeDefs, fmt.Sprintf("  %s%s%s%s", id, delims[0], escapeMermaidLabel(label), delims[1]))
	return id
}

func (m *mermaidGenerator) addEdge(from, to, label string) {
	if from == "" || to == "" {
		return
	}
	arrow := "-->"
	if label != "" {
		arrow = fmt.Sprintf(`--"%s"-->`, label)
	}
	m.edgeDefs = append(m.edgeDefs, fmt.Sprintf("  %s %s %s", from, arrow, to))
}

// GenerateMermaid renders prog as a Mermaid `graph TD` flowchart.
func GenerateMermaid(prog *ast.Program) (string, error) {
	m := &mermaidGenerator{}
	if err := generate(m, prog); err != nil {
		return "", err
	}

	var out strings.Builder
	out.WriteString("graph TD;\n")
	out.WriteString(strings.Join(m.nodeDefs, "\n"))
	out.WriteString("\n\n")
	out.WriteString(strings.Join(m.edgeDefs, "\n"))
	out.WriteString("\n")
	return out.String(), nil
}
