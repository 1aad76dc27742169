package diagram

import (
	"fmt"
	"strings"

	"github.com/flowconv/flowconv/internal/ast"
)

// graphvizGenerator accumulates DOT node and edge statements as the
// shared walk visits the AST.
type graphvizGenerator struct {
	nodeCount int
	body      strings.Builder
}

var graphvizShapeNames = map[NodeShape]string{
	ShapeStart:    "ellipse",
	ShapeProcess:  "box",
	ShapeIO:       "parallelogram",
	ShapeDecision: "diamond",
	ShapeMerge:    "point",
}

// escapeDotLabel escapes a label for a double-quoted DOT string:
// backslash first, then the quote itself, then embedded newlines.
func escapeDotLabel(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	label = strings.ReplaceAll(label, "\n", `\n`)
	return label
}

func (g *graphvizGenerator) addNode(label string, shape NodeShape) string {
	id := fmt.Sprintf("node%d", g.nodeCount)
	g.nodeCount++

	shapeName := graphvizShapeNames[shape]
	attrs := []string{
		fmt.Sprintf(`label="%s"`, escapeDotLabel(label)),
		fmt.Sprintf("shape=%s", shapeName),
	}
	switch shape {
	case ShapeMerge:
		attrs = append(attrs, `width="0.1"`, `height="0.1"`, `label=""`)
	case ShapeStart:
		attrs = append(attrs, `fillcolor="#f8f8f8"`)
	case ShapeDecision:
		attrs = append(attrs, `fillcolor="#f0f8ff"`)
	}

	fmt.Fprintf(&g.body, "  %s [%s];\n", id, strings.Join(attrs, ", "))
	return id
}

func (g *graphvizGenerator) addEdge(from, to, label string) {
	if from == "" || to == "" {
		return
	}
	var attrs []string
	if label != "" {
		attrs = append(attrs, fmt.Sprintf(`xlabel="%s"`, label))
	}
	fmt.Fprintf(&g.body, "  %s -> %s [%s];\n", from, to, strings.Join(attrs, ", "))
}

// GenerateGraphviz renders prog as a Graphviz `digraph Flowchart` DOT
// document.
func GenerateGraphviz(prog *ast.Program) (string, error) {
	g := &graphvizGenerator{}

	var out strings.Builder
	out.WriteString("digraph Flowchart {\n")
	out.WriteString("  graph [splines=ortho];\n")
	out.WriteString(`  node [fontname="Helvetica", fontsize=10, style="rounded,filled", fillcolor=white];` + "\n")
	out.WriteString(`  edge [fontname="Helvetica", fontsize=9];` + "\n\n")

	if err := generate(g, prog); err != nil {
		return "", err
	}

	out.WriteString(g.body.String())
	out.WriteString("}\n")
	return out.String(), nil
}
