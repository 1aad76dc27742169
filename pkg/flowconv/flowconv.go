// Package flowconv is the toolkit's embeddable façade: one import that
// exposes parsing (both surface syntaxes), generation, diagramming, and
// execution without reaching into internal/*.
package flowconv

import (
	"strings"

	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/diagram"
	"github.com/flowconv/flowconv/internal/flowxml"
	"github.com/flowconv/flowconv/internal/interp"
	"github.com/flowconv/flowconv/internal/parser"
	"github.com/flowconv/flowconv/internal/printer"
)

// Program is the parsed form both front ends produce.
type Program = ast.Program

// InputFunc and OutputFunc mirror the interpreter's I/O callbacks so
// callers never need to import internal/interp directly.
type InputFunc = interp.InputFunc
type OutputFunc = interp.OutputFunc

// Store is the final variable bindings a Run leaves behind.
type Store = interp.Store

// ParseFlowLang parses FlowLang surface syntax. file is used only to
// label error messages; pass "" when there is none.
func ParseFlowLang(source, file string) (*Program, error) {
	return parser.Parse(source, file)
}

// ParseFlowXML translates a FlowXML flowchart document into a Program.
func ParseFlowXML(doc string) (*Program, error) {
	return flowxml.Translate(doc)
}

// LooksLikeFlowXML reports whether source appears to be a FlowXML
// document rather than FlowLang source — a cheap sniff, not a
// validation, used by callers that accept either format from one flag.
func LooksLikeFlowXML(source string) bool {
	return strings.HasPrefix(strings.TrimSpace(source), "<")
}

// GenerateFlowLang renders prog as indented FlowLang source text.
func GenerateFlowLang(prog *Program) string {
	return printer.Print(prog)
}

// GenerateMermaid renders prog as a Mermaid flowchart.
func GenerateMermaid(prog *Program) (string, error) {
	return diagram.GenerateMermaid(prog)
}

// GenerateGraphviz renders prog as a Graphviz DOT document.
func GenerateGraphviz(prog *Program) (string, error) {
	return diagram.GenerateGraphviz(prog)
}

// Run executes prog with the given I/O callbacks and returns the final
// variable bindings.
func Run(prog *Program, input InputFunc, output OutputFunc) (Store, error) {
	return interp.New(input, output).Run(prog)
}
