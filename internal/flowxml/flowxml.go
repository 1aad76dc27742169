// Package flowxml translates a FlowXML flowchart document — the
// Raptor-style visual counterpart to FlowLang — into the same Program
// AST the statement parser produces. Its one non-obvious contribution
// is rewriting a mid-test Raptor loop into the canonical
// `while(true) { before; if(exit) break; after }` form so that every
// downstream consumer (generator, diagram walker) only has to handle
// one loop shape.
package flowxml

import (
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"

	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/errors"
	"github.com/flowconv/flowconv/internal/lexer"
	"github.com/flowconv/flowconv/internal/parser"
)

// rawNode is a namespace-agnostic element tree. encoding/xml already
// splits a tag into Space/Local on decode, so matching on Local alone
// gives local-name lookup for free; findChild additionally tries an
// exact namespace match first when one is requested, per §6's
// "namespaces … or fall back to local-name lookup".
type rawNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Nodes    []rawNode  `xml:",any"`
	Chardata string     `xml:",chardata"`
}

// Translate parses a FlowXML document into a Program AST.
func Translate(doc string) (*ast.Program, error) {
	var root rawNode
	if err := xml.Unmarshal([]byte(doc), &root); err != nil {
		return nil, errors.NewXmlStructure("Document", err.Error())
	}

	start := findStart(&root)
	if start == nil {
		return nil, errors.NewXmlStructure("Start", "no Start element found in document")
	}

	stmts, err := translateChain(start)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: stmts}, nil
}

// findStart locates the Start element anywhere in the tree (it is
// typically the root, but the MVVM wrapper schema may nest it one or
// two levels down).
func findStart(n *rawNode) *rawNode {
	if n.XMLName.Local == "Start" {
		return n
	}
	for i := range n.Nodes {
		if found := findStart(&n.Nodes[i]); found != nil {
			return found
		}
	}
	return nil
}

// findChild looks for a direct child named localName, preferring one
// in the given namespace when namespace is non-empty, and otherwise
// falling back to a bare local-name match.
func findChild(n *rawNode, namespace, localName string) *rawNode {
	if namespace != "" {
		for i := range n.Nodes {
			c := &n.Nodes[i]
			if c.XMLName.Local == localName && c.XMLName.Space == namespace {
				return c
			}
		}
	}
	for i := range n.Nodes {
		c := &n.Nodes[i]
		if c.XMLName.Local == localName {
			return c
		}
	}
	return nil
}

// firstChild returns the sole element nested inside a link wrapper
// (_Successor, _left_Child, _right_Child, _before_Child, _after_Child),
// or nil when the wrapper is absent or empty (an empty branch).
func firstChild(wrapper *rawNode) *rawNode {
	if wrapper == nil || len(wrapper.Nodes) == 0 {
		return nil
	}
	return &wrapper.Nodes[0]
}

func textOf(n *rawNode, field string) string {
	child := findChild(n, "", field)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Chardata)
}

// boolOf parses an _is_input-shaped field, defaulting to def when the
// field is absent or not parseable — this is how §9's resolution of
// "_is_input default" is expressed: an unparsable value is simply
// Output, not an error.
func boolOf(n *rawNode, field string, def bool) bool {
	text := textOf(n, field)
	if text == "" {
		return def
	}
	v, err := strconv.ParseBool(strings.ToLower(text))
	if err != nil {
		return def
	}
	return v
}

// translateChain walks n and every node reachable through its
// _Successor links, concatenating the statements each one produces.
func translateChain(n *rawNode) ([]ast.Statement, error) {
	if n == nil {
		return nil, nil
	}

	stmts, err := translateNode(n)
	if err != nil {
		return nil, err
	}

	successor := firstChild(findChild(n, "", "_Successor"))
	rest, err := translateChain(successor)
	if err != nil {
		return nil, err
	}

	return append(stmts, rest...), nil
}

func translateBlock(n *rawNode) (*ast.Block, error) {
	stmts, err := translateChain(n)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Statements: stmts}, nil
}

func translateNode(n *rawNode) ([]ast.Statement, error) {
	switch n.XMLName.Local {
	case "Start":
		return nil, nil

	case "Rectangle":
		return translateRectangle(n)

	case "Parallelogram":
		return translateParallelogram(n)

	case "IF_Control":
		return translateIf(n)

	case "Loop":
		return translateLoop(n)

	default:
		return nil, errors.NewXmlStructure(n.XMLName.Local, "unrecognized FlowXML node kind")
	}
}

// translateRectangle produces an AssignmentStatement when the node's
// text contains ":=", and silently produces no statement otherwise —
// an unhandled procedure call, per the Open Question this behavior is
// preserved, not "fixed".
func translateRectangle(n *rawNode) ([]ast.Statement, error) {
	text := textOf(n, "_text_str")
	idx := strings.Index(text, ":=")
	if idx < 0 {
		return nil, nil
	}

	lhsExpr, err := parseXMLExpr(text[:idx])
	if err != nil {
		return nil, err
	}
	rhsExpr, err := parseXMLExpr(text[idx+2:])
	if err != nil {
		return nil, err
	}

	ident, ok := lhsExpr.(*ast.Identifier)
	if !ok {
		return nil, errors.NewXmlStructure("Rectangle", "assignment left-hand side is not an identifier")
	}

	return []ast.Statement{&ast.AssignmentStatement{Left: ident, Right: rhsExpr}}, nil
}

func translateParallelogram(n *rawNode) ([]ast.Statement, error) {
	if boolOf(n, "_is_input", false) {
		identExpr, err := parseXMLExpr(textOf(n, "_text_str"))
		if err != nil {
			return nil, err
		}
		ident, ok := identExpr.(*ast.Identifier)
		if !ok {
			return nil, errors.NewXmlStructure("Parallelogram", "input target is not an identifier")
		}

		prompt := stripQuotes(textOf(n, "_prompt"))
		call := &ast.CallExpression{Callee: "Input", Args: []ast.Expression{
			&ast.Literal{Kind: ast.StringLiteralKind, StringValue: prompt},
		}}
		return []ast.Statement{&ast.AssignmentStatement{Left: ident, Right: call}}, nil
	}

	expr, err := parseXMLExpr(textOf(n, "_text_str"))
	if err != nil {
		return nil, err
	}
	call := &ast.CallExpression{Callee: "Output", Args: []ast.Expression{expr}}
	return []ast.Statement{&ast.ExpressionStatement{Expression: call}}, nil
}

func translateIf(n *rawNode) ([]ast.Statement, error) {
	test, err := parseXMLExpr(textOf(n, "_text_str"))
	if err != nil {
		return nil, err
	}

	consequent, err := translateBlock(firstChild(findChild(n, "", "_left_Child")))
	if err != nil {
		return nil, err
	}

	var alternate *ast.Block
	if rightWrapper := findChild(n, "", "_right_Child"); firstChild(rightWrapper) != nil {
		alternate, err = translateBlock(firstChild(rightWrapper))
		if err != nil {
			return nil, err
		}
	}

	return []ast.Statement{&ast.IfStatement{Test: test, Consequent: consequent, Alternate: alternate}}, nil
}

// translateLoop is the mid-test rewrite (§4.4, testable property 3):
// a Loop with exit test E, before-body B, after-body A becomes
// While(true, B ++ [If(E, [Break])] ++ A).
func translateLoop(n *rawNode) ([]ast.Statement, error) {
	exitTest, err := parseXMLExpr(textOf(n, "_text_str"))
	if err != nil {
		return nil, err
	}

	before, err := translateChain(firstChild(findChild(n, "", "_before_Child")))
	if err != nil {
		return nil, err
	}
	after, err := translateChain(firstChild(findChild(n, "", "_after_Child")))
	if err != nil {
		return nil, err
	}

	exitCheck := &ast.IfStatement{
		Test:       exitTest,
		Consequent: &ast.Block{Statements: []ast.Statement{&ast.BreakStatement{}}},
	}

	body := make([]ast.Statement, 0, len(before)+1+len(after))
	body = append(body, before...)
	body = append(body, exitCheck)
	body = append(body, after...)

	trueLit := &ast.Literal{Kind: ast.BoolLiteral, BoolValue: true}
	return []ast.Statement{&ast.WhileStatement{Test: trueLit, Body: &ast.Block{Statements: body}}}, nil
}

var wordSubstitutions = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`\bmod\b`), "MOD"},
	{regexp.MustCompile(`\band\b`), "AND"},
	{regexp.MustCompile(`\bor\b`), "OR"},
	{regexp.MustCompile(`\bnot\b`), "NOT"},
}

// preprocessExpr rewrites a FlowXML expression field into FlowLang
// surface syntax (§4.4): lowercase and/or/not/mod become their FlowLang
// keywords, "<>" becomes "!=", and a bare "=" (one not already part of
// ":=", "==", "<=", ">=", "!=") becomes "==". This is textual
// substitution, not tokenization — per the Open Question in §9, an
// identifier containing these substrings with surrounding spaces would
// be mis-rewritten; that risk is accepted as-is.
func preprocessExpr(s string) string {
	s = strings.ReplaceAll(s, "<>", "!=")
	for _, sub := range wordSubstitutions {
		s = sub.pattern.ReplaceAllString(s, sub.replace)
	}
	return normalizeEquals(s)
}

func normalizeEquals(s string) string {
	runes := []rune(s)
	var out strings.Builder
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '=' {
			out.WriteRune(ch)
			continue
		}
		if i+1 < len(runes) && runes[i+1] == '=' {
			out.WriteString("==")
			i++
			continue
		}
		if i > 0 && (runes[i-1] == ':' || runes[i-1] == '<' || runes[i-1] == '>' || runes[i-1] == '!') {
			out.WriteRune('=')
			continue
		}
		out.WriteString("==")
	}
	return out.String()
}

func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// parseXMLExpr preprocesses and lexes a FlowXML text field and parses
// it with C2, reusing C1/C2 exactly as §4.4 requires.
func parseXMLExpr(raw string) (ast.Expression, error) {
	processed := preprocessExpr(strings.TrimSpace(raw))

	var tokens []lexer.Token
	for _, tok := range lexer.New(processed).Tokenize() {
		if tok.Type == lexer.EOF || tok.Type == lexer.NEWLINE {
			continue
		}
		tokens = append(tokens, tok)
	}

	expr, err := parser.ParseExpression(tokens, processed, "")
	if err != nil {
		return nil, errors.NewXmlStructure("expression", err.Error())
	}
	if expr == nil {
		return nil, errors.NewXmlStructure("expression", "empty expression field")
	}
	return expr, nil
}
