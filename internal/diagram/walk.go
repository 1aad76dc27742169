// Package diagram renders a FlowLang AST as a flowchart, in either
// Mermaid or Graphviz DOT syntax. Both renderers share one AST walk
// (walk.go); only node/edge emission and label escaping differ, mirroring
// the shared-base / two-renderer split the FlowXML toolchain's own
// generation layer uses.
package diagram

import (
	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/errors"
)

// NodeShape is the flowchart shape a node is drawn with. The walk
// decides shapes; each generator maps them to its own syntax.
type NodeShape int

const (
	ShapeStart NodeShape = iota
	ShapeProcess
	ShapeIO
	ShapeDecision
	ShapeMerge
)

// generator is what walk needs from a concrete renderer: a way to add a
// labeled, shaped node and a way to connect two nodes, both returning/
// taking the renderer's own node-ID scheme.
type generator interface {
	addNode(label string, shape NodeShape) string
	addEdge(from, to, label string)
}

// walker carries the loop-exit stack BREAK needs to find its target,
// one per generator run.
type walker struct {
	g             generator
	loopExitStack []string
}

// walkStatements generates a chain of nodes for stmts and links them
// sequentially, returning the entry node of the first statement and the
// exit node of the last. An empty exit means the chain doesn't fall
// through (it ends in a BREAK).
func (w *walker) walkStatements(stmts []ast.Statement) (entry, exit string, err error) {
	if len(stmts) == 0 {
		return "", "", nil
	}

	entries := make([]string, len(stmts))
	exits := make([]string, len(stmts))
	for i, stmt := range stmts {
		e, x, err := w.walkOne(stmt)
		if err != nil {
			return "", "", err
		}
		entries[i], exits[i] = e, x
	}

	for i := 0; i < len(entries)-1; i++ {
		if exits[i] != "" && entries[i+1] != "" {
			w.g.addEdge(exits[i], entries[i+1], "")
		}
	}

	return entries[0], exits[len(exits)-1], nil
}

func (w *walker) walkOne(stmt ast.Statement) (entry, exit string, err error) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		n := w.g.addNode(s.Left.String()+" := "+s.Right.String(), ShapeProcess)
		return n, n, nil

	case *ast.ExpressionStatement:
		if call, ok := s.Expression.(*ast.CallExpression); ok && call.Callee == "Output" && len(call.Args) == 1 {
			n := w.g.addNode("OUTPUT: "+call.Args[0].String(), ShapeIO)
			return n, n, nil
		}
		n := w.g.addNode(s.Expression.String(), ShapeProcess)
		return n, n, nil

	case *ast.BreakStatement:
		if len(w.loopExitStack) == 0 {
			return "", "", errors.NewBreakOutsideLoop()
		}
		n := w.g.addNode(" ", ShapeMerge)
		w.g.addEdge(n, w.loopExitStack[len(w.loopExitStack)-1], "")
		return n, "", nil

	case *ast.IfStatement:
		return w.walkIf(s)

	case *ast.WhileStatement:
		return w.walkWhile(s)

	default:
		n := w.g.addNode("Unknown", ShapeProcess)
		return n, n, nil
	}
}

func (w *walker) walkIf(s *ast.IfStatement) (entry, exit string, err error) {
	cond := w.g.addNode(s.Test.String(), ShapeDecision)
	merge := w.g.addNode(" ", ShapeMerge)

	trueEntry, trueExit, err := w.walkStatements(s.Consequent.Statements)
	if err != nil {
		return "", "", err
	}
	if trueEntry != "" {
		w.g.addEdge(cond, trueEntry, "True")
	} else {
		w.g.addEdge(cond, merge, "True")
	}
	if trueExit != "" {
		w.g.addEdge(trueExit, merge, "")
	}

	var altStmts []ast.Statement
	if s.Alternate != nil {
		altStmts = s.Alternate.Statements
	}
	falseEntry, falseExit, err := w.walkStatements(altStmts)
	if err != nil {
		return "", "", err
	}
	if falseEntry != "" {
		w.g.addEdge(cond, falseEntry, "False")
	} else {
		w.g.addEdge(cond, merge, "False")
	}
	if falseExit != "" {
		w.g.addEdge(falseExit, merge, "")
	}

	return cond, merge, nil
}

func (w *walker) walkWhile(s *ast.WhileStatement) (entry, exit string, err error) {
	loopEntry, loopExit, handled, err := w.tryMidTestLoop(s)
	if err != nil {
		return "", "", err
	}
	if handled {
		return loopEntry, loopExit, nil
	}

	cond := w.g.addNode(s.Test.String(), ShapeDecision)
	exitNode := w.g.addNode(" ", ShapeMerge)

	w.loopExitStack = append(w.loopExitStack, exitNode)
	bodyEntry, bodyExit, err := w.walkStatements(s.Body.Statements)
	w.loopExitStack = w.loopExitStack[:len(w.loopExitStack)-1]
	if err != nil {
		return "", "", err
	}

	if bodyEntry != "" {
		w.g.addEdge(cond, bodyEntry, "True")
	} else {
		w.g.addEdge(cond, cond, "True")
	}
	if bodyExit != "" {
		w.g.addEdge(bodyExit, cond, "")
	}
	w.g.addEdge(cond, exitNode, "False")

	return cond, exitNode, nil
}

// tryMidTestLoop recognizes the canonical rewritten mid-test loop —
// While(true) whose body contains an If(test, [Break]) with no Else —
// and draws it the way Raptor itself would: one decision node testing
// the exit condition, with "before" and "after" as the two legs around
// it. This is the diagram side of the rewrite internal/flowxml performs
// on the way in; the walk never re-derives it from anything but the
// shape the rewrite always produces.
func (w *walker) tryMidTestLoop(s *ast.WhileStatement) (entry, exit string, handled bool, err error) {
	if !ast.IsLiteralTrue(s.Test) {
		return "", "", false, nil
	}

	body := s.Body.Statements
	idx := -1
	var ifStmt *ast.IfStatement
	for i, stmt := range body {
		is, isIf := stmt.(*ast.IfStatement)
		if !isIf || is.Alternate != nil || len(is.Consequent.Statements) != 1 {
			continue
		}
		if _, isBreak := is.Consequent.Statements[0].(*ast.BreakStatement); isBreak {
			ifStmt = is
			idx = i
			break
		}
	}
	if ifStmt == nil {
		return "", "", false, nil
	}

	before := body[:idx]
	after := body[idx+1:]

	cond := w.g.addNode(ifStmt.Test.String(), ShapeDecision)
	loopExit := w.g.addNode(" ", ShapeMerge)
	w.g.addEdge(cond, loopExit, "True")

	w.loopExitStack = append(w.loopExitStack, loopExit)
	beforeEntry, beforeExit, err := w.walkStatements(before)
	if err != nil {
		w.loopExitStack = w.loopExitStack[:len(w.loopExitStack)-1]
		return "", "", false, err
	}
	afterEntry, afterExit, err := w.walkStatements(after)
	w.loopExitStack = w.loopExitStack[:len(w.loopExitStack)-1]
	if err != nil {
		return "", "", false, err
	}

	loopEntry := cond
	if beforeEntry != "" {
		loopEntry = beforeEntry
	}

	if beforeExit != "" {
		w.g.addEdge(beforeExit, cond, "")
	}

	continuePath := afterEntry
	if continuePath == "" {
		continuePath = loopEntry
	}
	w.g.addEdge(cond, continuePath, "False")

	if afterExit != "" {
		w.g.addEdge(afterExit, loopEntry, "")
	}

	return loopEntry, loopExit, true, nil
}

// generate runs the shared walk for a program against g and wires the
// synthetic Start/End nodes every renderer wraps the body in.
func generate(g generator, prog *ast.Program) error {
	start := g.addNode("Start", ShapeStart)

	w := &walker{g: g}
	entry, exit, err := w.walkStatements(prog.Statements)
	if err != nil {
		return err
	}

	if entry != "" {
		g.addEdge(start, entry, "")
	}
	last := exit
	if last == "" {
		last = start
	}

	end := g.addNode("End", ShapeStart)
	if last != "" {
		g.addEdge(last, end, "")
	}
	return nil
}
