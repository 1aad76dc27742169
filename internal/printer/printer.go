// Package printer renders a FlowLang AST back to indented FlowLang
// source text. Expression rendering (§4.5 of the surface grammar) is
// already exact on ast.Expression.String — this package only adds the
// block-nesting the AST's own String methods intentionally skip.
package printer

import (
	"strings"

	"github.com/flowconv/flowconv/internal/ast"
)

const indentUnit = "  "

// Print renders a whole program, one statement per top-level line.
func Print(prog *ast.Program) string {
	var b strings.Builder
	for _, stmt := range prog.Statements {
		writeStatement(&b, stmt, 0)
	}
	return b.String()
}

// PrintExpr renders a standalone expression. It exists so callers don't
// need to reach into internal/ast directly for the printer's job.
func PrintExpr(expr ast.Expression) string {
	if expr == nil {
		return ""
	}
	return expr.String()
}

func indent(b *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		b.WriteString(indentUnit)
	}
}

func writeBlock(b *strings.Builder, block *ast.Block, level int) {
	if block == nil {
		return
	}
	for _, stmt := range block.Statements {
		writeStatement(b, stmt, level)
	}
}

func writeStatement(b *strings.Builder, stmt ast.Statement, level int) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		indent(b, level)
		b.WriteString(s.Left.String())
		b.WriteString(" := ")
		b.WriteString(s.Right.String())
		b.WriteString("\n")

	case *ast.ExpressionStatement:
		indent(b, level)
		if call, ok := s.Expression.(*ast.CallExpression); ok && call.Callee == "Output" && len(call.Args) == 1 {
			b.WriteString("OUTPUT ")
			b.WriteString(call.Args[0].String())
		} else {
			b.WriteString(s.Expression.String())
		}
		b.WriteString("\n")

	case *ast.BreakStatement:
		indent(b, level)
		b.WriteString("BREAK\n")

	case *ast.IfStatement:
		indent(b, level)
		b.WriteString("IF ")
		b.WriteString(s.Test.String())
		b.WriteString(" THEN\n")
		writeBlock(b, s.Consequent, level+1)
		if s.Alternate != nil {
			indent(b, level)
			b.WriteString("ELSE\n")
			writeBlock(b, s.Alternate, level+1)
		}
		indent(b, level)
		b.WriteString("ENDIF\n")

	case *ast.WhileStatement:
		indent(b, level)
		if ast.IsLiteralTrue(s.Test) {
			b.WriteString("LOOP\n")
		} else {
			b.WriteString("WHILE ")
			b.WriteString(s.Test.String())
			b.WriteString(" DO\n")
		}
		writeBlock(b, s.Body, level+1)
		indent(b, level)
		b.WriteString("ENDLOOP\n")

	default:
		indent(b, level)
		b.WriteString(stmt.String())
		b.WriteString("\n")
	}
}
