// Package errors formats the toolkit's two closed error families —
// ParseError (C2/C3/C4) and GenerationError (C6/C7) — with source
// context, line/column information, and a caret pointing at the
// offending position, in the style of a compiler diagnostic.
package errors

import (
	"fmt"
	"strings"

	"github.com/flowconv/flowconv/internal/lexer"
)

// ParseErrorKind is the closed set of reasons a parse can fail (§7).
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnexpectedEOF
	InvalidAssignmentTarget
	EmptyExpression
	MissingKeyword
	XmlStructure
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	case InvalidAssignmentTarget:
		return "InvalidAssignmentTarget"
	case EmptyExpression:
		return "EmptyExpression"
	case MissingKeyword:
		return "MissingKeyword"
	case XmlStructure:
		return "XmlStructure"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// ParseError is raised by the expression parser, statement parser, or
// XML translator (the lexer itself never fails). Parsers abort on the first ParseError; no
// partial AST is returned.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Pos     lexer.Position
	Source  string // full source text, for caret formatting; may be empty
	File    string // optional, set by CLI callers

	Token    string // set for UnexpectedToken
	Expected string // set for MissingKeyword
	XmlNode  string // set for XmlStructure
}

func (e *ParseError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and caret, optionally
// with ANSI color for terminal output.
func (e *ParseError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Kind)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Kind)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// NewUnexpectedToken builds a ParseError for an unexpected token.
func NewUnexpectedToken(tok lexer.Token, source, file string) *ParseError {
	return &ParseError{
		Kind:    UnexpectedToken,
		Message: fmt.Sprintf("unexpected token %q (%s)", tok.Literal, tok.Type),
		Pos:     tok.Pos,
		Source:  source,
		File:    file,
		Token:   tok.Literal,
	}
}

// NewUnexpectedEOF builds a ParseError for input that ended before a
// grammar rule completed.
func NewUnexpectedEOF(pos lexer.Position, source, file string) *ParseError {
	return &ParseError{
		Kind:    UnexpectedEOF,
		Message: "unexpected end of input",
		Pos:     pos,
		Source:  source,
		File:    file,
	}
}

// NewInvalidAssignmentTarget builds a ParseError for an assignment
// whose left-hand side is not an Identifier.
func NewInvalidAssignmentTarget(pos lexer.Position, source, file string) *ParseError {
	return &ParseError{
		Kind:    InvalidAssignmentTarget,
		Message: "assignment target must be an identifier",
		Pos:     pos,
		Source:  source,
		File:    file,
	}
}

// NewEmptyExpression builds a ParseError for a statement position that
// required an expression but the collected token run was empty.
func NewEmptyExpression(pos lexer.Position, source, file string) *ParseError {
	return &ParseError{
		Kind:    EmptyExpression,
		Message: "expected an expression, found none",
		Pos:     pos,
		Source:  source,
		File:    file,
	}
}

// NewMissingKeyword builds a ParseError for a required keyword that
// did not appear where the grammar expects it.
func NewMissingKeyword(expected string, pos lexer.Position, source, file string) *ParseError {
	return &ParseError{
		Kind:     MissingKeyword,
		Message:  fmt.Sprintf("expected keyword %s", expected),
		Pos:      pos,
		Source:   source,
		File:     file,
		Expected: expected,
	}
}

// NewXmlStructure builds a ParseError raised by the FlowXML translator
// when a document does not match the expected element/link shape.
func NewXmlStructure(nodeType, detail string) *ParseError {
	return &ParseError{
		Kind:    XmlStructure,
		Message: fmt.Sprintf("%s: %s", nodeType, detail),
		XmlNode: nodeType,
	}
}

// GenerationErrorKind is the closed set of reasons generation can fail
// (§7). This type only carries the kind; callers decide the policy. The
// diagram walker does not return UnknownNode: it draws an unrecognized
// statement as an "Unknown" node. internal/printer has no error return
// either; it writes an unrecognized statement's own String() form.
type GenerationErrorKind int

const (
	BreakOutsideLoop GenerationErrorKind = iota
	UnknownNode
)

func (k GenerationErrorKind) String() string {
	switch k {
	case BreakOutsideLoop:
		return "BreakOutsideLoop"
	case UnknownNode:
		return "UnknownNode"
	default:
		return fmt.Sprintf("GenerationErrorKind(%d)", int(k))
	}
}

// GenerationError is raised by the FlowLang generator or diagram
// generator.
type GenerationError struct {
	Kind     GenerationErrorKind
	Message  string
	NodeKind string // set for UnknownNode
}

func (e *GenerationError) Error() string {
	return e.Message
}

// NewBreakOutsideLoop builds a GenerationError for a BreakStatement
// with no enclosing WhileStatement.
func NewBreakOutsideLoop() *GenerationError {
	return &GenerationError{
		Kind:    BreakOutsideLoop,
		Message: "break statement outside any enclosing loop",
	}
}

// NewUnknownNode builds a GenerationError for an AST node kind the
// generator does not recognize.
func NewUnknownNode(nodeKind string) *GenerationError {
	return &GenerationError{
		Kind:     UnknownNode,
		Message:  fmt.Sprintf("unknown node kind %q", nodeKind),
		NodeKind: nodeKind,
	}
}

// FormatErrors formats multiple ParseErrors the way a compiler reports
// a multi-error batch. The toolkit's parsers themselves abort on the
// first error (§7); this is for a caller that holds several ParseErrors,
// e.g. one per input file.
func FormatErrors(errs []*ParseError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "failed with %d error(s):\n\n", len(errs))
	for i, err := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
