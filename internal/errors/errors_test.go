package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowconv/flowconv/internal/lexer"
)

func TestParseError_FormatIncludesCaret(t *testing.T) {
	src := "x := 1\ny := +\n"
	err := NewUnexpectedToken(lexer.Token{Type: lexer.PLUS, Literal: "+", Pos: lexer.Position{Line: 2, Column: 6}}, src, "")

	out := err.Format(false)
	assert.True(t, strings.Contains(out, "y := +"))
	assert.True(t, strings.Contains(out, "^"))
	assert.Equal(t, UnexpectedToken, err.Kind)
}

func TestParseError_ErrorImplementsErrorInterface(t *testing.T) {
	var err error = NewEmptyExpression(lexer.Position{Line: 1, Column: 1}, "", "")
	assert.Contains(t, err.Error(), "expected an expression")
}

func TestGenerationError_Kinds(t *testing.T) {
	assert.Equal(t, BreakOutsideLoop, NewBreakOutsideLoop().Kind)

	unk := NewUnknownNode("SomeFutureNode")
	assert.Equal(t, UnknownNode, unk.Kind)
	assert.Equal(t, "SomeFutureNode", unk.NodeKind)
}

func TestFormatErrors_Multiple(t *testing.T) {
	errs := []*ParseError{
		NewUnexpectedEOF(lexer.Position{Line: 1, Column: 1}, "", ""),
		NewInvalidAssignmentTarget(lexer.Position{Line: 2, Column: 1}, "", ""),
	}
	out := FormatErrors(errs, false)
	assert.Contains(t, out, "2 error(s)")
	assert.Contains(t, out, "[Error 1 of 2]")
	assert.Contains(t, out, "[Error 2 of 2]")
}
