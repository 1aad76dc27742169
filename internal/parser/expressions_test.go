package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowconv/flowconv/internal/lexer"
)

func tokensOf(src string) []lexer.Token {
	toks := lexer.New(src).Tokenize()
	// Drop the trailing EOF and any newline markers; expression token
	// runs never carry them once collected by the statement parser.
	out := toks[:0:0]
	for _, t := range toks {
		if t.Type == lexer.EOF || t.Type == lexer.NEWLINE {
			continue
		}
		out = append(out, t)
	}
	return out
}

func TestParseExpression_Precedence(t *testing.T) {
	// S1: "1 + 2 * 3" -> "(1 + (2 * 3))"
	expr, err := ParseExpression(tokensOf("1 + 2 * 3"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "(1 + (2 * 3))", expr.String())
}

func TestParseExpression_ParenthesesOverridePrecedence(t *testing.T) {
	expr, err := ParseExpression(tokensOf("(1 + 2) * 3"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "((1 + 2) * 3)", expr.String())
}

func TestParseExpression_UnaryBindsTighterThanBinary(t *testing.T) {
	expr, err := ParseExpression(tokensOf("-a*b"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "((-a) * b)", expr.String())
}

func TestParseExpression_NotAndPrecedence(t *testing.T) {
	expr, err := ParseExpression(tokensOf("NOT a AND b"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "(NOT a AND b)", expr.String())
}

func TestParseExpression_ChainedComparisonFails(t *testing.T) {
	_, err := ParseExpression(tokensOf("a < b < c"), "", "")
	require.Error(t, err)
}

func TestParseExpression_EmptySliceYieldsNoExpression(t *testing.T) {
	expr, err := ParseExpression(nil, "", "")
	require.NoError(t, err)
	assert.Nil(t, expr)
}

func TestParseExpression_InputCall(t *testing.T) {
	expr, err := ParseExpression(tokensOf(`INPUT("?")`), "", "")
	require.NoError(t, err)
	assert.Equal(t, `INPUT("?")`, expr.String())
}

func TestParseExpression_StringLiteralStripsQuotes(t *testing.T) {
	expr, err := ParseExpression(tokensOf(`"hi"`), "", "")
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, expr.String())
}

func TestParseExpression_BooleanLiterals(t *testing.T) {
	expr, err := ParseExpression(tokensOf("TRUE"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", expr.String())
}

func TestParseExpression_FloatVsInt(t *testing.T) {
	i, err := ParseExpression(tokensOf("42"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "42", i.String())

	f, err := ParseExpression(tokensOf("3.0"), "", "")
	require.NoError(t, err)
	assert.Equal(t, "3", f.String())
}
