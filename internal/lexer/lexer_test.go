package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{":=", ASSIGN},
		{"==", EQ},
		{"!=", NOT_EQ},
		{"<", LT},
		{">", GT},
		{"<=", LT_EQ},
		{">=", GT_EQ},
		{"+", PLUS},
		{"-", MINUS},
		{"*", STAR},
		{"/", SLASH},
		{"^", CARET},
		{"(", LPAREN},
		{")", RPAREN},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.Next()
			assert.Equal(t, tt.want, tok.Type)
			assert.Equal(t, tt.input, tok.Literal)
		})
	}
}

func TestNext_KeywordsAreCaseSensitive(t *testing.T) {
	l := New("IF if If")
	require.Equal(t, IF, l.Next().Type)
	require.Equal(t, IDENT, l.Next().Type)
	require.Equal(t, IDENT, l.Next().Type)
}

func TestNext_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"42", INT},
		{"0", INT},
		{"1.5", FLOAT},
		{"3.0", FLOAT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := New(tt.input)
			tok := l.Next()
			assert.Equal(t, tt.want, tok.Type)
			assert.Equal(t, tt.input, tok.Literal)
		})
	}
}

func TestNext_TrailingDotIsNotConsumed(t *testing.T) {
	l := New("3.")
	tok := l.Next()
	assert.Equal(t, INT, tok.Type)
	assert.Equal(t, "3", tok.Literal)
	assert.Equal(t, ".", string(l.ch))
}

func TestNext_StringLiteralKeepsQuotesAndEscapes(t *testing.T) {
	l := New(`"hello \"world\""`)
	tok := l.Next()
	require.Equal(t, STRING, tok.Type)
	assert.Equal(t, `"hello \"world\""`, tok.Literal)
}

func TestNext_LineCommentSkippedButNewlineKept(t *testing.T) {
	l := New("x -- a comment\ny")
	tokens := l.Tokenize()

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t, []TokenType{IDENT, NEWLINE, IDENT, EOF}, types)
}

func TestTokenize_SimpleAssignment(t *testing.T) {
	l := New("total := a + 1\n")
	tokens := l.Tokenize()

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t,
		[]TokenType{IDENT, ASSIGN, IDENT, PLUS, INT, NEWLINE, EOF},
		types,
	)
}

func TestTokenize_WhileLoopKeywords(t *testing.T) {
	l := New("WHILE x < 10 DO\nENDLOOP\n")
	tokens := l.Tokenize()

	var types []TokenType
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	assert.Equal(t,
		[]TokenType{WHILE, IDENT, LT, INT, DO, NEWLINE, ENDLOOP, NEWLINE, EOF},
		types,
	)
}

func TestNext_Positions(t *testing.T) {
	l := New("x\n  y")
	x := l.Next()
	nl := l.Next()
	y := l.Next()

	assert.Equal(t, Position{Line: 1, Column: 1}, x.Pos)
	assert.Equal(t, Position{Line: 1, Column: 2}, nl.Pos)
	assert.Equal(t, Position{Line: 2, Column: 3}, y.Pos)
}

func TestNext_SingleCharFallback(t *testing.T) {
	l := New("@")
	tok := l.Next()
	assert.Equal(t, CHAR, tok.Type)
	assert.Equal(t, "@", tok.Literal)
}

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, WHILE, LookupIdent("WHILE"))
	assert.Equal(t, IDENT, LookupIdent("while"))
	assert.Equal(t, IDENT, LookupIdent("total"))
}
