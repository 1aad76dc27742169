// Package parser implements the expression parser (C2) and statement
// parser (C3): precedence-climbing over a token slice, and
// recursive-descent dispatch over the full FlowLang token stream.
package parser

import "github.com/flowconv/flowconv/internal/lexer"

// cursor is a simple mutable navigation abstraction over a fixed token
// slice. Both the expression parser (over a pre-sliced expression token
// run) and the statement parser (over the full token stream) use it.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func newCursor(tokens []lexer.Token) *cursor {
	return &cursor{tokens: tokens}
}

// current returns the token at the cursor, or a synthetic EOF token if
// the cursor has run past the end of the slice.
func (c *cursor) current() lexer.Token {
	if c.pos >= len(c.tokens) {
		return c.eofToken()
	}
	return c.tokens[c.pos]
}

// peek returns the token n positions ahead of current (peek(0) ==
// current()), or EOF past the end.
func (c *cursor) peek(n int) lexer.Token {
	idx := c.pos + n
	if idx < 0 || idx >= len(c.tokens) {
		return c.eofToken()
	}
	return c.tokens[idx]
}

func (c *cursor) eofToken() lexer.Token {
	if len(c.tokens) > 0 {
		last := c.tokens[len(c.tokens)-1]
		return lexer.Token{Type: lexer.EOF, Pos: last.Pos}
	}
	return lexer.Token{Type: lexer.EOF}
}

// advance moves the cursor forward one token and returns the token it
// was sitting on before advancing.
func (c *cursor) advance() lexer.Token {
	tok := c.current()
	c.pos++
	return tok
}

// is reports whether the current token has type tt.
func (c *cursor) is(tt lexer.TokenType) bool {
	return c.current().Type == tt
}

// atEnd reports whether the cursor has consumed every buffered token.
func (c *cursor) atEnd() bool {
	return c.pos >= len(c.tokens)
}
