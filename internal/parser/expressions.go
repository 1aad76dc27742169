package parser

import (
	"strconv"

	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/errors"
	"github.com/flowconv/flowconv/internal/lexer"
)

// ParseExpression parses a self-contained run of tokens (no trailing
// statement-boundary markers) into an expression AST, honoring the
// precedence table in §4.2:
//
//	OR  <  AND  <  comparison  <  additive  <  multiplicative  <  unary  <  atom
//
// Comparison is deliberately non-associative: parseComparison consumes
// at most one comparison operator and does not loop, so "a<b<c" leaves
// the second "<" unconsumed, which the leftover-token check below
// turns into ParseError{UnexpectedToken}. An empty token slice is not
// an error; it returns a nil expression (the "neutral value" the
// contract names).
func ParseExpression(tokens []lexer.Token, source, file string) (ast.Expression, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	c := newCursor(tokens)
	expr, err := parseOr(c, source, file)
	if err != nil {
		return nil, err
	}
	if !c.atEnd() {
		return nil, errors.NewUnexpectedToken(c.current(), source, file)
	}
	return expr, nil
}

func parseOr(c *cursor, source, file string) (ast.Expression, error) {
	left, err := parseAnd(c, source, file)
	if err != nil {
		return nil, err
	}
	for c.is(lexer.OR) {
		tok := c.advance()
		right, err := parseAnd(c, source, file)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func parseAnd(c *cursor, source, file string) (ast.Expression, error) {
	left, err := parseComparison(c, source, file)
	if err != nil {
		return nil, err
	}
	for c.is(lexer.AND) {
		tok := c.advance()
		right, err := parseComparison(c, source, file)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func isComparisonOp(tt lexer.TokenType) bool {
	switch tt {
	case lexer.EQ, lexer.NOT_EQ, lexer.LT, lexer.GT, lexer.LT_EQ, lexer.GT_EQ:
		return true
	default:
		return false
	}
}

// parseComparison consumes at most one comparison operator — no loop —
// so chained comparisons are rejected per §4.2's tie-break rule.
func parseComparison(c *cursor, source, file string) (ast.Expression, error) {
	left, err := parseAdditive(c, source, file)
	if err != nil {
		return nil, err
	}
	if isComparisonOp(c.current().Type) {
		tok := c.advance()
		right, err := parseAdditive(c, source, file)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func parseAdditive(c *cursor, source, file string) (ast.Expression, error) {
	left, err := parseMultiplicative(c, source, file)
	if err != nil {
		return nil, err
	}
	for c.is(lexer.PLUS) || c.is(lexer.MINUS) {
		tok := c.advance()
		right, err := parseMultiplicative(c, source, file)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

func parseMultiplicative(c *cursor, source, file string) (ast.Expression, error) {
	left, err := parseUnary(c, source, file)
	if err != nil {
		return nil, err
	}
	for c.is(lexer.STAR) || c.is(lexer.SLASH) || c.is(lexer.MOD) {
		tok := c.advance()
		right, err := parseUnary(c, source, file)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: tok, Left: left, Operator: tok.Literal, Right: right}
	}
	return left, nil
}

// parseUnary binds NOT and unary '-' tighter than any binary operator
// and is right-associative: "- - x" parses as -(-x).
func parseUnary(c *cursor, source, file string) (ast.Expression, error) {
	if c.is(lexer.NOT) || c.is(lexer.MINUS) {
		tok := c.advance()
		operand, err := parseUnary(c, source, file)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpression{Token: tok, Operator: tok.Literal, Right: operand}, nil
	}
	return parseAtom(c, source, file)
}

func parseAtom(c *cursor, source, file string) (ast.Expression, error) {
	tok := c.current()

	switch tok.Type {
	case lexer.LPAREN:
		c.advance()
		inner, err := parseOr(c, source, file)
		if err != nil {
			return nil, err
		}
		if !c.is(lexer.RPAREN) {
			return nil, unexpectedOrEOF(c, source, file)
		}
		c.advance()
		return inner, nil

	case lexer.INPUT:
		c.advance()
		if !c.is(lexer.LPAREN) {
			return nil, unexpectedOrEOF(c, source, file)
		}
		c.advance()
		prompt, err := parseOr(c, source, file)
		if err != nil {
			return nil, err
		}
		if !c.is(lexer.RPAREN) {
			return nil, unexpectedOrEOF(c, source, file)
		}
		c.advance()
		return &ast.CallExpression{Token: tok, Callee: "Input", Args: []ast.Expression{prompt}}, nil

	case lexer.TRUE:
		c.advance()
		return &ast.Literal{Token: tok, Kind: ast.BoolLiteral, BoolValue: true}, nil

	case lexer.FALSE:
		c.advance()
		return &ast.Literal{Token: tok, Kind: ast.BoolLiteral, BoolValue: false}, nil

	case lexer.STRING:
		c.advance()
		return &ast.Literal{Token: tok, Kind: ast.StringLiteralKind, StringValue: unquote(tok.Literal)}, nil

	case lexer.INT:
		c.advance()
		v, _ := strconv.ParseInt(tok.Literal, 10, 64)
		return &ast.Literal{Token: tok, Kind: ast.IntLiteral, IntValue: v}, nil

	case lexer.FLOAT:
		c.advance()
		v, _ := strconv.ParseFloat(tok.Literal, 64)
		return &ast.Literal{Token: tok, Kind: ast.FloatLiteral, FloatValue: v}, nil

	case lexer.IDENT:
		c.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil

	default:
		return nil, unexpectedOrEOF(c, source, file)
	}
}

// unquote strips the surrounding quote characters the lexer preserved
// on a STRING token's literal. Backslash escapes are left verbatim;
// the spec calls for no re-escaping.
func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func unexpectedOrEOF(c *cursor, source, file string) error {
	tok := c.current()
	if tok.Type == lexer.EOF {
		return errors.NewUnexpectedEOF(tok.Pos, source, file)
	}
	return errors.NewUnexpectedToken(tok, source, file)
}
