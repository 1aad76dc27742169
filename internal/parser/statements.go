package parser

import (
	"github.com/flowconv/flowconv/internal/ast"
	"github.com/flowconv/flowconv/internal/errors"
	"github.com/flowconv/flowconv/internal/lexer"
)

// Parse tokenizes and parses a complete FlowLang source text into a
// Program. file is used only for error messages; pass "" when there is
// no meaningful filename (e.g. a string embedded in FlowXML).
func Parse(source, file string) (*ast.Program, error) {
	tokens := lexer.New(source).Tokenize()
	return ParseProgram(tokens, source, file)
}

// ParseProgram parses a full FlowLang token stream (including newline
// markers) into a Program.
func ParseProgram(tokens []lexer.Token, source, file string) (*ast.Program, error) {
	c := newCursor(tokens)
	block, err := parseStatementList(c, source, file, lexer.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: block.Statements}, nil
}

// isStatementStart reports whether tt is one of the leading tokens that
// unambiguously begin a new statement, used both as expression-boundary terminators
// (§4.3) and to recognize the start of a fresh statement in a block.
func isStatementStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IF, lexer.LOOP, lexer.WHILE, lexer.BREAK, lexer.OUTPUT:
		return true
	default:
		return false
	}
}

func isBlockTerminator(tt lexer.TokenType, terminators ...lexer.TokenType) bool {
	for _, term := range terminators {
		if tt == term {
			return true
		}
	}
	return false
}

// parseStatementList parses statements until the current token matches
// one of terminators (not consumed) or EOF. Newline markers between
// statements are skipped. Reaching EOF without a matching terminator
// (when EOF itself is not a requested terminator) is UnexpectedEOF.
func parseStatementList(c *cursor, source, file string, terminators ...lexer.TokenType) (*ast.Block, error) {
	block := &ast.Block{}
	eofIsTerminator := isBlockTerminator(lexer.EOF, terminators...)

	for {
		for c.is(lexer.NEWLINE) {
			c.advance()
		}

		if c.is(lexer.EOF) {
			if eofIsTerminator {
				return block, nil
			}
			return nil, errors.NewUnexpectedEOF(c.current().Pos, source, file)
		}

		if isBlockTerminator(c.current().Type, terminators...) {
			return block, nil
		}

		stmt, err := parseStatement(c, source, file)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
}

func parseStatement(c *cursor, source, file string) (ast.Statement, error) {
	switch c.current().Type {
	case lexer.IF:
		return parseIfStatement(c, source, file)
	case lexer.LOOP:
		return parseLoopStatement(c, source, file)
	case lexer.WHILE:
		return parseWhileStatement(c, source, file)
	case lexer.BREAK:
		tok := c.advance()
		return &ast.BreakStatement{Token: tok}, nil
	case lexer.OUTPUT:
		return parseOutputStatement(c, source, file)
	default:
		return parseAssignmentStatement(c, source, file)
	}
}

func parseIfStatement(c *cursor, source, file string) (ast.Statement, error) {
	tok := c.advance() // IF

	test, err := parseRequiredExpression(c, source, file)
	if err != nil {
		return nil, err
	}
	if !c.is(lexer.THEN) {
		return nil, errors.NewMissingKeyword("THEN", c.current().Pos, source, file)
	}
	c.advance()

	consequent, err := parseStatementList(c, source, file, lexer.ELSE, lexer.ENDIF)
	if err != nil {
		return nil, err
	}

	var alternate *ast.Block
	if c.is(lexer.ELSE) {
		c.advance()
		alternate, err = parseStatementList(c, source, file, lexer.ENDIF)
		if err != nil {
			return nil, err
		}
	}

	if !c.is(lexer.ENDIF) {
		return nil, errors.NewMissingKeyword("ENDIF", c.current().Pos, source, file)
	}
	c.advance()

	return &ast.IfStatement{Token: tok, Test: test, Consequent: consequent, Alternate: alternate}, nil
}

func parseLoopStatement(c *cursor, source, file string) (ast.Statement, error) {
	tok := c.advance() // LOOP

	body, err := parseStatementList(c, source, file, lexer.ENDLOOP)
	if err != nil {
		return nil, err
	}
	if !c.is(lexer.ENDLOOP) {
		return nil, errors.NewMissingKeyword("ENDLOOP", c.current().Pos, source, file)
	}
	c.advance()

	trueLit := &ast.Literal{Token: tok, Kind: ast.BoolLiteral, BoolValue: true}
	return &ast.WhileStatement{Token: tok, Test: trueLit, Body: body}, nil
}

func parseWhileStatement(c *cursor, source, file string) (ast.Statement, error) {
	tok := c.advance() // WHILE

	test, err := parseRequiredExpression(c, source, file)
	if err != nil {
		return nil, err
	}
	if !c.is(lexer.DO) {
		return nil, errors.NewMissingKeyword("DO", c.current().Pos, source, file)
	}
	c.advance()

	body, err := parseStatementList(c, source, file, lexer.ENDLOOP)
	if err != nil {
		return nil, err
	}
	if !c.is(lexer.ENDLOOP) {
		return nil, errors.NewMissingKeyword("ENDLOOP", c.current().Pos, source, file)
	}
	c.advance()

	return &ast.WhileStatement{Token: tok, Test: test, Body: body}, nil
}

func parseOutputStatement(c *cursor, source, file string) (ast.Statement, error) {
	tok := c.advance() // OUTPUT

	arg, err := parseRequiredExpression(c, source, file)
	if err != nil {
		return nil, err
	}

	call := &ast.CallExpression{Token: tok, Callee: "Output", Args: []ast.Expression{arg}}
	return &ast.ExpressionStatement{Token: tok, Expression: call}, nil
}

func parseAssignmentStatement(c *cursor, source, file string) (ast.Statement, error) {
	tok := c.current()

	lhs, err := parseRequiredExpression(c, source, file)
	if err != nil {
		return nil, err
	}
	if !c.is(lexer.ASSIGN) {
		return nil, errors.NewMissingKeyword(":=", c.current().Pos, source, file)
	}
	c.advance()

	ident, ok := lhs.(*ast.Identifier)
	if !ok {
		return nil, errors.NewInvalidAssignmentTarget(lhs.Pos(), source, file)
	}

	rhs, err := parseRequiredExpression(c, source, file)
	if err != nil {
		return nil, err
	}

	return &ast.AssignmentStatement{Token: tok, Left: ident, Right: rhs}, nil
}

// parseRequiredExpression collects the token run up to the next
// expression boundary (§4.3) and parses it, failing with
// ParseError{EmptyExpression} if nothing was collected.
func parseRequiredExpression(c *cursor, source, file string) (ast.Expression, error) {
	pos := c.current().Pos
	tokens := collectExpressionRun(c)
	if len(tokens) == 0 {
		return nil, errors.NewEmptyExpression(pos, source, file)
	}
	return ParseExpression(tokens, source, file)
}

// collectExpressionRun advances the cursor across the token run that
// forms an expression, per §4.3: it stops, at parenthesis depth 0, at a
// newline marker, ":=", THEN, DO, ELSE, ENDIF, ENDLOOP, or any
// statement-starting keyword. Inside parentheses, newline markers are dropped rather than
// terminating the run, so expressions may span lines only inside
// parens; they are not meaningful to C2 and are simply omitted from
// the collected slice.
func collectExpressionRun(c *cursor) []lexer.Token {
	var out []lexer.Token
	depth := 0

	for {
		tok := c.current()

		if tok.Type == lexer.EOF {
			break
		}

		if depth == 0 && isExpressionBoundary(tok.Type) {
			break
		}

		if tok.Type == lexer.NEWLINE && depth > 0 {
			c.advance()
			continue
		}

		switch tok.Type {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
		}

		out = append(out, tok)
		c.advance()
	}

	return out
}

func isExpressionBoundary(tt lexer.TokenType) bool {
	switch tt {
	case lexer.NEWLINE, lexer.ASSIGN, lexer.THEN, lexer.DO, lexer.ELSE, lexer.ENDIF, lexer.ENDLOOP:
		return true
	default:
		return isStatementStart(tt)
	}
}
