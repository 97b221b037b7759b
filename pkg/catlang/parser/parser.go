// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"strings"

	"github.com/consensys/go-catlang/pkg/catlang/ast"
	"github.com/consensys/go-catlang/pkg/catlang/lexer"
	"github.com/consensys/go-catlang/pkg/util/source"
)

// Parse a given token stream into a block statement representing the whole
// program.  Parsing stops at the first error encountered, which is returned
// along with the line on which it arose.
func Parse(tokens []lexer.Token) (ast.BlockStatement, *source.Error) {
	return NewParser(tokens).Parse()
}

// Parser is a recursive descent parser for catlang.  Expressions are not
// parsed here, but are instead captured as token runs for the code generator.
type Parser struct {
	tokens []lexer.Token
	// Position within the tokens
	index int
	// Current line (counting from 1)
	line int64
	// Number of newlines consumed within the current statement, which have
	// not yet been recorded in the tree.
	pending int
}

// NewParser constructs a new parser for a given token stream.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{tokens, 0, 1, 0}
}

// Parse the token stream into a block statement.
func (p *Parser) Parse() (ast.BlockStatement, *source.Error) {
	var (
		block ast.BlockStatement
		node  ast.Node
		err   *source.Error
	)
	//
	for p.index < len(p.tokens) {
		lookahead := p.tokens[p.index]
		//
		switch {
		case lookahead.Kind == lexer.NEWLINE:
			p.index++
			p.line++
			block = append(block, &ast.Newline{})
			//
			continue
		case lookahead.IsOperator(";"):
			p.index++
			continue
		case lookahead.IsKeyword("fn"):
			node, err = p.parseFunction()
		case lookahead.IsKeyword("return"):
			node, err = p.parseReturn()
		case lookahead.IsKeyword("if"):
			node, err = p.parseIf()
		case lookahead.IsKeyword("let"):
			node, err = p.parseLet()
		case lookahead.Kind == lexer.IDENTIFIER:
			node, err = p.parseIdentifierStatement()
		default:
			err = p.errorf("unexpected stray %s", lookahead.String())
		}
		//
		if err != nil {
			return nil, err
		}
		//
		block = append(block, node)
		// Record newlines which occurred within the statement.
		for ; p.pending > 0; p.pending-- {
			block = append(block, &ast.Newline{})
		}
	}
	//
	return block, nil
}

// ============================================================================
// Functions
// ============================================================================

func (p *Parser) parseFunction() (ast.Node, *source.Error) {
	var (
		names, types []string
		returns      *string
	)
	// Advance past "fn"
	p.index++
	//
	name, ok := p.match(lexer.IDENTIFIER)
	if !ok || isMacroName(name.Text) {
		return nil, p.errorf("expected identifier after function keyword")
	}
	//
	if !p.matchOperator("(") {
		return nil, p.errorf("in function definition of %s, expected '(' after the function name", name.Text)
	}
	// Parse parameters
	for {
		tok, ok := p.nextSignificant()
		//
		switch {
		case !ok:
			return nil, p.errorf("unexpected end of file in parameter list of '%s'", name.Text)
		case tok.IsOperator(")"):
			return p.parseFunctionTail(name.Text, names, types, returns)
		case tok.Kind != lexer.IDENTIFIER:
			return nil, p.errorf("expected either operator ')' or identifier in function definition of '%s', "+
				"but got %s instead", name.Text, tok.String())
		}
		//
		param := tok.Text
		//
		if tok, ok = p.nextSignificant(); !ok || !tok.IsOperator(":") {
			return nil, p.errorf("expected an operator ':' after function parameter '%s'", param)
		}
		//
		if tok, ok = p.nextSignificant(); !ok || tok.Kind != lexer.IDENTIFIER {
			return nil, p.errorf("expected a type after parameter name '%s' in function declaration of %s",
				param, name.Text)
		}
		//
		names = append(names, param)
		types = append(types, tok.Text)
		//
		tok, ok = p.nextSignificant()
		//
		switch {
		case ok && tok.IsOperator(","):
			continue
		case ok && tok.IsOperator(")"):
			return p.parseFunctionTail(name.Text, names, types, returns)
		case ok && tok.IsOperator("{"):
			return nil, p.errorf("unexpected opening curly brace '{' in parameter list of function definition of %s, "+
				"did you forget to close the parentheses of the argument list?", name.Text)
		default:
			return nil, p.errorf("expected a comma after parameter '%s'", param)
		}
	}
}

// Parse everything after the parameter list of a function, which determines
// whether this is a definition or a prototype.
func (p *Parser) parseFunctionTail(name string, names []string, types []string, returns *string) (ast.Node,
	*source.Error) {
	//
	if p.matchOperator("->") {
		tok, ok := p.match(lexer.IDENTIFIER)
		if !ok {
			return nil, p.errorf("expected return type after '->' in function declaration of '%s'", name)
		}
		//
		returns = &tok.Text
		//
		if !p.followsStatementEnd() && !p.followsOperator("{") {
			return nil, p.errorf("expected '{' after '-> %s', or ';' or a newline if this is a function prototype",
				tok.Text)
		}
	}
	//
	switch {
	case p.followsStatementEnd():
		p.matchOperator(";")
		return &ast.FunctionPrototype{Name: name, ParamTypes: types, ReturnType: returns}, nil
	case p.followsOperator("{"):
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		//
		return &ast.FunctionDefinition{Name: name, ParamNames: names, ParamTypes: types, ReturnType: returns,
			Body: body}, nil
	default:
		return nil, p.errorf("expected either '{', '->', ';' or a newline after the parameter list of '%s'", name)
	}
}

// ============================================================================
// Statements
// ============================================================================

func (p *Parser) parseReturn() (ast.Node, *source.Error) {
	// Advance past "return"
	p.index++
	//
	return &ast.ReturnStatement{Expr: p.parseExpression()}, nil
}

func (p *Parser) parseIf() (ast.Node, *source.Error) {
	var (
		left, right []lexer.Token
		op          ast.CmpOp
		found       bool
	)
	// Advance past "if"
	p.index++
	//
	if tok, ok := p.nextSignificant(); !ok || !tok.IsOperator("(") {
		return nil, p.errorf("expected '(' after if keyword")
	}
	// Left-hand side runs up to the comparator
	for !found {
		tok, ok := p.nextSignificant()
		//
		switch {
		case !ok || tok.IsOperator("{"):
			return nil, p.errorf("expected a comparison operator in if statement")
		case tok.Kind == lexer.OPERATOR:
			if op, found = ast.LookupCmpOp(tok.Text); found {
				continue
			}
		}
		//
		left = append(left, tok)
	}
	// Right-hand side runs up to the start of the body
	for {
		tok, ok := p.peekSignificant()
		if !ok {
			return nil, p.errorf("expected '{' after condition of if statement")
		} else if tok.IsOperator("{") {
			break
		}
		//
		p.nextSignificant()
		right = append(right, tok)
	}
	// Last token of the condition should be the closing bracket
	if n := len(right); n == 0 {
		return nil, p.errorf("expected ')' before '{' in if statement")
	} else if !right[n-1].IsOperator(")") {
		return nil, p.errorf("expected ')' before '{' in if statement, but got %s", right[n-1].String())
	}
	//
	right = right[:len(right)-1]
	//
	if len(left) == 0 {
		return nil, p.errorf("expected an expression before '%s' in if statement", op.String())
	} else if len(right) == 0 {
		return nil, p.errorf("expected an expression after '%s' in if statement", op.String())
	}
	//
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	//
	return &ast.IfStatement{Left: ast.NewExpression(left...), Operator: op, Right: ast.NewExpression(right...),
		Body: body}, nil
}

func (p *Parser) parseLet() (ast.Node, *source.Error) {
	var (
		datatype *string
		init     *ast.Expression
	)
	// Advance past "let"
	p.index++
	//
	name, ok := p.match(lexer.IDENTIFIER)
	if !ok || isMacroName(name.Text) {
		return nil, p.errorf("expected identifier after let keyword")
	}
	// Optional type
	if p.matchOperator(":") {
		tok, ok := p.match(lexer.IDENTIFIER)
		if !ok {
			return nil, p.errorf("expected a type after ':' in definition of variable '%s'", name.Text)
		}
		//
		datatype = &tok.Text
	} else if !p.followsOperator("=") && !p.followsStatementEnd() {
		return nil, p.errorf("expected operator ':' or operator '=' after the variable name '%s'", name.Text)
	}
	// Optional initialiser
	if p.matchOperator("=") {
		expr := p.parseExpression()
		if expr.IsEmpty() {
			return nil, p.errorf("expected an initial value for variable '%s'", name.Text)
		}
		//
		init = &expr
	} else if !p.followsStatementEnd() {
		return nil, p.errorf("expected operator '=', operator ';' or newline after type of variable '%s'", name.Text)
	} else {
		p.matchOperator(";")
	}
	// Something is required to determine the type
	if datatype == nil && init == nil {
		return nil, p.errorf("variable '%s' requires either a type or an initial value", name.Text)
	}
	//
	return &ast.VariableDefinition{Name: name.Text, Type: datatype, Init: init}, nil
}

func (p *Parser) parseIdentifierStatement() (ast.Node, *source.Error) {
	var (
		name  = p.tokens[p.index].Text
		macro = isMacroName(name)
	)
	// Advance past identifier
	p.index++
	//
	if p.matchOperator("(") {
		args, n, ok := ast.SplitArguments(p.tokens[p.index:])
		if !ok {
			return nil, p.errorf("expected operator ')' to close call to '%s'", name)
		}
		//
		p.skip(n)
		//
		if macro {
			return &ast.MacroCall{Name: name, Args: args}, nil
		}
		//
		return &ast.FunctionCall{Name: name, Args: args}, nil
	} else if macro {
		return nil, p.errorf("expected operator '(' after macro '%s'", name)
	} else if p.index >= len(p.tokens) {
		return nil, p.errorf("expected either operator '(' or operator '=' after identifier '%s', but got nothing", name)
	}
	//
	tok := p.tokens[p.index]
	p.index++
	//
	switch {
	case tok.IsOperator("="):
		expr := p.parseExpression()
		if expr.IsEmpty() {
			return nil, p.errorf("expected an expression after '=' in assignment to '%s'", name)
		}
		//
		return &ast.VariableAssignment{Name: name, Expr: expr}, nil
	case isCompoundAssignment(tok):
		expr := p.parseExpression()
		if expr.IsEmpty() {
			return nil, p.errorf("expected an expression after '%s' in assignment to '%s'", tok.Text, name)
		}
		// Desugar "x op= e" into "x = x op e"
		op := strings.TrimSuffix(tok.Text, "=")
		tokens := []lexer.Token{lexer.NewToken(lexer.IDENTIFIER, name), lexer.NewToken(lexer.OPERATOR, op)}
		//
		return &ast.VariableAssignment{Name: name, Expr: ast.NewExpression(append(tokens, expr.Tokens...)...)}, nil
	default:
		return nil, p.errorf("expected either operator '(' or operator '=' after identifier '%s', but got %s",
			name, tok.String())
	}
}

// Parse an expression which runs until the end of the statement.  A
// terminating ';' is consumed, whilst a terminating newline is left for the
// enclosing block (so that it is counted).
func (p *Parser) parseExpression() ast.Expression {
	var tokens []lexer.Token
	//
	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]
		//
		if tok.Kind == lexer.NEWLINE {
			break
		}
		//
		p.index++
		//
		if tok.IsOperator(";") {
			break
		}
		//
		tokens = append(tokens, tok)
	}
	//
	return ast.NewExpression(tokens...)
}

// ============================================================================
// Blocks
// ============================================================================

// Parse a block statement starting at an opening brace.  The enclosed tokens
// are identified by counting nested braces, and are then parsed recursively.
func (p *Parser) parseBlock() (ast.BlockStatement, *source.Error) {
	var (
		start = p.line
		depth = 1
		// Newlines consumed before the block are placed at its start, so that
		// line counting within the block remains exact.
		body = make(ast.BlockStatement, p.pending)
	)
	//
	for i := range body {
		body[i] = &ast.Newline{}
	}
	//
	p.pending = 0
	// Advance past "{"
	p.index++
	//
	for i := p.index; i < len(p.tokens); i++ {
		tok := p.tokens[i]
		//
		switch {
		case tok.IsOperator("{"):
			depth++
		case tok.IsOperator("}"):
			depth--
		}
		//
		if depth == 0 {
			inner := p.tokens[p.index:i]
			//
			nested, err := Parse(inner)
			if err != nil {
				return nil, err.At(start - 1)
			}
			// Account for lines within the block
			p.line += countNewlines(inner)
			p.index = i + 1
			//
			return append(body, nested...), nil
		}
	}
	//
	return nil, p.errorf("expected operator '}' to close block statement")
}

// ============================================================================
// Helpers
// ============================================================================

// Match attempts to match a token of the given kind.
func (p *Parser) match(kind uint) (lexer.Token, bool) {
	if p.index < len(p.tokens) && p.tokens[p.index].Kind == kind {
		p.index++
		return p.tokens[p.index-1], true
	}
	//
	return lexer.Token{}, false
}

// MatchOperator attempts to match the given operator.
func (p *Parser) matchOperator(op string) bool {
	if p.followsOperator(op) {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) followsOperator(op string) bool {
	return p.index < len(p.tokens) && p.tokens[p.index].IsOperator(op)
}

// Check whether the end of a statement follows, which is either ';', a newline
// or the end of the token stream.
func (p *Parser) followsStatementEnd() bool {
	return p.index >= len(p.tokens) || p.followsOperator(";") || p.tokens[p.index].Kind == lexer.NEWLINE
}

// Return the next token which is not a newline, without consuming it.
func (p *Parser) peekSignificant() (lexer.Token, bool) {
	for i := p.index; i < len(p.tokens); i++ {
		if p.tokens[i].Kind != lexer.NEWLINE {
			return p.tokens[i], true
		}
	}
	//
	return lexer.Token{}, false
}

// Consume (and return) the next token which is not a newline.  Any newlines
// skipped are counted.
func (p *Parser) nextSignificant() (lexer.Token, bool) {
	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]
		p.index++
		//
		if tok.Kind != lexer.NEWLINE {
			return tok, true
		}
		//
		p.line++
		p.pending++
	}
	//
	return lexer.Token{}, false
}

// Skip over a given number of tokens, counting any newlines.
func (p *Parser) skip(n int) {
	lines := countNewlines(p.tokens[p.index : p.index+n])
	p.line += lines
	p.pending += int(lines)
	p.index += n
}

func (p *Parser) errorf(format string, args ...any) *source.Error {
	return source.Errorf(source.PARSE_ERROR, p.line, format, args...)
}

func countNewlines(tokens []lexer.Token) int64 {
	var count int64
	//
	for _, tok := range tokens {
		if tok.Kind == lexer.NEWLINE {
			count++
		}
	}
	//
	return count
}

func isCompoundAssignment(tok lexer.Token) bool {
	return tok.IsOperator("+=") || tok.IsOperator("-=") || tok.IsOperator("*=") || tok.IsOperator("/=")
}

func isMacroName(name string) bool {
	return strings.HasSuffix(name, "!")
}
