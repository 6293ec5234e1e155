// Package parser implements JAPL's recursive-descent parser: tokens to AST.
package parser

import (
	"fmt"

	"github.com/japl-lang/japl/internal/ast"
	"github.com/japl-lang/japl/internal/token"
)

const (
	maxArguments = 255
	maxParams    = 255
)

// ParseError reports a grammar violation pinned to the offending token
// (or "at end" for EOF).
type ParseError struct {
	Tok     *token.Token
	Message string
}

func (e *ParseError) Error() string {
	where := "at end"
	if e.Tok.Kind != token.EOF {
		where = fmt.Sprintf("at '%s'", e.Tok.Lexeme)
	}
	return fmt.Sprintf("at line %d %s: %s", e.Tok.Line, where, e.Message)
}

// Parser turns a token sequence into an AST with one-token lookahead.
type Parser struct {
	tokens  []*token.Token
	current int
	errors  []error
}

// New creates a Parser over the given token sequence (as produced by
// lexer.Lex, already EOF-terminated).
func New(tokens []*token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every parse error collected during Parse, in source order.
func (p *Parser) Errors() []error {
	return p.errors
}

// Parse runs `program → declaration* EOF`, collecting one error per failed
// declaration and resuming at the next statement boundary, per §4.2.
func (p *Parser) Parse() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// --- declarations -----------------------------------------------------

func (p *Parser) declaration() (ast.Stmt, error) {
	switch {
	case p.match(token.CLASS):
		return p.classDecl()
	case p.match(token.FUN):
		return p.funDecl("function")
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) classDecl() (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect class name.")
	if err != nil {
		return nil, err
	}

	var superclass *ast.VariableExpr
	if p.match(token.LT) {
		superName, err := p.consume(token.ID, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superclass = ast.NewVariableExpr(superName)
	}

	if _, err := p.consume(token.LB, "Expect '{' before class body."); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionStmt
	for !p.check(token.RB) && !p.isAtEnd() {
		method, err := p.funDecl("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method.(*ast.FunctionStmt))
	}
	if _, err := p.consume(token.RB, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClassStmt(name, superclass, methods), nil
}

func (p *Parser) funDecl(kind string) (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LP, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	var params []*token.Token
	if !p.check(token.RP) {
		for {
			if len(params) >= maxParams {
				return nil, p.errorAt(p.peek(), fmt.Sprintf("Cannot have more than %d parameters.", maxParams))
			}
			param, err := p.consume(token.ID, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			for _, existing := range params {
				if existing.Lexeme == param.Lexeme {
					return nil, p.errorAt(param, "Duplicate parameter name.")
				}
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RP, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LB, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionStmt(name, params, body), nil
}

func (p *Parser) varDecl() (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.match(token.EQ) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarStmt(name, init), nil
}

// --- statements ---------------------------------------------------------

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.BREAK):
		return p.breakStmt()
	case p.match(token.DEL):
		return p.delStmt()
	case p.match(token.LB):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStmt(stmts), nil
	default:
		return p.exprStmt()
	}
}

func (p *Parser) block() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.check(token.RB) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(token.RB, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	if _, err := p.consume(token.LP, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RP, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var else_ ast.Stmt
	if p.match(token.ELSE) {
		else_, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStmt(cond, then, else_), nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	if _, err := p.consume(token.LP, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RP, "Expect ')' after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(cond, body), nil
}

// forStmt desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`, with omitted parts defaulting
// to no-init, `true` condition, and no increment.
func (p *Parser) forStmt() (ast.Stmt, error) {
	if _, err := p.consume(token.LP, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init ast.Stmt
	var err error
	switch {
	case p.match(token.SEMICOLON):
		init = nil
	case p.match(token.VAR):
		init, err = p.varDecl()
	default:
		init, err = p.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var incr ast.Expr
	if !p.check(token.RP) {
		incr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.RP, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = ast.NewBlockStmt([]ast.Stmt{body, ast.NewExprStmt(incr)})
	}
	if cond == nil {
		cond = ast.NewLiteralExpr(true)
	}
	body = ast.NewWhileStmt(cond, body)
	if init != nil {
		body = ast.NewBlockStmt([]ast.Stmt{init, body})
	}
	return body, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		var err error
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(keyword, value), nil
}

func (p *Parser) breakStmt() (ast.Stmt, error) {
	keyword := p.previous()
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after 'break'."); err != nil {
		return nil, err
	}
	return ast.NewBreakStmt(keyword), nil
}

func (p *Parser) delStmt() (ast.Stmt, error) {
	name, err := p.consume(token.ID, "Expect variable name after 'del'.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after 'del' statement."); err != nil {
		return nil, err
	}
	return ast.NewDelStmt(name), nil
}

func (p *Parser) exprStmt() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExprStmt(expr), nil
}

// --- expressions ----------------------------------------------------------

func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expr, error) {
	expr, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(token.EQ) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return ast.NewAssignExpr(target.Name, value), nil
		case *ast.GetExpr:
			return ast.NewSetExpr(target.Object, target.Name, value), nil
		default:
			return nil, p.errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr, nil
}

func (p *Parser) logicOr() (ast.Expr, error) {
	expr, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(token.OR) {
		op := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpr(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) logicAnd() (ast.Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(token.AND) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpr(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binaryLevel(p.comparison, token.DEQ, token.NE)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binaryLevel(p.addition, token.GT, token.GE, token.LT, token.LE)
}

func (p *Parser) addition() (ast.Expr, error) {
	return p.binaryLevel(p.multiplication, token.PLUS, token.MINUS)
}

func (p *Parser) multiplication() (ast.Expr, error) {
	return p.binaryLevel(p.power, token.STAR, token.SLASH, token.MOD)
}

func (p *Parser) power() (ast.Expr, error) {
	return p.binaryLevel(p.unary, token.POW)
}

// binaryLevel implements one left-associative precedence level:
// `next ( (kind1 | kind2 | ...) next )*`.
func (p *Parser) binaryLevel(next func() (ast.Expr, error), kinds ...token.Kind) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(kinds...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpr(expr, op, right)
	}
	return expr, nil
}

func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.NEG, token.MINUS) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(op, right), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(token.LP):
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		case p.match(token.DOT):
			name, err := p.consume(token.ID, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGetExpr(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RP) {
		for {
			if len(args) >= maxArguments {
				return nil, p.errorAt(p.peek(), fmt.Sprintf("Cannot have more than %d arguments.", maxArguments))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(token.RP, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpr(callee, paren, args), nil
}

func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.FALSE):
		return ast.NewLiteralExpr(false), nil
	case p.match(token.TRUE):
		return ast.NewLiteralExpr(true), nil
	case p.match(token.NIL):
		return ast.NewLiteralExpr(nil), nil
	case p.match(token.NUM, token.STR):
		return ast.NewLiteralExpr(p.previous().Literal), nil
	case p.match(token.THIS):
		return ast.NewThisExpr(p.previous()), nil
	case p.match(token.SUPER):
		keyword := p.previous()
		if _, err := p.consume(token.DOT, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(token.ID, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return ast.NewSuperExpr(keyword, method), nil
	case p.match(token.ID):
		return ast.NewVariableExpr(p.previous()), nil
	case p.match(token.LP):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RP, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGroupingExpr(expr), nil
	default:
		return nil, p.errorAt(p.peek(), "Expect expression.")
	}
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() *token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) peek() *token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() *token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(kind token.Kind, message string) (*token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return nil, p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok *token.Token, message string) error {
	return &ParseError{Tok: tok, Message: message}
}

// synchronize discards tokens until a likely statement boundary, so that
// parsing can recover after reporting one error and keep looking for more.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		switch p.peek().Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.RETURN:
			return
		}
		p.advance()
	}
}
