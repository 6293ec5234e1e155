package ast

import "github.com/japl-lang/japl/internal/token"

// Stmt is any statement node.
type Stmt interface {
	Accept(v StmtVisitor) (interface{}, error)
}

// StmtVisitor dispatches over every statement variant.
type StmtVisitor interface {
	VisitBlockStmt(stmt *BlockStmt) (interface{}, error)
	VisitBreakStmt(stmt *BreakStmt) (interface{}, error)
	VisitClassStmt(stmt *ClassStmt) (interface{}, error)
	VisitDelStmt(stmt *DelStmt) (interface{}, error)
	VisitExprStmt(stmt *ExprStmt) (interface{}, error)
	VisitFunctionStmt(stmt *FunctionStmt) (interface{}, error)
	VisitIfStmt(stmt *IfStmt) (interface{}, error)
	VisitReturnStmt(stmt *ReturnStmt) (interface{}, error)
	VisitVarStmt(stmt *VarStmt) (interface{}, error)
	VisitWhileStmt(stmt *WhileStmt) (interface{}, error)
}

// BlockStmt is `{ stmts... }`, executed in a fresh child environment.
type BlockStmt struct {
	Stmts []Stmt
}

func NewBlockStmt(stmts []Stmt) *BlockStmt { return &BlockStmt{Stmts: stmts} }

func (s *BlockStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitBlockStmt(s) }

// BreakStmt unwinds the innermost enclosing While loop.
type BreakStmt struct {
	Keyword *token.Token
}

func NewBreakStmt(keyword *token.Token) *BreakStmt { return &BreakStmt{Keyword: keyword} }

func (s *BreakStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitBreakStmt(s) }

// ClassStmt declares a class with an optional superclass and a method table.
type ClassStmt struct {
	Name       *token.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func NewClassStmt(name *token.Token, superclass *VariableExpr, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

func (s *ClassStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitClassStmt(s) }

// DelStmt removes a binding from the nearest enclosing scope that holds it.
type DelStmt struct {
	Name *token.Token
}

func NewDelStmt(name *token.Token) *DelStmt { return &DelStmt{Name: name} }

func (s *DelStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitDelStmt(s) }

// ExprStmt evaluates an expression and discards the result (except in REPL
// mode, where the interpreter may choose to print it).
type ExprStmt struct {
	Expression Expr
}

func NewExprStmt(expression Expr) *ExprStmt { return &ExprStmt{Expression: expression} }

func (s *ExprStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitExprStmt(s) }

// FunctionStmt declares a named function or a class method.
type FunctionStmt struct {
	Name   *token.Token
	Params []*token.Token
	Body   []Stmt
}

func NewFunctionStmt(name *token.Token, params []*token.Token, body []Stmt) *FunctionStmt {
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

func (s *FunctionStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitFunctionStmt(s) }

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

func NewIfStmt(cond Expr, then, else_ Stmt) *IfStmt {
	return &IfStmt{Cond: cond, Then: then, Else: else_}
}

func (s *IfStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitIfStmt(s) }

// ReturnStmt unwinds the active function call, carrying an optional value.
type ReturnStmt struct {
	Keyword *token.Token
	Value   Expr
}

func NewReturnStmt(keyword *token.Token, value Expr) *ReturnStmt {
	return &ReturnStmt{Keyword: keyword, Value: value}
}

func (s *ReturnStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitReturnStmt(s) }

// VarStmt declares a new variable, with an optional initializer.
type VarStmt struct {
	Name *token.Token
	Init Expr
}

func NewVarStmt(name *token.Token, init Expr) *VarStmt {
	return &VarStmt{Name: name, Init: init}
}

func (s *VarStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitVarStmt(s) }

// WhileStmt repeats Body while Cond is truthy.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

func NewWhileStmt(cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{Cond: cond, Body: body}
}

func (s *WhileStmt) Accept(v StmtVisitor) (interface{}, error) { return v.VisitWhileStmt(s) }
