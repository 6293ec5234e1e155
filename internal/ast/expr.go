// Package ast defines the expression and statement node types produced by
// the parser and walked by the resolver and interpreter.
package ast

import "github.com/japl-lang/japl/internal/token"

// Expr is any expression node. Each concrete node is a distinct pointer
// type, so two nodes are identity-comparable as map keys even when they
// are textually identical — this is what lets the resolver attach a
// lexical depth to one specific occurrence of a variable reference.
type Expr interface {
	Accept(v ExprVisitor) (interface{}, error)
}

// ExprVisitor dispatches over every expression variant.
type ExprVisitor interface {
	VisitAssignExpr(expr *AssignExpr) (interface{}, error)
	VisitBinaryExpr(expr *BinaryExpr) (interface{}, error)
	VisitCallExpr(expr *CallExpr) (interface{}, error)
	VisitGetExpr(expr *GetExpr) (interface{}, error)
	VisitGroupingExpr(expr *GroupingExpr) (interface{}, error)
	VisitLiteralExpr(expr *LiteralExpr) (interface{}, error)
	VisitLogicalExpr(expr *LogicalExpr) (interface{}, error)
	VisitSetExpr(expr *SetExpr) (interface{}, error)
	VisitSuperExpr(expr *SuperExpr) (interface{}, error)
	VisitThisExpr(expr *ThisExpr) (interface{}, error)
	VisitUnaryExpr(expr *UnaryExpr) (interface{}, error)
	VisitVariableExpr(expr *VariableExpr) (interface{}, error)
}

// AssignExpr is `name = value`. The resolver records target lexical depth.
type AssignExpr struct {
	Name  *token.Token
	Value Expr
}

func NewAssignExpr(name *token.Token, value Expr) *AssignExpr {
	return &AssignExpr{Name: name, Value: value}
}

func (e *AssignExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitAssignExpr(e) }

// BinaryExpr is `left op right` for arithmetic, comparison, and equality.
type BinaryExpr struct {
	Left  Expr
	Op    *token.Token
	Right Expr
}

func NewBinaryExpr(left Expr, op *token.Token, right Expr) *BinaryExpr {
	return &BinaryExpr{Left: left, Op: op, Right: right}
}

func (e *BinaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitBinaryExpr(e) }

// CallExpr is `callee(arguments...)`. Paren is the closing ')' token, used
// to pin arity and "not callable" runtime errors to a source location.
type CallExpr struct {
	Callee    Expr
	Paren     *token.Token
	Arguments []Expr
}

func NewCallExpr(callee Expr, paren *token.Token, arguments []Expr) *CallExpr {
	return &CallExpr{Callee: callee, Paren: paren, Arguments: arguments}
}

func (e *CallExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitCallExpr(e) }

// GetExpr is `object.name`, a property read.
type GetExpr struct {
	Object Expr
	Name   *token.Token
}

func NewGetExpr(object Expr, name *token.Token) *GetExpr {
	return &GetExpr{Object: object, Name: name}
}

func (e *GetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGetExpr(e) }

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Expression Expr
}

func NewGroupingExpr(expression Expr) *GroupingExpr {
	return &GroupingExpr{Expression: expression}
}

func (e *GroupingExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitGroupingExpr(e) }

// LiteralExpr carries an already-decoded value: number, string, boolean, or nil.
type LiteralExpr struct {
	Value interface{}
}

func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

func (e *LiteralExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLiteralExpr(e) }

// LogicalExpr is `left and right` or `left or right`, with short-circuit evaluation.
type LogicalExpr struct {
	Left  Expr
	Op    *token.Token
	Right Expr
}

func NewLogicalExpr(left Expr, op *token.Token, right Expr) *LogicalExpr {
	return &LogicalExpr{Left: left, Op: op, Right: right}
}

func (e *LogicalExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitLogicalExpr(e) }

// SetExpr is `object.name = value`, a property write.
type SetExpr struct {
	Object Expr
	Name   *token.Token
	Value  Expr
}

func NewSetExpr(object Expr, name *token.Token, value Expr) *SetExpr {
	return &SetExpr{Object: object, Name: name, Value: value}
}

func (e *SetExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSetExpr(e) }

// SuperExpr is `super.method`, legal only inside a subclass method body.
type SuperExpr struct {
	Keyword *token.Token
	Method  *token.Token
}

func NewSuperExpr(keyword, method *token.Token) *SuperExpr {
	return &SuperExpr{Keyword: keyword, Method: method}
}

func (e *SuperExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitSuperExpr(e) }

// ThisExpr is `this`, legal only inside a method body.
type ThisExpr struct {
	Keyword *token.Token
}

func NewThisExpr(keyword *token.Token) *ThisExpr {
	return &ThisExpr{Keyword: keyword}
}

func (e *ThisExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitThisExpr(e) }

// UnaryExpr is `-right` or `!right`.
type UnaryExpr struct {
	Op    *token.Token
	Right Expr
}

func NewUnaryExpr(op *token.Token, right Expr) *UnaryExpr {
	return &UnaryExpr{Op: op, Right: right}
}

func (e *UnaryExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitUnaryExpr(e) }

// VariableExpr is a bare identifier reference.
type VariableExpr struct {
	Name *token.Token
}

func NewVariableExpr(name *token.Token) *VariableExpr {
	return &VariableExpr{Name: name}
}

func (e *VariableExpr) Accept(v ExprVisitor) (interface{}, error) { return v.VisitVariableExpr(e) }
