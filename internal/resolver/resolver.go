// Package resolver performs a static lexical pass over a parsed AST,
// annotating every local variable reference with the number of enclosing
// scopes to walk through to find its binding (globals are left unannotated),
// and rejecting statically-invalid
// uses of this/super/return/break.
package resolver

import (
	"fmt"

	"github.com/japl-lang/japl/internal/ast"
	"github.com/japl-lang/japl/internal/token"
)

// ResolveError reports a static semantic error pinned to a token.
type ResolveError struct {
	Tok     *token.Token
	Message string
}

func (e *ResolveError) Error() string {
	where := "at end"
	if e.Tok.Kind != token.EOF {
		where = fmt.Sprintf("at '%s'", e.Tok.Lexeme)
	}
	return fmt.Sprintf("at line %d %s: %s", e.Tok.Line, where, e.Message)
}

type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcMethod
	funcInitializer
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks the AST once after parsing, before interpretation.
type Resolver struct {
	scopes      []map[string]bool
	locals      map[ast.Expr]int
	currentFn   functionType
	currentCls  classType
	loopDepth   int
	errors      []error
}

// New creates a Resolver ready to walk a program.
func New() *Resolver {
	return &Resolver{locals: make(map[ast.Expr]int)}
}

// Locals returns the resolved lexical distance for every local variable
// reference found, keyed by the specific AST node instance.
func (r *Resolver) Locals() map[ast.Expr]int {
	return r.locals
}

// Errors returns every static error collected while resolving.
func (r *Resolver) Errors() []error {
	return r.errors
}

// Resolve walks an entire program's statement list.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	if _, err := s.Accept(r); err != nil {
		r.errors = append(r.errors, err)
	}
}

func (r *Resolver) resolveExpr(e ast.Expr) {
	if e == nil {
		return
	}
	if _, err := e.Accept(r); err != nil {
		r.errors = append(r.errors, err)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name *token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.errors = append(r.errors, &ResolveError{Tok: name, Message: "Already a variable with this name in this scope."})
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name *token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name *token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any scope: treated as global, resolved by name at runtime.
}

func (r *Resolver) resolveFunction(stmt *ast.FunctionStmt, fnType functionType) {
	enclosingFn := r.currentFn
	r.currentFn = fnType
	defer func() { r.currentFn = enclosingFn }()

	r.beginScope()
	defer r.endScope()
	for _, param := range stmt.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(stmt.Body)
}

// --- StmtVisitor ------------------------------------------------------

func (r *Resolver) VisitBlockStmt(stmt *ast.BlockStmt) (interface{}, error) {
	r.beginScope()
	r.resolveStmts(stmt.Stmts)
	r.endScope()
	return nil, nil
}

func (r *Resolver) VisitBreakStmt(stmt *ast.BreakStmt) (interface{}, error) {
	if r.loopDepth == 0 {
		return nil, &ResolveError{Tok: stmt.Keyword, Message: "Cannot use 'break' outside of a loop."}
	}
	return nil, nil
}

func (r *Resolver) VisitClassStmt(stmt *ast.ClassStmt) (interface{}, error) {
	enclosingCls := r.currentCls
	r.currentCls = classClass
	defer func() { r.currentCls = enclosingCls }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errors = append(r.errors, &ResolveError{Tok: stmt.Superclass.Name, Message: "A class cannot inherit from itself."})
		} else {
			r.currentCls = classSubclass
			r.resolveExpr(stmt.Superclass)
		}
	}

	if stmt.Superclass != nil {
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
		defer r.endScope()
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	defer r.endScope()

	for _, method := range stmt.Methods {
		fnType := funcMethod
		if method.Name.Lexeme == "init" {
			fnType = funcInitializer
		}
		r.resolveFunction(method, fnType)
	}
	return nil, nil
}

func (r *Resolver) VisitDelStmt(stmt *ast.DelStmt) (interface{}, error) {
	// Deletion is not depth-annotated: it always starts its search from the
	// current environment outward at runtime, so no local is recorded here.
	return nil, nil
}

func (r *Resolver) VisitExprStmt(stmt *ast.ExprStmt) (interface{}, error) {
	r.resolveExpr(stmt.Expression)
	return nil, nil
}

func (r *Resolver) VisitFunctionStmt(stmt *ast.FunctionStmt) (interface{}, error) {
	r.declare(stmt.Name)
	r.define(stmt.Name)
	r.resolveFunction(stmt, funcFunction)
	return nil, nil
}

func (r *Resolver) VisitIfStmt(stmt *ast.IfStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.resolveStmt(stmt.Then)
	if stmt.Else != nil {
		r.resolveStmt(stmt.Else)
	}
	return nil, nil
}

func (r *Resolver) VisitReturnStmt(stmt *ast.ReturnStmt) (interface{}, error) {
	if r.currentFn == funcNone {
		return nil, &ResolveError{Tok: stmt.Keyword, Message: "Cannot return from top-level code."}
	}
	if stmt.Value != nil {
		if r.currentFn == funcInitializer {
			return nil, &ResolveError{Tok: stmt.Keyword, Message: "Cannot return a value from an initializer."}
		}
		r.resolveExpr(stmt.Value)
	}
	return nil, nil
}

func (r *Resolver) VisitVarStmt(stmt *ast.VarStmt) (interface{}, error) {
	r.declare(stmt.Name)
	if stmt.Init != nil {
		r.resolveExpr(stmt.Init)
	}
	r.define(stmt.Name)
	return nil, nil
}

func (r *Resolver) VisitWhileStmt(stmt *ast.WhileStmt) (interface{}, error) {
	r.resolveExpr(stmt.Cond)
	r.loopDepth++
	r.resolveStmt(stmt.Body)
	r.loopDepth--
	return nil, nil
}

// --- ExprVisitor ------------------------------------------------------

func (r *Resolver) VisitAssignExpr(expr *ast.AssignExpr) (interface{}, error) {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	r.resolveExpr(expr.Callee)
	for _, arg := range expr.Arguments {
		r.resolveExpr(arg)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *ast.GetExpr) (interface{}, error) {
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *ast.GroupingExpr) (interface{}, error) {
	r.resolveExpr(expr.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *ast.LogicalExpr) (interface{}, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(expr *ast.SetExpr) (interface{}, error) {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitSuperExpr(expr *ast.SuperExpr) (interface{}, error) {
	if r.currentCls == classNone {
		return nil, &ResolveError{Tok: expr.Keyword, Message: "Cannot use 'super' outside of a class."}
	}
	if r.currentCls != classSubclass {
		return nil, &ResolveError{Tok: expr.Keyword, Message: "Cannot use 'super' in a class with no superclass."}
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitThisExpr(expr *ast.ThisExpr) (interface{}, error) {
	if r.currentCls == classNone {
		return nil, &ResolveError{Tok: expr.Keyword, Message: "Cannot use 'this' outside of a class."}
	}
	r.resolveLocal(expr, expr.Keyword)
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitVariableExpr(expr *ast.VariableExpr) (interface{}, error) {
	if len(r.scopes) > 0 {
		if ready, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !ready {
			return nil, &ResolveError{Tok: expr.Name, Message: "Cannot read local variable in its own initializer."}
		}
	}
	r.resolveLocal(expr, expr.Name)
	return nil, nil
}
