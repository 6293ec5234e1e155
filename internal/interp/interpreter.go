// Package interp walks a resolved AST and evaluates it.
package interp

import (
	"fmt"
	"io"
	"math"

	"github.com/japl-lang/japl/internal/ast"
	ierrors "github.com/japl-lang/japl/internal/errors"
	"github.com/japl-lang/japl/internal/token"
)

// Interpreter evaluates a JAPL program by walking its AST. It implements
// both ast.ExprVisitor and ast.StmtVisitor.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[ast.Expr]int
	output      io.Writer
	isREPL      bool
}

// New creates an Interpreter writing program output to output. isREPL
// controls whether a bare expression statement's value is echoed back.
func New(output io.Writer, locals map[ast.Expr]int, isREPL bool) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)

	return &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      locals,
		output:      output,
		isREPL:      isREPL,
	}
}

// MergeLocals adds resolver-computed distances to the interpreter's table,
// letting one long-lived Interpreter accumulate resolutions from several
// separate resolver passes — the REPL resolves and interprets one input
// at a time but keeps the same Interpreter (and its global environment)
// alive across inputs.
func (in *Interpreter) MergeLocals(locals map[ast.Expr]int) {
	for expr, distance := range locals {
		in.locals[expr] = distance
	}
}

// Interpret executes a program's top-level statements in order, stopping
// and returning the first runtime error encountered (break/return signals
// that escape to top level are both programmer errors the resolver should
// have already caught, but are reported rather than panicking just in
// case).
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if _, err := in.exec(stmt); err != nil {
			return normalizeEscapedSignal(err)
		}
	}
	return nil
}

func normalizeEscapedSignal(err error) error {
	switch err.(type) {
	case breakSignal:
		return fmt.Errorf("break outside of a loop")
	case returnSignal:
		return fmt.Errorf("return outside of a function")
	default:
		return err
	}
}

// --- StmtVisitor ------------------------------------------------------

func (in *Interpreter) VisitBlockStmt(stmt *ast.BlockStmt) (interface{}, error) {
	return nil, in.execBlock(stmt.Stmts, NewEnvironment(in.environment))
}

func (in *Interpreter) VisitBreakStmt(stmt *ast.BreakStmt) (interface{}, error) {
	return nil, breakSignal{}
}

func (in *Interpreter) VisitClassStmt(stmt *ast.ClassStmt) (interface{}, error) {
	var super *Class
	if stmt.Superclass != nil {
		superVal, err := in.eval(stmt.Superclass)
		if err != nil {
			return nil, err
		}
		var ok bool
		super, ok = superVal.(*Class)
		if !ok {
			return nil, ierrors.NewRuntimeError(stmt.Superclass.Name, "Superclass must be a class.")
		}

		in.environment = NewEnvironment(in.environment)
		in.environment.Define("super", super)
	}

	methods := make(map[string]*Function)
	for _, method := range stmt.Methods {
		isInitializer := method.Name.Lexeme == "init"
		methods[method.Name.Lexeme] = newFunction(method, in.environment, isInitializer)
	}

	class := newClass(stmt.Name.Lexeme, super, methods)
	if super != nil {
		in.environment = in.environment.enclosing
	}
	in.environment.Define(stmt.Name.Lexeme, class)
	return nil, nil
}

func (in *Interpreter) VisitDelStmt(stmt *ast.DelStmt) (interface{}, error) {
	return nil, in.environment.Delete(stmt.Name)
}

func (in *Interpreter) VisitExprStmt(stmt *ast.ExprStmt) (interface{}, error) {
	value, err := in.eval(stmt.Expression)
	if err != nil {
		return nil, err
	}
	if in.isREPL {
		switch stmt.Expression.(type) {
		case *ast.AssignExpr, *ast.CallExpr:
			// not echoed
		default:
			fmt.Fprintln(in.output, stringify(value))
		}
	}
	return nil, nil
}

func (in *Interpreter) VisitFunctionStmt(stmt *ast.FunctionStmt) (interface{}, error) {
	fn := newFunction(stmt, in.environment, false)
	in.environment.Define(stmt.Name.Lexeme, fn)
	return nil, nil
}

func (in *Interpreter) VisitIfStmt(stmt *ast.IfStmt) (interface{}, error) {
	cond, err := in.eval(stmt.Cond)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return in.exec(stmt.Then)
	} else if stmt.Else != nil {
		return in.exec(stmt.Else)
	}
	return nil, nil
}

func (in *Interpreter) VisitReturnStmt(stmt *ast.ReturnStmt) (interface{}, error) {
	var value interface{}
	if stmt.Value != nil {
		var err error
		value, err = in.eval(stmt.Value)
		if err != nil {
			return nil, err
		}
	}
	return nil, returnSignal{Value: value}
}

func (in *Interpreter) VisitVarStmt(stmt *ast.VarStmt) (interface{}, error) {
	var value interface{}
	if stmt.Init != nil {
		var err error
		value, err = in.eval(stmt.Init)
		if err != nil {
			return nil, err
		}
	}
	in.environment.Define(stmt.Name.Lexeme, value)
	return nil, nil
}

func (in *Interpreter) VisitWhileStmt(stmt *ast.WhileStmt) (interface{}, error) {
	for {
		cond, err := in.eval(stmt.Cond)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			return nil, nil
		}
		if _, err := in.exec(stmt.Body); err != nil {
			if _, isBreak := err.(breakSignal); isBreak {
				return nil, nil
			}
			return nil, err
		}
	}
}

// --- ExprVisitor ------------------------------------------------------

func (in *Interpreter) VisitAssignExpr(expr *ast.AssignExpr) (interface{}, error) {
	value, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}
	if distance, ok := in.locals[expr]; ok {
		in.environment.AssignAt(distance, expr.Name, value)
		return value, nil
	}
	return value, in.globals.Assign(expr.Name, value)
}

func (in *Interpreter) VisitBinaryExpr(expr *ast.BinaryExpr) (interface{}, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.NE:
		return !valuesEqual(left, right), nil
	case token.DEQ:
		return valuesEqual(left, right), nil
	case token.GT:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return a > b, nil })
	case token.GE:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return a >= b, nil })
	case token.LT:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return a < b, nil })
	case token.LE:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return a <= b, nil })
	case token.MINUS:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return a - b, nil })
	case token.STAR:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return a * b, nil })
	case token.POW:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) { return math.Pow(a, b), nil })
	case token.SLASH:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) {
			if b == 0 {
				return nil, ierrors.NewRuntimeError(expr.Op, "Division by zero.")
			}
			return a / b, nil
		})
	case token.MOD:
		return numericBinary(expr.Op, left, right, func(a, b float64) (interface{}, error) {
			if b == 0 {
				return nil, ierrors.NewRuntimeError(expr.Op, "Division by zero.")
			}
			return math.Mod(math.Mod(a, b)+b, b), nil
		})
	case token.PLUS:
		return in.add(expr.Op, left, right)
	}
	panic("unreachable binary operator")
}

// add implements `+`: number+number adds, string+string concatenates, and
// a string mixed with a number stringifies the number and concatenates in
// whichever order the operands appeared.
func (in *Interpreter) add(op *token.Token, left, right interface{}) (interface{}, error) {
	if leftNum, ok := left.(float64); ok {
		if rightNum, ok := right.(float64); ok {
			return leftNum + rightNum, nil
		}
	}
	if leftStr, ok := left.(string); ok {
		if rightStr, ok := right.(string); ok {
			return leftStr + rightStr, nil
		}
	}
	if leftStr, ok := left.(string); ok {
		if _, ok := right.(float64); ok {
			return leftStr + stringify(right), nil
		}
	}
	if _, ok := left.(float64); ok {
		if rightStr, ok := right.(string); ok {
			return stringify(left) + rightStr, nil
		}
	}
	return nil, ierrors.NewRuntimeError(op, "Operands must be numbers or strings.")
}

func numericBinary(op *token.Token, left, right interface{}, fn func(a, b float64) (interface{}, error)) (interface{}, error) {
	leftNum, ok := left.(float64)
	if !ok {
		return nil, ierrors.NewRuntimeError(op, "Operands must be numbers.")
	}
	rightNum, ok := right.(float64)
	if !ok {
		return nil, ierrors.NewRuntimeError(op, "Operands must be numbers.")
	}
	return fn(leftNum, rightNum)
}

func valuesEqual(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func (in *Interpreter) VisitCallExpr(expr *ast.CallExpr) (interface{}, error) {
	callee, err := in.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, 0, len(expr.Arguments))
	for _, argExpr := range expr.Arguments {
		arg, err := in.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	call, ok := callee.(Callable)
	if !ok {
		return nil, ierrors.NewRuntimeError(expr.Paren, "Can only call functions and classes.")
	}
	if len(args) != call.Arity() {
		return nil, ierrors.NewRuntimeError(expr.Paren, fmt.Sprintf("Expected %d arguments but got %d.", call.Arity(), len(args)))
	}
	return call.Call(in, args)
}

func (in *Interpreter) VisitGetExpr(expr *ast.GetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	if instance, ok := obj.(*Instance); ok {
		return instance.Get(expr.Name)
	}
	return nil, ierrors.NewRuntimeError(expr.Name, "Only instances have properties.")
}

func (in *Interpreter) VisitGroupingExpr(expr *ast.GroupingExpr) (interface{}, error) {
	return in.eval(expr.Expression)
}

func (in *Interpreter) VisitLiteralExpr(expr *ast.LiteralExpr) (interface{}, error) {
	return expr.Value, nil
}

func (in *Interpreter) VisitLogicalExpr(expr *ast.LogicalExpr) (interface{}, error) {
	left, err := in.eval(expr.Left)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Kind {
	case token.OR:
		if isTruthy(left) {
			return left, nil
		}
	case token.AND:
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.eval(expr.Right)
}

func (in *Interpreter) VisitSetExpr(expr *ast.SetExpr) (interface{}, error) {
	obj, err := in.eval(expr.Object)
	if err != nil {
		return nil, err
	}
	instance, ok := obj.(*Instance)
	if !ok {
		return nil, ierrors.NewRuntimeError(expr.Name, "Only instances have fields.")
	}
	value, err := in.eval(expr.Value)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name, value)
	return value, nil
}

func (in *Interpreter) VisitSuperExpr(expr *ast.SuperExpr) (interface{}, error) {
	distance := in.locals[expr]
	super := in.environment.GetAt(distance, "super").(*Class)
	this := in.environment.GetAt(distance-1, "this").(*Instance)

	method, ok := super.FindMethod(expr.Method.Lexeme)
	if !ok {
		return nil, ierrors.NewRuntimeError(expr.Method, fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme))
	}
	return method.Bind(this), nil
}

func (in *Interpreter) VisitThisExpr(expr *ast.ThisExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Keyword, expr)
}

func (in *Interpreter) VisitUnaryExpr(expr *ast.UnaryExpr) (interface{}, error) {
	right, err := in.eval(expr.Right)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Kind {
	case token.NEG:
		return !isTruthy(right), nil
	case token.MINUS:
		num, ok := right.(float64)
		if !ok {
			return nil, ierrors.NewRuntimeError(expr.Op, "Operand must be a number.")
		}
		return -num, nil
	}
	panic("unreachable unary operator")
}

func (in *Interpreter) VisitVariableExpr(expr *ast.VariableExpr) (interface{}, error) {
	return in.lookUpVariable(expr.Name, expr)
}

// --- helpers ------------------------------------------------------------

func (in *Interpreter) execBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		if _, err := in.exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) exec(stmt ast.Stmt) (interface{}, error) {
	return stmt.Accept(in)
}

func (in *Interpreter) eval(expr ast.Expr) (interface{}, error) {
	return expr.Accept(in)
}

func (in *Interpreter) lookUpVariable(name *token.Token, expr ast.Expr) (interface{}, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}
