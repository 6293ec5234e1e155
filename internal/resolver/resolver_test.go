package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japl-lang/japl/internal/ast"
	"github.com/japl-lang/japl/internal/lexer"
	"github.com/japl-lang/japl/internal/parser"
)

func resolve(t *testing.T, source string) (*Resolver, []ast.Stmt) {
	t.Helper()
	toks, err := lexer.New(source).Lex()
	require.NoError(t, err)
	p := parser.New(toks)
	stmts := p.Parse()
	require.Empty(t, p.Errors())
	r := New()
	r.Resolve(stmts)
	return r, stmts
}

func TestResolveBlockLocalHasDistanceZero(t *testing.T) {
	r, stmts := resolve(t, `
		var a = "global";
		{
			var a = "local";
			print(a);
		}
	`)
	require.Empty(t, r.Errors())

	block := stmts[1].(*ast.BlockStmt)
	printCall := block.Stmts[1].(*ast.ExprStmt).Expression.(*ast.CallExpr)
	varExpr := printCall.Arguments[0].(*ast.VariableExpr)
	dist, ok := r.Locals()[varExpr]
	require.True(t, ok)
	assert.Equal(t, 0, dist)
}

func TestResolveGlobalNotInLocals(t *testing.T) {
	r, stmts := resolve(t, `
		var a = "global";
		print(a);
	`)
	require.Empty(t, r.Errors())
	printCall := stmts[1].(*ast.ExprStmt).Expression.(*ast.CallExpr)
	varExpr := printCall.Arguments[0].(*ast.VariableExpr)
	_, ok := r.Locals()[varExpr]
	assert.False(t, ok)
}

func TestResolveSelfInitializationIsError(t *testing.T) {
	toks, err := lexer.New(`{ var a = a; }`).Lex()
	require.NoError(t, err)
	p := parser.New(toks)
	stmts := p.Parse()
	require.Empty(t, p.Errors())
	r := New()
	r.Resolve(stmts)
	require.NotEmpty(t, r.Errors())
}

func TestResolveDuplicateDeclarationInScopeIsError(t *testing.T) {
	_, _ = resolveWithExpectedErrors(t, `{ var a = 1; var a = 2; }`)
}

func resolveWithExpectedErrors(t *testing.T, source string) (*Resolver, []ast.Stmt) {
	t.Helper()
	toks, err := lexer.New(source).Lex()
	require.NoError(t, err)
	p := parser.New(toks)
	stmts := p.Parse()
	require.Empty(t, p.Errors())
	r := New()
	r.Resolve(stmts)
	require.NotEmpty(t, r.Errors())
	return r, stmts
}

func TestResolveReturnOutsideFunctionIsError(t *testing.T) {
	resolveWithExpectedErrors(t, `return 1;`)
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	resolveWithExpectedErrors(t, `
		class A {
			init() { return 1; }
		}
	`)
}

func TestResolveBreakOutsideLoopIsError(t *testing.T) {
	resolveWithExpectedErrors(t, `break;`)
}

func TestResolveBreakInsideLoopIsOk(t *testing.T) {
	r, _ := resolve(t, `while (true) { break; }`)
	assert.Empty(t, r.Errors())
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	resolveWithExpectedErrors(t, `
		fun f() { return this; }
	`)
}

func TestResolveSuperOutsideSubclassIsError(t *testing.T) {
	resolveWithExpectedErrors(t, `
		class A {
			m() { return super.m(); }
		}
	`)
}

func TestResolveClassInheritingFromItselfIsError(t *testing.T) {
	resolveWithExpectedErrors(t, `class A < A {}`)
}

func TestResolveSuperAndThisResolveInSubclassMethod(t *testing.T) {
	r, _ := resolve(t, `
		class Base {
			greet() { return "base"; }
		}
		class Derived < Base {
			greet() { return super.greet() + this.suffix; }
		}
	`)
	assert.Empty(t, r.Errors())
}

func TestResolveDelDoesNotRecordLocal(t *testing.T) {
	r, stmts := resolve(t, `
		{
			var a = 1;
			del a;
		}
	`)
	require.Empty(t, r.Errors())
	block := stmts[0].(*ast.BlockStmt)
	_, ok := block.Stmts[1].(*ast.DelStmt)
	assert.True(t, ok)
	assert.Empty(t, r.Locals())
}
