package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japl-lang/japl/internal/ast"
	"github.com/japl-lang/japl/internal/lexer"
)

func parse(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	toks, err := lexer.New(source).Lex()
	require.NoError(t, err)
	p := New(toks)
	stmts := p.Parse()
	require.Empty(t, p.Errors())
	return stmts
}

func TestParseVarDecl(t *testing.T) {
	stmts := parse(t, `var a = 1 + 2;`)
	require.Len(t, stmts, 1)
	varStmt, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	assert.Equal(t, "a", varStmt.Name.Lexeme)
	_, ok = varStmt.Init.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParseIfElse(t *testing.T) {
	stmts := parse(t, `if (true) { var a = 1; } else { var b = 2; }`)
	require.Len(t, stmts, 1)
	ifStmt, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseWhileAndBreak(t *testing.T) {
	stmts := parse(t, `while (true) { break; }`)
	require.Len(t, stmts, 1)
	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	block, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 1)
	_, ok = block.Stmts[0].(*ast.BreakStmt)
	assert.True(t, ok)
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts := parse(t, `for (var i = 0; i < 10; i = i + 1) { print(i); }`)
	require.Len(t, stmts, 1)
	outer, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, outer.Stmts, 2)
	_, ok = outer.Stmts[0].(*ast.VarStmt)
	assert.True(t, ok)
	whileStmt, ok := outer.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
}

func TestParseForWithOmittedClauses(t *testing.T) {
	stmts := parse(t, `for (;;) { break; }`)
	require.Len(t, stmts, 1)
	whileStmt, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	lit, ok := whileStmt.Cond.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, true, lit.Value)
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parse(t, `
		class Base {
			greet() { return "hi"; }
		}
		class Derived < Base {
			greet() { return super.greet(); }
		}
	`)
	require.Len(t, stmts, 2)
	derived, ok := stmts[1].(*ast.ClassStmt)
	require.True(t, ok)
	require.NotNil(t, derived.Superclass)
	assert.Equal(t, "Base", derived.Superclass.Name.Lexeme)
	require.Len(t, derived.Methods, 1)
	assert.Equal(t, "greet", derived.Methods[0].Name.Lexeme)
}

func TestParseFunctionDecl(t *testing.T) {
	stmts := parse(t, `fun add(a, b) { return a + b; }`)
	require.Len(t, stmts, 1)
	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Lexeme)
	assert.Equal(t, "b", fn.Params[1].Lexeme)
}

func TestParseDuplicateParameterNameFails(t *testing.T) {
	toks, err := lexer.New(`fun f(a, a) { return a; }`).Lex()
	require.NoError(t, err)
	p := New(toks)
	p.Parse()
	require.NotEmpty(t, p.Errors())
}

func TestParseDelStmt(t *testing.T) {
	stmts := parse(t, `del a;`)
	require.Len(t, stmts, 1)
	del, ok := stmts[0].(*ast.DelStmt)
	require.True(t, ok)
	assert.Equal(t, "a", del.Name.Lexeme)
}

func TestParseAssignmentTargetMustBeVariableOrGet(t *testing.T) {
	toks, err := lexer.New(`1 = 2;`).Lex()
	require.NoError(t, err)
	p := New(toks)
	p.Parse()
	require.NotEmpty(t, p.Errors())
}

func TestParseSetExprAssignment(t *testing.T) {
	stmts := parse(t, `a.b = 1;`)
	require.Len(t, stmts, 1)
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = exprStmt.Expression.(*ast.SetExpr)
	assert.True(t, ok)
}

func TestParseOperatorPrecedence(t *testing.T) {
	stmts := parse(t, `var a = 1 + 2 * 3 ** 2;`)
	require.Len(t, stmts, 1)
	varStmt := stmts[0].(*ast.VarStmt)
	top, ok := varStmt.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	// Top-level op should be '+', with the right side being the '*' subtree.
	assert.Equal(t, "+", top.Op.Lexeme)
	mul, ok := top.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op.Lexeme)
	pow, ok := mul.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "**", pow.Op.Lexeme)
}

func TestParseCallChaining(t *testing.T) {
	stmts := parse(t, `a.b().c;`)
	require.Len(t, stmts, 1)
	exprStmt := stmts[0].(*ast.ExprStmt)
	get, ok := exprStmt.Expression.(*ast.GetExpr)
	require.True(t, ok)
	assert.Equal(t, "c", get.Name.Lexeme)
	_, ok = get.Object.(*ast.CallExpr)
	assert.True(t, ok)
}

func TestParseErrorRecoverySynchronizes(t *testing.T) {
	toks, err := lexer.New(`var = ; var b = 1;`).Lex()
	require.NoError(t, err)
	p := New(toks)
	stmts := p.Parse()
	require.NotEmpty(t, p.Errors())
	found := false
	for _, s := range stmts {
		if v, ok := s.(*ast.VarStmt); ok && v.Name.Lexeme == "b" {
			found = true
		}
	}
	assert.True(t, found, "parser should recover and still parse the trailing declaration")
}

func TestParseThisExprInMethod(t *testing.T) {
	stmts := parse(t, `
		class A {
			init() { this.x = 1; }
		}
	`)
	require.Len(t, stmts, 1)
	class := stmts[0].(*ast.ClassStmt)
	require.Len(t, class.Methods, 1)
	body := class.Methods[0].Body
	require.Len(t, body, 1)
	exprStmt := body[0].(*ast.ExprStmt)
	set, ok := exprStmt.Expression.(*ast.SetExpr)
	require.True(t, ok)
	_, ok = set.Object.(*ast.ThisExpr)
	assert.True(t, ok)
}
