package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japl-lang/japl/internal/token"
)

func kinds(t *testing.T, toks []*token.Token) []token.Kind {
	t.Helper()
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestLexSingleCharAndOperators(t *testing.T) {
	toks, err := New("( ) { } , . - + ; * / % ! != = == < <= > >= **").Lex()
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.LP, token.RP, token.LB, token.RB, token.COMMA, token.DOT,
		token.MINUS, token.PLUS, token.SEMICOLON, token.STAR, token.SLASH,
		token.MOD, token.NEG, token.NE, token.EQ, token.DEQ, token.LT,
		token.LE, token.GT, token.GE, token.POW, token.EOF,
	}, kinds(t, toks))
}

func TestLexNumbers(t *testing.T) {
	toks, err := New("1 2.5 10").Lex()
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, float64(1), toks[0].Literal)
	assert.Equal(t, 2.5, toks[1].Literal)
	assert.Equal(t, float64(10), toks[2].Literal)
}

func TestLexStringsBothDelimiters(t *testing.T) {
	toks, err := New(`"hello" 'world'`).Lex()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "hello", toks[0].Literal)
	assert.Equal(t, "world", toks[1].Literal)
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := New(`"unterminated`).Lex()
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Line)
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	toks, err := New("and or class fun if else for while var nil true false return this super del break foo").Lex()
	require.NoError(t, err)
	want := []token.Kind{
		token.AND, token.OR, token.CLASS, token.FUN, token.IF, token.ELSE,
		token.FOR, token.WHILE, token.VAR, token.NIL, token.TRUE,
		token.FALSE, token.RETURN, token.THIS, token.SUPER, token.DEL,
		token.BREAK, token.ID, token.EOF,
	}
	assert.Equal(t, want, kinds(t, toks))
}

func TestLexLineComment(t *testing.T) {
	toks, err := New("1 // a comment\n2").Lex()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
}

func TestLexNestedBlockComment(t *testing.T) {
	toks, err := New("1 /* outer /* inner */ still outer */ 2").Lex()
	require.NoError(t, err)
	require.Len(t, toks, 3)
}

func TestLexUnterminatedBlockCommentFails(t *testing.T) {
	_, err := New("/* never closed").Lex()
	require.Error(t, err)
}

func TestLexLineTracking(t *testing.T) {
	toks, err := New("var a = 1;\nvar b = 2;").Lex()
	require.NoError(t, err)
	var bLine int
	for _, tok := range toks {
		if tok.Kind == token.ID && tok.Lexeme == "b" {
			bLine = tok.Line
		}
	}
	assert.Equal(t, 2, bLine)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	_, err := New("@").Lex()
	require.Error(t, err)
}
