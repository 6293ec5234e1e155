// Package session wires the lexer, parser, resolver, and interpreter into
// the run/eval entry points shared by the file runner and the REPL.
package session

import (
	"io"

	"github.com/japl-lang/japl/internal/ast"
	ierrors "github.com/japl-lang/japl/internal/errors"
	"github.com/japl-lang/japl/internal/interp"
	"github.com/japl-lang/japl/internal/lexer"
	"github.com/japl-lang/japl/internal/parser"
	"github.com/japl-lang/japl/internal/resolver"
)

// Session holds one interpreter instance across multiple Run calls, so
// that a REPL can accumulate global variable and function definitions
// between lines the way the reference implementation does.
type Session struct {
	interp   *interp.Interpreter
	reporter *ierrors.SimpleReporter
}

// New creates a Session writing program output to output and echoing bare
// expression-statement results when isREPL is true.
func New(output io.Writer, isREPL bool) *Session {
	locals := make(map[ast.Expr]int)
	return &Session{
		interp:   interp.New(output, locals, isREPL),
		reporter: ierrors.NewSimpleReporter(output),
	}
}

// Reporter exposes the session's error reporter so callers can inspect
// HadError/HadRuntimeError after Run.
func (s *Session) Reporter() *ierrors.SimpleReporter {
	return s.reporter
}

// Run lexes, parses, resolves, and interprets source, reporting every
// error it finds along the way. It stops before interpreting if lexing,
// parsing, or resolving failed, matching the reference driver's
// fail-fast-per-stage behavior from spec.md §6.
func (s *Session) Run(source string) {
	s.reporter.Reset()

	toks, err := lexer.New(source).Lex()
	if err != nil {
		s.reporter.Report(err)
		return
	}

	p := parser.New(toks)
	stmts := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		s.reporter.ReportAll(errs)
		return
	}

	r := resolver.New()
	r.Resolve(stmts)
	if errs := r.Errors(); len(errs) > 0 {
		s.reporter.ReportAll(errs)
		return
	}

	s.interp.MergeLocals(r.Locals())

	if err := s.interp.Interpret(stmts); err != nil {
		s.reporter.Report(err)
	}
}
