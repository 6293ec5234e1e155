// Package errors formats and reports diagnostics produced by any stage of
// the pipeline (lex, parse, resolve, runtime) through one shared interface,
// so the CLI can decide exit codes without knowing which stage failed.
package errors

import (
	"fmt"
	"io"

	"github.com/japl-lang/japl/internal/token"
)

// RuntimeError reports a failure during tree-walking evaluation, pinned to
// the token responsible.
type RuntimeError struct {
	Tok     *token.Token
	Message string
}

func NewRuntimeError(tok *token.Token, message string) *RuntimeError {
	return &RuntimeError{Tok: tok, Message: message}
}

func (e *RuntimeError) Error() string {
	where := "at end"
	if e.Tok.Kind != token.EOF {
		where = fmt.Sprintf("at '%s'", e.Tok.Lexeme)
	}
	return fmt.Sprintf("at line %d %s: %s", e.Tok.Line, where, e.Message)
}

// Reporter separates error-collection from error-display: lex, parse,
// resolve, and runtime stages all funnel their failures through the same
// interface, which tracks whether the run saw a static error, a runtime
// error, or both — the CLI uses this to choose its process exit code.
type Reporter interface {
	Report(err error)
	Reset()
	HadError() bool
	HadRuntimeError() bool
}

// SimpleReporter writes every error as-is to an underlying writer, and
// classifies it as static or runtime by type-asserting *RuntimeError.
type SimpleReporter struct {
	writer        io.Writer
	hadErr        bool
	hadRuntimeErr bool
}

func NewSimpleReporter(writer io.Writer) *SimpleReporter {
	return &SimpleReporter{writer: writer}
}

func (r *SimpleReporter) Report(err error) {
	fmt.Fprintln(r.writer, err)
	if _, isRuntime := err.(*RuntimeError); isRuntime {
		r.hadRuntimeErr = true
	} else {
		r.hadErr = true
	}
}

func (r *SimpleReporter) ReportAll(errs []error) {
	for _, err := range errs {
		r.Report(err)
	}
}

func (r *SimpleReporter) Reset() {
	r.hadErr = false
	r.hadRuntimeErr = false
}

func (r *SimpleReporter) HadError() bool {
	return r.hadErr
}

func (r *SimpleReporter) HadRuntimeError() bool {
	return r.hadRuntimeErr
}
