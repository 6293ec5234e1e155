package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/japl-lang/japl/internal/lexer"
	"github.com/japl-lang/japl/internal/parser"
)

var (
	evalExpr string
	dumpAST  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a JAPL file, or an inline expression given with -e",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScript,
}

func init() {
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate the given expression instead of a file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the parsed AST instead of running the program")
}

// runScript resolves the program source from either -e or a positional
// file argument, optionally dumps its parsed AST, and otherwise runs it
// through the same execute path as the root command's convenience form.
func runScript(cmd *cobra.Command, args []string) error {
	source, err := scriptSource(args)
	if err != nil {
		return err
	}

	if dumpAST {
		return dumpProgramAST(source)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "running")
	}
	return execute(source)
}

func scriptSource(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) != 1 {
		return "", fmt.Errorf("run requires a file argument or -e/--eval")
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// dumpProgramAST lexes and parses source, printing each top-level statement
// in Go syntax (%#v) without resolving or interpreting it. Nested nodes are
// not expanded: they appear as pointer values.
func dumpProgramAST(source string) error {
	toks, err := lexer.New(source).Lex()
	if err != nil {
		return err
	}

	p := parser.New(toks)
	stmts := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(65)
	}

	for _, stmt := range stmts {
		fmt.Printf("%#v\n", stmt)
	}
	return nil
}
