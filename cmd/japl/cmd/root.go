// Package cmd implements the japl command-line tool's cobra command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/japl-lang/japl/internal/session"
)

// Version is set by build flags.
var Version = "0.1.0-dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "jpl [script]",
	Short: "JAPL interpreter",
	Long: `japl is a tree-walking interpreter for the JAPL scripting language.

Running it with no arguments starts an interactive REPL; with a single
file argument it runs that file and exits. Use the "run" subcommand for
-e/--dump-ast.`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command, returning any error it produced.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print the stage reached before running a program")
	rootCmd.AddCommand(runCmd)
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return runFile(args[0])
	}
	return runREPL()
}

// runFile executes path as a JAPL program and exits nonzero if it reported
// any static or runtime error, per spec.md §6. It is the convenience path
// for `jpl file.jpl` with no subcommand.
func runFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "running %s\n", path)
	}
	return execute(string(content))
}

// execute runs source through a fresh Session, writing program output to
// stdout, and exits with the code spec.md §6 assigns to the worst error
// it reported.
func execute(source string) error {
	s := session.New(os.Stdout, false)
	s.Run(source)

	if s.Reporter().HadRuntimeError() {
		os.Exit(70)
	}
	if s.Reporter().HadError() {
		os.Exit(65)
	}
	return nil
}
