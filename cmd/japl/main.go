// Command japl is a tree-walking interpreter for the JAPL scripting language.
package main

import (
	"fmt"
	"os"

	"github.com/japl-lang/japl/cmd/japl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}