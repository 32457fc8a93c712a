// Command jgo is the CLI front end for the interpreter: run, repl, lex,
// and parse subcommands over pkg/jgo and the scanner/parser packages
// directly, the way the teacher's cmd/dwscript delegates to its own
// internal packages behind a thin Cobra layer.
package main

import (
	"fmt"
	"os"

	"github.com/sambacha/jgo/cmd/jgo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
