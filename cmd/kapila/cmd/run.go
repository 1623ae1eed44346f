package cmd

import (
	"fmt"
	"os"

	"github.com/kapila-lang/kapila/internal/errors"
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/parser"
	"github.com/kapila-lang/kapila/internal/repl"
	"github.com/kapila-lang/kapila/internal/semantic"
	"github.com/kapila-lang/kapila/internal/vm"
	"github.com/spf13/cobra"
)

var typeCheck bool

func init() {
	rootCmd.Flags().BoolVar(&typeCheck, "type-check", false, "run the advisory type checker and print diagnostics before executing")
}

func runInterpreter(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		session := repl.New(os.Stdin, os.Stdout, os.Stderr)
		return session.Run()
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	if typeCheck {
		runTypeCheck(source, filename)
	}

	m := vm.New()
	if _, err := m.Run(source); err != nil {
		if rerr, ok := err.(*vm.RuntimeError); ok {
			ke := rerr.ToKapilaError(source, filename)
			fmt.Fprintln(os.Stderr, ke.Format(true))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return fmt.Errorf("execution failed")
	}
	return nil
}

// runTypeCheck parses source independently (the VM never consults the
// AST) and prints advisory diagnostics to stderr; it never aborts
// execution, per spec.md §9's Open Question resolution.
func runTypeCheck(source, filename string) {
	p := parser.New(lexer.New(source))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, perr := range p.Errors() {
			ke := errors.New(errors.Parse, perr.Pos, perr.Message)
			ke.Source = source
			ke.File = filename
			fmt.Fprintln(os.Stderr, ke.Format(true))
		}
		return
	}
	diags := semantic.NewChecker().Check(program)
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
