package cmd

import (
	"fmt"
	"os"

	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Kapila file or expression and print its AST",
	Long: `Parse a Kapila program and print the Abstract Syntax Tree the
C-generation path would see (the interpreter never builds this tree).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, err := inputFrom(parseEval, args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		for _, perr := range p.Errors() {
			fmt.Fprintln(os.Stderr, perr.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	fmt.Println(program.String())
	return nil
}
