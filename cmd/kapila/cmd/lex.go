package cmd

import (
	"fmt"
	"os"

	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Kapila file or expression",
	Long: `Tokenize a Kapila program and print the resulting tokens, for
debugging the lexer in isolation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "show only illegal tokens")
}

func runLex(_ *cobra.Command, args []string) error {
	input, err := inputFrom(lexEval, args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	errCount := 0
	for {
		tok := l.NextToken()
		show := !lexOnlyErrs || tok.Type == lexer.ILLEGAL
		if tok.Type == lexer.ILLEGAL {
			errCount++
		}
		if show {
			printToken(tok)
		}
		if tok.Type == lexer.EOF {
			break
		}
	}
	if errCount > 0 {
		return fmt.Errorf("found %d illegal token(s)", errCount)
	}
	return nil
}

func printToken(tok lexer.Token) {
	line := fmt.Sprintf("[%-10s] %q", tok.Type, tok.Lexeme)
	if lexShowPos {
		line += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(line)
}

func inputFrom(eval string, args []string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline code")
}
