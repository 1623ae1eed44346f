package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kapila-lang/kapila/internal/codegen"
	"github.com/kapila-lang/kapila/internal/errors"
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/parser"
	"github.com/spf13/cobra"
)

func runCompile(_ *cobra.Command, args []string) error {
	if showVersion {
		printVersion()
		return nil
	}

	input, filename, err := compileInput(args)
	if err != nil {
		return err
	}

	p := parser.New(lexer.New(input))
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		var kerrs []*errors.KapilaError
		for _, perr := range p.Errors() {
			ke := errors.New(errors.Parse, perr.Pos, perr.Message)
			ke.Source = input
			ke.File = filename
			kerrs = append(kerrs, ke)
		}
		fmt.Fprintln(os.Stderr, errors.FormatAll(kerrs, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(p.Errors()))
	}

	gen := codegen.New()
	source, err := gen.Generate(program)
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}
	for _, warning := range gen.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	cPath := outputPath
	if cPath == "" && runAfter {
		cPath = defaultCPath(filename)
	}

	if cPath == "" {
		fmt.Print(source)
		return nil
	}

	if err := os.WriteFile(cPath, []byte(source), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cPath, err)
	}
	fmt.Printf("wrote %s\n", cPath)

	if !runAfter {
		return nil
	}
	return compileAndRun(cPath, keepFiles)
}

// compileInput resolves the input source from -c or a file argument.
func compileInput(args []string) (source, filename string, err error) {
	if inlineSource != "" {
		return inlineSource, "<inline>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -c for inline code")
}

func defaultCPath(filename string) string {
	if filename == "" || filename == "<inline>" {
		return "a.c"
	}
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return base + ".c"
}
