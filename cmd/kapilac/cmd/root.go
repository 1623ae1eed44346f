package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set by build flags.
var Version = "0.1.0-dev"

var (
	outputPath   string
	runAfter     bool
	inlineSource string
	keepFiles    bool
	showVersion  bool
)

var rootCmd = &cobra.Command{
	Use:   "kapilac [file]",
	Short: "Kapila-to-C compiler",
	Long: `kapilac translates a Kapila program into a single self-contained C
translation unit and prints it to standard output.

Pass a file path, or -c for inline source. -o writes the generated C
to a file instead of stdout; -r additionally compiles and runs it
through a detected C toolchain.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write generated C to this path instead of stdout")
	rootCmd.Flags().BoolVarP(&runAfter, "run", "r", false, "compile the generated C and execute it")
	rootCmd.Flags().StringVarP(&inlineSource, "code", "c", "", "compile inline source instead of reading from a file")
	rootCmd.Flags().BoolVarP(&keepFiles, "keep", "k", false, "keep intermediate .c file and compiled binary when used with -r")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print the version")
	rootCmd.SilenceUsage = true
}

func printVersion() {
	fmt.Printf("kapilac version %s\n", Version)
}
