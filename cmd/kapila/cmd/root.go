package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set by build flags.
	Version = "0.1.0-dev"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kapila",
	Short: "Kapila interpreter",
	Long: `kapila is the interpreter for the Kapila programming language: a
Kannada-script concatenative language with Smalltalk-style postfix
actions and infix arithmetic at statement top level.

Run with no arguments to start an interactive session; pass a file
path to execute it directly.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runInterpreter,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("kapila version %s\n", Version))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
