// Package errors formats Kapila's four error kinds — lexical, parse,
// runtime, and toolchain — into a single user-facing diagnostic shape
// with source context and a caret pointing at the offending column, the
// same presentation the teacher's compiler uses for its own errors.
package errors

import (
	"fmt"
	"strings"

	"github.com/kapila-lang/kapila/internal/lexer"
)

// Kind distinguishes the four error kinds spec.md §7 names.
type Kind int

const (
	Lexical Kind = iota
	Parse
	Runtime
	Toolchain
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "ಲೆಕ್ಸಿಕಲ್"
	case Parse:
		return "ಪಾರ್ಸ್"
	case Runtime:
		return "ರನ್‌ಟೈಮ್"
	case Toolchain:
		return "ಟೂಲ್‌ಚೈನ್"
	default:
		return "unknown"
	}
}

// KapilaError is the single diagnostic shape every layer converts its
// errors into before surfacing them to a user: REPL, batch driver, or
// compiler CLI.
type KapilaError struct {
	Kind    Kind
	Message string
	Source  string // full source text, for line extraction; may be empty
	File    string
	Pos     lexer.Position
}

// New creates a KapilaError. pos may be the zero value when no position
// is meaningful (e.g. a ToolchainError from an external compiler).
func New(kind Kind, pos lexer.Position, message string) *KapilaError {
	return &KapilaError{Kind: kind, Message: message, Pos: pos}
}

func (e *KapilaError) Error() string { return e.Format(false) }

// Format renders the error with the ದೋಷ: prefix spec.md §7 requires,
// the causal line when available, and a caret under the column. Pass
// color=true for ANSI-highlighted terminal output.
func (e *KapilaError) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString("ದೋಷ: ")
	if e.File != "" && e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("%s:%d:%d: ", e.File, e.Pos.Line, e.Pos.Column))
	} else if e.Pos.Line > 0 {
		sb.WriteString(fmt.Sprintf("%d:%d: ", e.Pos.Line, e.Pos.Column))
	}
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("\n%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)-1+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
	}

	return sb.String()
}

func (e *KapilaError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a batch of errors (e.g. a parser's full diagnostic
// list) one after another.
func FormatAll(errs []*KapilaError, color bool) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Format(color)
	}
	return strings.Join(parts, "\n\n")
}
