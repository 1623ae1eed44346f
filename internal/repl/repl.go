// Package repl implements the interactive line-at-a-time session
// cmd/kapila drives: a thin loop around internal/vm that adds the
// dot-commands spec.md §6 names, plus a trace toggle kept as a
// supplemented debugging aid.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kapila-lang/kapila/internal/errors"
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/vm"
)

// Session holds one REPL's VM and I/O streams.
type Session struct {
	Machine *vm.VM
	In      io.Reader
	Out     io.Writer
	ErrOut  io.Writer
	Prompt  string
}

// New creates a Session over the given streams with a fresh VM.
func New(in io.Reader, out, errOut io.Writer) *Session {
	m := vm.New()
	m.SetOutput(out)
	return &Session{Machine: m, In: in, Out: out, ErrOut: errOut, Prompt: "ಕಪಿಲ> "}
}

// Run drives the read-eval-print loop until EOF or an exit command.
func (s *Session) Run() error {
	scanner := bufio.NewScanner(s.In)
	fmt.Fprint(s.Out, s.Prompt)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(s.Out, s.Prompt)
			continue
		}

		if s.handleCommand(line) {
			fmt.Fprint(s.Out, s.Prompt)
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if _, err := s.Machine.Run(line); err != nil {
			s.reportError(err)
		}
		fmt.Fprint(s.Out, s.Prompt)
	}
	return scanner.Err()
}

// handleCommand recognizes a dot-command or its bare-word alias and
// executes it, reporting whether the line was consumed as a command
// (and so should not reach the VM).
func (s *Session) handleCommand(line string) bool {
	switch line {
	case "help":
		s.printHelp()
		return true
	case ".s", "stack":
		s.printStack()
		return true
	case ".w", "words":
		s.printWords()
		return true
	case ".v", "vars":
		s.printVars()
		return true
	case "clear":
		s.Machine.ClearStack()
		return true
	case ".t", "trace":
		s.Machine.Trace = !s.Machine.Trace
		fmt.Fprintf(s.Out, "trace: %v\n", s.Machine.Trace)
		return true
	default:
		return false
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.Out, "exit/quit       leave the session")
	fmt.Fprintln(s.Out, "help            show this message")
	fmt.Fprintln(s.Out, ".s / stack      print the operand stack")
	fmt.Fprintln(s.Out, ".w / words      list user-defined words")
	fmt.Fprintln(s.Out, ".v / vars       list bound variables")
	fmt.Fprintln(s.Out, "clear           empty the operand stack")
	fmt.Fprintln(s.Out, ".t / trace      toggle execution tracing")
}

func (s *Session) printStack() {
	stack := s.Machine.Stack()
	if len(stack) == 0 {
		fmt.Fprintln(s.Out, "(empty)")
		return
	}
	for _, v := range stack {
		fmt.Fprintln(s.Out, v.String())
	}
}

func (s *Session) printWords() {
	names := s.Machine.Words()
	if len(names) == 0 {
		fmt.Fprintln(s.Out, "(none)")
		return
	}
	for _, name := range names {
		fmt.Fprintln(s.Out, name)
	}
}

func (s *Session) printVars() {
	vars := s.Machine.Vars()
	if len(vars) == 0 {
		fmt.Fprintln(s.Out, "(none)")
		return
	}
	for name, val := range vars {
		fmt.Fprintf(s.Out, "%s = %s\n", name, val.String())
	}
}

func (s *Session) reportError(err error) {
	if rerr, ok := err.(*vm.RuntimeError); ok {
		ke := rerr.ToKapilaError("", "")
		fmt.Fprintln(s.ErrOut, ke.Format(false))
		return
	}
	fmt.Fprintln(s.ErrOut, errors.New(errors.Runtime, lexer.Position{}, err.Error()).Format(false))
}
