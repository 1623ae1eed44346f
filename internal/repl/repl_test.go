package repl

import (
	"strings"
	"testing"
)

func TestSessionEvaluatesAndPrints(t *testing.T) {
	in := strings.NewReader("೫ * ೧೦ ಮುದ್ರಿಸು.\nexit\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "50") {
		t.Errorf("output %q does not contain expected result 50", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("expected no stderr output, got %q", errOut.String())
	}
}

func TestSessionStackCommand(t *testing.T) {
	in := strings.NewReader("೫.\n.s\nexit\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "5") {
		t.Errorf("expected stack listing to contain 5, got %q", out.String())
	}
}

func TestSessionClearCommand(t *testing.T) {
	in := strings.NewReader("೫.\nclear\n.s\nexit\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "(empty)") {
		t.Errorf("expected stack to be cleared, got %q", out.String())
	}
}

func TestSessionTraceToggle(t *testing.T) {
	in := strings.NewReader(".t\nexit\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Machine.Trace {
		t.Error("expected trace to be toggled on")
	}
	if !strings.Contains(out.String(), "trace: true") {
		t.Errorf("expected trace status echoed, got %q", out.String())
	}
}

func TestSessionWordsAndVarsCommandsWhenEmpty(t *testing.T) {
	in := strings.NewReader(".w\n.v\nexit\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Count(out.String(), "(none)") != 2 {
		t.Errorf("expected two (none) listings, got %q", out.String())
	}
}

func TestSessionReportsRuntimeErrorsToErrOut(t *testing.T) {
	in := strings.NewReader("೫ / ೦.\nexit\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), "division by zero") {
		t.Errorf("expected division-by-zero error on stderr, got %q", errOut.String())
	}
}

func TestSessionQuitStopsTheLoop(t *testing.T) {
	in := strings.NewReader("quit\n೫ ಮುದ್ರಿಸು.\n")
	var out, errOut strings.Builder
	s := New(in, &out, &errOut)

	if err := s.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "5\n") {
		t.Error("expected the loop to stop at quit, before reaching the next line")
	}
}
