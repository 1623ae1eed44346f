package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/parser"
)

func generate(t *testing.T, input string) (string, *Generator) {
	t.Helper()
	p := parser.New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, p.Errors())
	}
	g := New()
	out, err := g.Generate(prog)
	if err != nil {
		t.Fatalf("Generate(%q) returned error: %v", input, err)
	}
	return out, g
}

func TestGeneratePreambleIsAlwaysEmitted(t *testing.T) {
	out, _ := generate(t, "೫ ಮುದ್ರಿಸು.")
	if !strings.Contains(out, "static void add_op(void)") {
		t.Error("expected the runtime preamble to be embedded in generated output")
	}
	if !strings.Contains(out, "int main(void) {") {
		t.Error("expected a main function")
	}
}

func TestGenerateArithmeticAndPrint(t *testing.T) {
	out, _ := generate(t, "೫ * ೧೦ ಮುದ್ರಿಸು.")
	if !strings.Contains(out, "push_int(5LL);") {
		t.Errorf("expected push_int(5LL) in output:\n%s", out)
	}
	if !strings.Contains(out, "push_int(10LL);") {
		t.Errorf("expected push_int(10LL) in output:\n%s", out)
	}
	if !strings.Contains(out, "mul_op();") {
		t.Errorf("expected mul_op() call in output:\n%s", out)
	}
	if !strings.Contains(out, "print_op();") {
		t.Errorf("expected print_op() call in output:\n%s", out)
	}
}

func TestGenerateWordDefinitionEmitsFunction(t *testing.T) {
	out, _ := generate(t, "ಇಮ್ಮಡಿ: ೨ * ॥ ೫ ಇಮ್ಮಡಿ ಮುದ್ರಿಸು.")
	if !strings.Contains(out, "static void "+mangle("ಇಮ್ಮಡಿ")+"(void) {") {
		t.Errorf("expected a mangled function for the word definition:\n%s", out)
	}
	if !strings.Contains(out, mangle("ಇಮ್ಮಡಿ")+"();") {
		t.Errorf("expected a call to the mangled word function in main:\n%s", out)
	}
}

func TestGenerateVarAssignDeclaresOnce(t *testing.T) {
	out, _ := generate(t, "x := ೫. x := x + ೧.")
	name := mangle("x")
	if strings.Count(out, "Value "+name+" = pop();") != 1 {
		t.Errorf("expected exactly one declaration of %s, got:\n%s", name, out)
	}
	if !strings.Contains(out, name+" = pop();\n") {
		t.Errorf("expected a bare reassignment of %s, got:\n%s", name, out)
	}
}

func TestGenerateListLiteralWarnsAndSkips(t *testing.T) {
	g := New()
	p := parser.New(lexer.New("[೧ ೨ ೩] ಮುದ್ರಿಸು."))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	out, err := g.Generate(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "list/map literals are not supported in generated C") {
		t.Errorf("expected a skip comment for the list literal:\n%s", out)
	}
	if len(g.Warnings()) == 0 {
		t.Error("expected at least one warning for the skipped list literal")
	}
}

func TestGenerateConditional(t *testing.T) {
	out, _ := generate(t, "ಸರಿ ? [೧ ಮುದ್ರಿಸು.] [೨ ಮುದ್ರಿಸು.]")
	if !strings.Contains(out, "if (pop().as.b) {") {
		t.Errorf("expected a conditional branch:\n%s", out)
	}
	if !strings.Contains(out, "} else {") {
		t.Errorf("expected an else branch:\n%s", out)
	}
}

func TestMangleDeterministicForNonASCII(t *testing.T) {
	got := mangle("ಇಮ್ಮಡಿ")
	if !strings.HasPrefix(got, "word_") {
		t.Errorf("mangled name %q should have the word_ prefix", got)
	}
	if got != mangle("ಇಮ್ಮಡಿ") {
		t.Error("mangle should be deterministic for the same input")
	}
	if mangle("dup") != "word_dup" {
		t.Errorf("mangle(%q) = %q, want %q", "dup", mangle("dup"), "word_dup")
	}
}

func TestGenerateSnapshot(t *testing.T) {
	out, _ := generate(t, "ಇಮ್ಮಡಿ: ೨ * ॥ ೫ ಇಮ್ಮಡಿ ಮುದ್ರಿಸು.")
	snaps.MatchSnapshot(t, "double_and_print", out)
}
