package parser

import (
	"testing"

	"github.com/kapila-lang/kapila/internal/ast"
	"github.com/kapila-lang/kapila/internal/lexer"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", input, p.Errors())
	}
	return prog
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parseProgram(t, "೫ + ೩ * ೨.")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", prog.Statements[0])
	}
	be, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok || be.Operator != "+" {
		t.Fatalf("expected top-level +, got %#v", stmt.Expr)
	}
	right, ok := be.Right.(*ast.BinaryExpr)
	if !ok || right.Operator != "*" {
		t.Fatalf("expected nested *, got %#v", be.Right)
	}
}

func TestVarAssign(t *testing.T) {
	prog := parseProgram(t, "x := ೫ + ೩.")
	va, ok := prog.Statements[0].(*ast.VarAssign)
	if !ok {
		t.Fatalf("expected VarAssign, got %T", prog.Statements[0])
	}
	if va.Name != "x" {
		t.Errorf("Name = %q, want x", va.Name)
	}
}

func TestWordDefinition(t *testing.T) {
	prog := parseProgram(t, "ಇಮ್ಮಡಿ: ೨ * ॥")
	wd, ok := prog.Statements[0].(*ast.WordDef)
	if !ok {
		t.Fatalf("expected WordDef, got %T", prog.Statements[0])
	}
	if wd.Name != "ಇಮ್ಮಡಿ" {
		t.Errorf("Name = %q, want ಇಮ್ಮಡಿ", wd.Name)
	}
	if len(wd.Body) != 2 {
		t.Fatalf("expected 2 body elements, got %d", len(wd.Body))
	}
}

func TestPostfixActionAbsorption(t *testing.T) {
	prog := parseProgram(t, "೫ * ೧೦ ಮುದ್ರಿಸು.")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	pa, ok := stmt.Expr.(*ast.PostfixAction)
	if !ok {
		t.Fatalf("expected PostfixAction, got %T", stmt.Expr)
	}
	if len(pa.Actions) != 1 || pa.Actions[0].Name != "ಮುದ್ರಿಸು" {
		t.Fatalf("unexpected actions: %#v", pa.Actions)
	}
}

func TestPostfixActionStopsBeforeNextDefinition(t *testing.T) {
	prog := parseProgram(t, "೫ ಮುದ್ರಿಸು. ಇಮ್ಮಡಿ: ೨ * ॥")
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[1].(*ast.WordDef); !ok {
		t.Fatalf("expected second statement to be WordDef, got %T", prog.Statements[1])
	}
}

func TestListLiteral(t *testing.T) {
	prog := parseProgram(t, "[೧ ೨ ೩].")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	ll, ok := stmt.Expr.(*ast.ListLit)
	if !ok {
		t.Fatalf("expected ListLit, got %T", stmt.Expr)
	}
	if len(ll.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(ll.Elements))
	}
}

func TestBlockLiteralWithParams(t *testing.T) {
	prog := parseProgram(t, "[a b | a b +].")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	b, ok := stmt.Expr.(*ast.Block)
	if !ok {
		t.Fatalf("expected Block, got %T", stmt.Expr)
	}
	if len(b.Params) != 2 || b.Params[0] != "a" || b.Params[1] != "b" {
		t.Fatalf("unexpected params: %#v", b.Params)
	}
	if len(b.Body) != 3 {
		t.Fatalf("expected 3 body elements, got %d", len(b.Body))
	}
}

func TestBlockLiteralWithoutParams(t *testing.T) {
	prog := parseProgram(t, "[೧ ೨ +].")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	b, ok := stmt.Expr.(*ast.Block)
	if !ok {
		t.Fatalf("expected Block (contains operator), got %T", stmt.Expr)
	}
	if len(b.Params) != 0 {
		t.Errorf("expected no params, got %#v", b.Params)
	}
}

func TestListOfNestedBlockIsNotMisclassifiedAsBlock(t *testing.T) {
	prog := parseProgram(t, "[[ನಕಲು *]].")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	ll, ok := stmt.Expr.(*ast.ListLit)
	if !ok {
		t.Fatalf("expected outer ListLit, got %T", stmt.Expr)
	}
	if len(ll.Elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(ll.Elements))
	}
	if _, ok := ll.Elements[0].(*ast.Block); !ok {
		t.Fatalf("expected nested element to be a Block, got %T", ll.Elements[0])
	}
}

func TestConditionalWithElse(t *testing.T) {
	prog := parseProgram(t, "ನಿಜ ? [೧] [೨].")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	c, ok := stmt.Expr.(*ast.Conditional)
	if !ok {
		t.Fatalf("expected Conditional, got %T", stmt.Expr)
	}
	if c.Else == nil {
		t.Fatal("expected else branch")
	}
}

func TestConditionalWithoutElse(t *testing.T) {
	prog := parseProgram(t, "ನಿಜ ? [೧].")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	c, ok := stmt.Expr.(*ast.Conditional)
	if !ok {
		t.Fatalf("expected Conditional, got %T", stmt.Expr)
	}
	if c.Else != nil {
		t.Fatal("expected no else branch")
	}
}

func TestMapLiteral(t *testing.T) {
	prog := parseProgram(t, `{a: ೧ b: ೨}.`)
	stmt := prog.Statements[0].(*ast.ExprStmt)
	m, ok := stmt.Expr.(*ast.MapLit)
	if !ok {
		t.Fatalf("expected MapLit, got %T", stmt.Expr)
	}
	if len(m.Keys) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(m.Keys))
	}
}

func TestQuotedWord(t *testing.T) {
	prog := parseProgram(t, "'ಮುದ್ರಿಸು.")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	qw, ok := stmt.Expr.(*ast.QuotedWord)
	if !ok {
		t.Fatalf("expected QuotedWord, got %T", stmt.Expr)
	}
	if qw.Name != "ಮುದ್ರಿಸು" {
		t.Errorf("Name = %q", qw.Name)
	}
}

func TestBooleanKeywordLiteral(t *testing.T) {
	prog := parseProgram(t, "ನಿಜ.")
	stmt := prog.Statements[0].(*ast.ExprStmt)
	bl, ok := stmt.Expr.(*ast.BoolLit)
	if !ok || !bl.Value {
		t.Fatalf("expected BoolLit(true), got %#v", stmt.Expr)
	}
}

func TestParseErrorRecoveryContinuesToNextStatement(t *testing.T) {
	p := New(lexer.New("}. ೫ ಮುದ್ರಿಸು."))
	prog := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected at least one parse error")
	}
	foundPostfix := false
	for _, stmt := range prog.Statements {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			if _, ok := es.Expr.(*ast.PostfixAction); ok {
				foundPostfix = true
			}
		}
	}
	if !foundPostfix {
		t.Error("expected parser to recover and still parse the trailing statement")
	}
}
