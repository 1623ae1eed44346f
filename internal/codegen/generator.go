package codegen

import (
	"fmt"
	"strings"

	"github.com/kapila-lang/kapila/internal/ast"
	"github.com/kapila-lang/kapila/internal/vocab"
)

// opFuncs maps a canonical operation name to the runtime's op function,
// for every canonical name spec.md §6's Generated-C interface lists.
var opFuncs = map[string]string{
	"+": "add_op", "-": "sub_op", "*": "mul_op", "/": "div_op", "%": "mod_op",
	"=": "eq_op", "!=": "neq_op", "<": "lt_op", ">": "gt_op", "<=": "lte_op", ">=": "gte_op",
	"and": "and_op", "or": "or_op", "not": "not_op",
	"dup": "dup_op", "drop": "drop_op", "swap": "swap_op", "print": "print_op",
}

// Generator lowers one parsed program into a self-contained C
// translation unit.
type Generator struct {
	out      strings.Builder
	words    map[string]bool // mangled names of user-defined words, for call-site resolution
	vars     map[string]bool // mangled names of top-level variables seen so far
	warnings []string
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{words: make(map[string]bool), vars: make(map[string]bool)}
}

// Warnings returns one message per construct the generator skipped
// (list/map literals, block literals, quoted words, and built-ins with
// no C equivalent), for the caller to surface alongside the emitted
// source.
func (g *Generator) Warnings() []string { return g.warnings }

// Generate renders prog as a complete C source file: preamble, one
// function per user-defined word, then main.
func (g *Generator) Generate(prog *ast.Program) (string, error) {
	g.out.WriteString(runtimePreamble)
	g.out.WriteString("\n")

	for _, stmt := range prog.Statements {
		if wd, ok := stmt.(*ast.WordDef); ok {
			g.words[wd.Name] = true
		}
	}

	for _, stmt := range prog.Statements {
		if wd, ok := stmt.(*ast.WordDef); ok {
			g.emitWordFunc(wd)
		}
	}

	g.out.WriteString("int main(void) {\n")
	g.out.WriteString("    stack_init();\n")
	for _, stmt := range prog.Statements {
		if _, ok := stmt.(*ast.WordDef); ok {
			continue
		}
		g.emitStmt(stmt, "    ")
	}
	g.out.WriteString("    return 0;\n}\n")

	return g.out.String(), nil
}

func (g *Generator) warn(format string, args ...any) {
	g.warnings = append(g.warnings, fmt.Sprintf(format, args...))
}

// emitWordFunc renders a user-defined word as a void C function taking
// no arguments; its declared stack effect is entirely implicit in its
// push/pop calls against the shared global stack, the same contract
// the runtime's own op functions use.
func (g *Generator) emitWordFunc(wd *ast.WordDef) {
	fname := mangle(wd.Name)
	fmt.Fprintf(&g.out, "static void %s(void) {\n", fname)
	for _, n := range wd.Body {
		g.emitBodyNode(n, "    ")
	}
	g.out.WriteString("}\n\n")
}

func (g *Generator) emitStmt(stmt ast.Statement, indent string) {
	switch s := stmt.(type) {
	case *ast.VarAssign:
		g.emitExpr(s.Value, indent)
		name := mangle(s.Name)
		if !g.vars[name] {
			fmt.Fprintf(&g.out, "%sValue %s = pop();\n", indent, name)
			g.vars[name] = true
		} else {
			fmt.Fprintf(&g.out, "%s%s = pop();\n", indent, name)
		}
	case *ast.ExprStmt:
		if s.Expr != nil {
			g.emitExpr(s.Expr, indent)
		}
	}
}

// emitBodyNode lowers one element of a word-definition or block body,
// which runs in pure postfix/block mode: every node is self-evaluating
// or a call, never an infix tree.
func (g *Generator) emitBodyNode(n ast.Node, indent string) {
	switch node := n.(type) {
	case *ast.NumberLit:
		g.emitNumberLit(node, indent)
	case *ast.StringLit:
		fmt.Fprintf(&g.out, "%spush_str(%q);\n", indent, node.Value)
	case *ast.BoolLit:
		fmt.Fprintf(&g.out, "%spush_bool(%v);\n", indent, node.Value)
	case *ast.Word:
		g.emitWordCall(node, indent)
	case *ast.QuotedWord:
		g.warn("quoted word '%s' has no data representation in generated C; skipped", node.Name)
		fmt.Fprintf(&g.out, "%s/* quoted word '%s skipped: not supported in generated C */\n", indent, node.Name)
	case *ast.ListLit, *ast.MapLit:
		g.warn("list/map literal skipped at %s", node.Pos())
		fmt.Fprintf(&g.out, "%s/* list/map literals are not supported in generated C */\n", indent)
	case *ast.Block:
		g.warn("nested block literal skipped at %s", node.Pos())
		fmt.Fprintf(&g.out, "%s/* nested block literals are not supported in generated C */\n", indent)
	}
}

func (g *Generator) emitNumberLit(nl *ast.NumberLit, indent string) {
	switch v := nl.Value.(type) {
	case int64:
		fmt.Fprintf(&g.out, "%spush_int(%dLL);\n", indent, v)
	case float64:
		fmt.Fprintf(&g.out, "%spush_float(%g);\n", indent, v)
	default:
		fmt.Fprintf(&g.out, "%spush_int(0);\n", indent)
	}
}

func (g *Generator) emitWordCall(w *ast.Word, indent string) {
	if _, ok := vocab.IsBoolKeyword(w.Name); ok {
		val, _ := vocab.IsBoolKeyword(w.Name)
		fmt.Fprintf(&g.out, "%spush_bool(%v);\n", indent, val)
		return
	}
	if canon, ok := vocab.Canonical(w.Name); ok {
		if fn, ok := opFuncs[canon]; ok {
			fmt.Fprintf(&g.out, "%s%s();\n", indent, fn)
			return
		}
		g.warn("built-in '%s' has no generated-C equivalent; skipped", w.Name)
		fmt.Fprintf(&g.out, "%s/* built-in '%s' is not supported in generated C */\n", indent, w.Name)
		return
	}
	if g.words[w.Name] {
		fmt.Fprintf(&g.out, "%s%s();\n", indent, mangle(w.Name))
		return
	}
	name := mangle(w.Name)
	fmt.Fprintf(&g.out, "%spush(%s);\n", indent, name)
}

// emitExpr lowers a top-level infix expression: operands are pushed
// depth-first, then the operator's op function is called, matching
// spec.md §4.5's BinaryExpr/UnaryExpr lowering.
func (g *Generator) emitExpr(e ast.Expression, indent string) {
	switch node := e.(type) {
	case *ast.NumberLit:
		g.emitNumberLit(node, indent)
	case *ast.StringLit:
		fmt.Fprintf(&g.out, "%spush_str(%q);\n", indent, node.Value)
	case *ast.BoolLit:
		fmt.Fprintf(&g.out, "%spush_bool(%v);\n", indent, node.Value)
	case *ast.Word:
		g.emitWordCall(node, indent)
	case *ast.QuotedWord:
		g.warn("quoted word '%s' has no data representation in generated C; skipped", node.Name)
		fmt.Fprintf(&g.out, "%s/* quoted word '%s skipped: not supported in generated C */\n", indent, node.Name)
	case *ast.BinaryExpr:
		g.emitExpr(node.Left, indent)
		g.emitExpr(node.Right, indent)
		if fn, ok := opFuncs[node.Operator]; ok {
			fmt.Fprintf(&g.out, "%s%s();\n", indent, fn)
		}
	case *ast.UnaryExpr:
		g.emitExpr(node.Operand, indent)
		switch node.Operator {
		case "-":
			fmt.Fprintf(&g.out, "%spush_int(-1LL); %smul_op();\n", indent, indent)
		case "not":
			fmt.Fprintf(&g.out, "%snot_op();\n", indent)
		}
	case *ast.Conditional:
		g.emitConditional(node, indent)
	case *ast.PostfixAction:
		g.emitExpr(node.Value, indent)
		for _, action := range node.Actions {
			g.emitWordCall(action, indent)
		}
	case *ast.ListLit, *ast.MapLit:
		g.warn("list/map literal skipped at %s", node.Pos())
		fmt.Fprintf(&g.out, "%s/* list/map literals are not supported in generated C */\n", indent)
	case *ast.Block:
		g.warn("block literal skipped at %s", node.Pos())
		fmt.Fprintf(&g.out, "%s/* block literals are not supported in generated C */\n", indent)
	}
}

func (g *Generator) emitConditional(c *ast.Conditional, indent string) {
	g.emitExpr(c.Cond, indent)
	fmt.Fprintf(&g.out, "%sif (pop().as.b) {\n", indent)
	for _, n := range c.Then.Body {
		g.emitBodyNode(n, indent+"    ")
	}
	g.out.WriteString(indent + "}")
	if c.Else != nil {
		g.out.WriteString(" else {\n")
		for _, n := range c.Else.Body {
			g.emitBodyNode(n, indent+"    ")
		}
		g.out.WriteString(indent + "}\n")
	} else {
		g.out.WriteString("\n")
	}
}
