package semantic

import (
	"fmt"

	"github.com/kapila-lang/kapila/internal/ast"
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/vocab"
)

// Diagnostic is one advisory finding. It never prevents execution —
// cmd/kapila's --type-check flag only prints these to stderr.
type Diagnostic struct {
	Message string
	Pos     lexer.Position
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("ಮಾದರಿ ದೋಷ (%d:%d): %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// scope is a chained symbol table: word definitions, variable
// assignments, and block parameters all live in one, with child
// scopes created for block bodies.
type scope struct {
	parent *scope
	names  map[string]Type
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, names: make(map[string]Type)}
}

func (s *scope) define(name string, t Type) { s.names[name] = t }

func (s *scope) lookup(name string) (Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.names[name]; ok {
			return t, true
		}
	}
	return Any, false
}

// Checker infers a type per expression and records mismatches. It has
// no notion of a runtime stack; every inference is purely syntactic.
type Checker struct {
	scope *scope
	diags []Diagnostic
}

// NewChecker creates a checker with an empty global scope. Built-in
// words are not entered in it; any name the scope does not hold,
// built-in or not, is typed Any.
func NewChecker() *Checker {
	return &Checker{scope: newScope(nil)}
}

// Check walks a program and returns every diagnostic found.
func (c *Checker) Check(prog *ast.Program) []Diagnostic {
	for _, stmt := range prog.Statements {
		c.visitStmt(stmt)
	}
	return c.diags
}

func (c *Checker) errorf(pos lexer.Position, format string, args ...any) {
	c.diags = append(c.diags, Diagnostic{Message: fmt.Sprintf(format, args...), Pos: pos})
}

func (c *Checker) visitStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.WordDef:
		c.scope.define(s.Name, Block)
		child := newScope(c.scope)
		outer := c.scope
		c.scope = child
		for _, n := range s.Body {
			c.visitNode(n)
		}
		c.scope = outer
	case *ast.VarAssign:
		t := c.visitExpr(s.Value)
		c.scope.define(s.Name, t)
	case *ast.ExprStmt:
		if s.Expr != nil {
			c.visitExpr(s.Expr)
		}
	}
}

// visitNode handles a raw body element, which may be any Expression
// node or a bare operator Word collected in postfix/block mode.
func (c *Checker) visitNode(n ast.Node) Type {
	if expr, ok := n.(ast.Expression); ok {
		return c.visitExpr(expr)
	}
	return Any
}

func (c *Checker) visitExpr(e ast.Expression) Type {
	switch n := e.(type) {
	case *ast.NumberLit:
		if _, isInt := n.Value.(int64); isInt {
			return Int
		}
		return Float
	case *ast.StringLit:
		return String
	case *ast.BoolLit:
		return Bool
	case *ast.Word:
		return c.visitWord(n)
	case *ast.QuotedWord:
		return String
	case *ast.ListLit:
		return c.visitList(n)
	case *ast.MapLit:
		for i := range n.Keys {
			c.visitExpr(n.Keys[i])
			c.visitExpr(n.Vals[i])
		}
		return Map
	case *ast.Block:
		return c.visitBlock(n)
	case *ast.BinaryExpr:
		return c.visitBinary(n)
	case *ast.UnaryExpr:
		return c.visitUnary(n)
	case *ast.Conditional:
		return c.visitConditional(n)
	case *ast.PostfixAction:
		return c.visitPostfixAction(n)
	default:
		return Any
	}
}

func (c *Checker) visitWord(w *ast.Word) Type {
	if _, ok := vocab.IsBoolKeyword(w.Name); ok {
		return Bool
	}
	if t, ok := c.scope.lookup(w.Name); ok {
		return t
	}
	// Unknown at this point in the program order; it may be defined
	// later (word definitions are not required to precede their use
	// at the top of a file), so this is not itself an error.
	return Any
}

func (c *Checker) visitList(l *ast.ListLit) Type {
	if len(l.Elements) == 0 {
		return List
	}
	elemType := c.visitExpr(l.Elements[0])
	for _, e := range l.Elements[1:] {
		elemType = commonType(elemType, c.visitExpr(e))
	}
	return List
}

func (c *Checker) visitBlock(b *ast.Block) Type {
	child := newScope(c.scope)
	outer := c.scope
	c.scope = child
	for _, p := range b.Params {
		c.scope.define(p, Any)
	}
	for _, n := range b.Body {
		c.visitNode(n)
	}
	c.scope = outer
	return Block
}

func (c *Checker) visitBinary(be *ast.BinaryExpr) Type {
	left := c.visitExpr(be.Left)
	right := c.visitExpr(be.Right)

	switch be.Operator {
	case "+", "-", "*", "/", "%":
		if !left.isNumeric() {
			c.errorf(be.Pos(), "left operand must be a number, got %s", left)
		}
		if !right.isNumeric() {
			c.errorf(be.Pos(), "right operand must be a number, got %s", right)
		}
		if left == Float || right == Float {
			return Float
		}
		if be.Operator == "/" {
			return Float
		}
		return Number
	case "<", ">", "<=", ">=", "=", "!=":
		return Bool
	case "and", "or":
		if left != Bool && left != Any {
			c.errorf(be.Pos(), "logical operator requires a boolean, got %s", left)
		}
		return Bool
	default:
		return Any
	}
}

func (c *Checker) visitUnary(ue *ast.UnaryExpr) Type {
	operand := c.visitExpr(ue.Operand)
	switch ue.Operator {
	case "-":
		if !operand.isNumeric() {
			c.errorf(ue.Pos(), "unary - requires a number, got %s", operand)
		}
		return operand
	case "not":
		if operand != Bool && operand != Any {
			c.errorf(ue.Pos(), "ಅಲ್ಲ requires a boolean, got %s", operand)
		}
		return Bool
	default:
		return Any
	}
}

func (c *Checker) visitConditional(cn *ast.Conditional) Type {
	condType := c.visitExpr(cn.Cond)
	if condType != Bool && condType != Any {
		c.errorf(cn.Pos(), "condition must be a boolean, got %s", condType)
	}
	thenType := c.visitBlock(cn.Then)
	elseType := Void
	if cn.Else != nil {
		elseType = c.visitBlock(cn.Else)
	}
	return commonType(thenType, elseType)
}

func (c *Checker) visitPostfixAction(pa *ast.PostfixAction) Type {
	current := c.visitExpr(pa.Value)
	for _, action := range pa.Actions {
		if t, ok := c.scope.lookup(action.Name); ok && t == Block {
			current = Any
		} else {
			current = Any
		}
	}
	return current
}
