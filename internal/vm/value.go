// Package vm implements Kapila's tree-walking virtual machine: a
// single-threaded, synchronous interpreter operating directly on the
// token stream rather than a parsed tree (spec.md §4.4). The parser and
// AST are not used here.
package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kapila-lang/kapila/internal/lexer"
)

// Value is the tagged-union of every runtime value Kapila programs can
// produce. Small-immediate kinds (Int, Float, Bool) and heap kinds
// (String, List, Map, Block, Symbol) alike implement this interface;
// Go's own type system provides the tag via a type switch, so no
// separate discriminant field is needed (spec.md §5's value model).
type Value interface {
	// Kind names the value's runtime type, for diagnostics.
	Kind() string

	// String renders the value the way `print` emits it.
	String() string
}

// Int is a 64-bit signed integer value.
type Int int64

func (Int) Kind() string      { return "integer" }
func (v Int) String() string  { return strconv.FormatInt(int64(v), 10) }

// Float is a 64-bit floating point value.
type Float float64

func (Float) Kind() string { return "float" }
func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// Bool is a boolean value. It prints using the Kannada words the
// vocabulary table names for true/false, per spec.md §4.4's `print`
// contract.
type Bool bool

func (Bool) Kind() string { return "boolean" }
func (v Bool) String() string {
	if v {
		return "ಸರಿ"
	}
	return "ತಪ್ಪು"
}

// String is a text value.
type String string

func (String) Kind() string     { return "string" }
func (v String) String() string { return string(v) }

// List is an ordered, immutable sequence of values. Builders always
// return a freshly allocated slice (spec.md §5): no operation mutates a
// List in place.
type List struct {
	Items []Value
}

func (List) Kind() string { return "list" }
func (v List) String() string {
	parts := make([]string, len(v.Items))
	for i, item := range v.Items {
		parts[i] = item.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Map is a string-keyed, immutable dictionary of values.
type Map struct {
	Keys   []string
	Values map[string]Value
}

func (Map) Kind() string { return "map" }
func (v Map) String() string {
	parts := make([]string, len(v.Keys))
	for i, k := range v.Keys {
		parts[i] = k + ": " + v.Values[k].String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Block is an executable token sequence carrying optional declared
// stack parameters, produced by a block literal or a user word
// definition.
type Block struct {
	Tokens []lexer.Token
	Params []string
	Name   string // non-empty for a user-defined word, for diagnostics
}

func (Block) Kind() string { return "block" }
func (v Block) String() string {
	if v.Name != "" {
		return fmt.Sprintf("<word %s>", v.Name)
	}
	return fmt.Sprintf("<block/%d params, %d tokens>", len(v.Params), len(v.Tokens))
}

// Symbol is a quoted word name pushed as data rather than invoked.
type Symbol string

func (Symbol) Kind() string     { return "symbol" }
func (v Symbol) String() string { return "'" + string(v) }
