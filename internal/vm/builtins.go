package vm

import (
	"fmt"

	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/vocab"
)

// defaultBuiltins wires every canonical operation name from the shared
// vocabulary to its host implementation. Each entry here corresponds to
// one row of spec.md §4.4's built-in table. Arithmetic and comparison
// operators are also entered here under their canonical symbol: the
// infix evaluator and executeToken reach them through the lexer's own
// operator token types, but a Kannada operator spelling (e.g. ಕೂಡು for
// +) always arrives as a plain WORD token, so it needs the same
// canonical-name lookup every other built-in goes through.
func defaultBuiltins() map[string]BuiltinFunc {
	return map[string]BuiltinFunc{
		"dup":    builtinDup,
		"drop":   builtinDrop,
		"swap":   builtinSwap,
		"over":   builtinOver,
		"rot":    builtinRot,
		"print":  builtinPrint,
		"length": builtinLength,
		"nth":    builtinNth,
		"append": builtinAppend,
		"first":  builtinFirst,
		"rest":   builtinRest,
		",":      builtinConcat,
		"map":    builtinMap,
		"filter": builtinFilter,
		"fold":   builtinFold,
		"each":   builtinEach,
		"times":  builtinTimes,
		"do":     builtinDo,
		"+":      opToken(lexer.PLUS).builtin(),
		"-":      opToken(lexer.MINUS).builtin(),
		"*":      opToken(lexer.STAR).builtin(),
		"/":      opToken(lexer.SLASH).builtin(),
		"%":      opToken(lexer.PERCENT).builtin(),
		"=":      opToken(lexer.EQ).builtin(),
		"!=":     opToken(lexer.NEQ).builtin(),
		"<":      opToken(lexer.LT).builtin(),
		">":      opToken(lexer.GT).builtin(),
		"<=":     opToken(lexer.LTE).builtin(),
		">=":     opToken(lexer.GTE).builtin(),
		"and":    builtinAnd,
		"or":     builtinOr,
		"not":    builtinNot,
	}
}

// opToken is a bare lexer.TokenType wrapping just enough of a token for
// executeToken's arithmetic/comparison dispatch, used to give a
// Kannada-spelled operator word the same evaluation path as its ASCII
// token form.
type opToken lexer.TokenType

func (t opToken) builtin() BuiltinFunc {
	return func(v *VM) error {
		return v.executeToken(lexer.Token{Type: lexer.TokenType(t)})
	}
}

func builtinAnd(v *VM) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	ab, ok := a.(Bool)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಮತ್ತು requires booleans, got %s", a.Kind())
	}
	bb, ok := b.(Bool)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಮತ್ತು requires booleans, got %s", b.Kind())
	}
	v.push(Bool(bool(ab) && bool(bb)))
	return nil
}

func builtinOr(v *VM) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	ab, ok := a.(Bool)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಅಥವಾ requires booleans, got %s", a.Kind())
	}
	bb, ok := b.(Bool)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಅಥವಾ requires booleans, got %s", b.Kind())
	}
	v.push(Bool(bool(ab) || bool(bb)))
	return nil
}

func builtinNot(v *VM) error {
	a, err := v.pop()
	if err != nil {
		return err
	}
	ab, ok := a.(Bool)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಅಲ್ಲ requires a boolean, got %s", a.Kind())
	}
	v.push(Bool(!ab))
	return nil
}

func builtinDup(v *VM) error {
	top, err := v.peek()
	if err != nil {
		return err
	}
	v.push(top)
	return nil
}

func builtinDrop(v *VM) error {
	_, err := v.pop()
	return err
}

func builtinSwap(v *VM) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	v.push(b)
	v.push(a)
	return nil
}

func builtinOver(v *VM) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	v.push(a)
	v.push(b)
	v.push(a)
	return nil
}

func builtinRot(v *VM) error {
	c, err := v.pop()
	if err != nil {
		return err
	}
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	v.push(b)
	v.push(c)
	v.push(a)
	return nil
}

func builtinPrint(v *VM) error {
	top, err := v.pop()
	if err != nil {
		return err
	}
	fmt.Fprintln(v.out, top.String())
	return nil
}

func builtinLength(v *VM) error {
	top, err := v.pop()
	if err != nil {
		return err
	}
	switch t := top.(type) {
	case List:
		v.push(Int(len(t.Items)))
	case String:
		v.push(Int(len([]rune(string(t)))))
	default:
		return newRuntimeError(lexer.Position{}, "ಉದ್ದ requires a list or string, got %s", top.Kind())
	}
	return nil
}

func builtinNth(v *VM) error {
	idxVal, err := v.pop()
	if err != nil {
		return err
	}
	listVal, err := v.pop()
	if err != nil {
		return err
	}
	idx, ok := idxVal.(Int)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ತೆಗೆ requires an integer index, got %s", idxVal.Kind())
	}
	switch t := listVal.(type) {
	case List:
		if int(idx) < 0 || int(idx) >= len(t.Items) {
			return newRuntimeError(lexer.Position{}, "index out of range: %d", idx)
		}
		v.push(t.Items[idx])
	case String:
		runes := []rune(string(t))
		if int(idx) < 0 || int(idx) >= len(runes) {
			return newRuntimeError(lexer.Position{}, "index out of range: %d", idx)
		}
		v.push(String(string(runes[idx])))
	default:
		return newRuntimeError(lexer.Position{}, "ತೆಗೆ requires a list or string, got %s", listVal.Kind())
	}
	return nil
}

func builtinAppend(v *VM) error {
	item, err := v.pop()
	if err != nil {
		return err
	}
	listVal, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := listVal.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಸೇರಿಸು requires a list, got %s", listVal.Kind())
	}
	items := make([]Value, len(list.Items)+1)
	copy(items, list.Items)
	items[len(list.Items)] = item
	v.push(List{Items: items})
	return nil
}

func builtinFirst(v *VM) error {
	top, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := top.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಮೊದಲ requires a list, got %s", top.Kind())
	}
	if len(list.Items) == 0 {
		return newRuntimeError(lexer.Position{}, "ಮೊದಲ on an empty list")
	}
	v.push(list.Items[0])
	return nil
}

func builtinRest(v *VM) error {
	top, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := top.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಉಳಿದ requires a list, got %s", top.Kind())
	}
	if len(list.Items) == 0 {
		v.push(List{})
		return nil
	}
	rest := make([]Value, len(list.Items)-1)
	copy(rest, list.Items[1:])
	v.push(List{Items: rest})
	return nil
}

// builtinConcat implements "," : join two lists, or two strings.
func builtinConcat(v *VM) error {
	b, err := v.pop()
	if err != nil {
		return err
	}
	a, err := v.pop()
	if err != nil {
		return err
	}
	switch at := a.(type) {
	case List:
		bt, ok := b.(List)
		if !ok {
			return newRuntimeError(lexer.Position{}, "ಜೋಡಿಸು requires two lists, got list and %s", b.Kind())
		}
		items := make([]Value, 0, len(at.Items)+len(bt.Items))
		items = append(items, at.Items...)
		items = append(items, bt.Items...)
		v.push(List{Items: items})
	case String:
		bt, ok := b.(String)
		if !ok {
			return newRuntimeError(lexer.Position{}, "ಜೋಡಿಸು requires two strings, got string and %s", b.Kind())
		}
		v.push(String(string(at) + string(bt)))
	default:
		return newRuntimeError(lexer.Position{}, "ಜೋಡಿಸು requires two lists or two strings, got %s", a.Kind())
	}
	return nil
}

// callable applies a Block or Symbol value to the current stack,
// mirroring the original's treatment of higher-order arguments: a
// Block runs its own tokens with its own parameter binding, a Symbol
// resolves through the same word table a bare WORD token would use.
func (v *VM) callable(val Value) error {
	switch c := val.(type) {
	case Block:
		return v.runBlock(&c)
	case Symbol:
		name := string(c)
		builtinName, _ := vocab.Canonical(name)
		if builtinName == "" {
			builtinName = name
		}
		if fn, ok := v.builtins[builtinName]; ok {
			return fn(v)
		}
		if block, ok := v.words[name]; ok {
			return v.runBlock(block)
		}
		return newRuntimeError(lexer.Position{}, "unknown word: %s", name)
	default:
		return newRuntimeError(lexer.Position{}, "expected a block or quoted word, got %s", val.Kind())
	}
}

func builtinMap(v *VM) error {
	fn, err := v.pop()
	if err != nil {
		return err
	}
	listVal, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := listVal.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ನಕ್ಷೆ requires a list, got %s", listVal.Kind())
	}
	results := make([]Value, len(list.Items))
	for i, item := range list.Items {
		v.push(item)
		if err := v.callable(fn); err != nil {
			return err
		}
		out, err := v.pop()
		if err != nil {
			return err
		}
		results[i] = out
	}
	v.push(List{Items: results})
	return nil
}

func builtinFilter(v *VM) error {
	fn, err := v.pop()
	if err != nil {
		return err
	}
	listVal, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := listVal.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಸೋಸು requires a list, got %s", listVal.Kind())
	}
	var results []Value
	for _, item := range list.Items {
		v.push(item)
		if err := v.callable(fn); err != nil {
			return err
		}
		out, err := v.pop()
		if err != nil {
			return err
		}
		keep, ok := out.(Bool)
		if !ok {
			return newRuntimeError(lexer.Position{}, "ಸೋಸು predicate must return a boolean, got %s", out.Kind())
		}
		if keep {
			results = append(results, item)
		}
	}
	v.push(List{Items: results})
	return nil
}

func builtinFold(v *VM) error {
	fn, err := v.pop()
	if err != nil {
		return err
	}
	initVal, err := v.pop()
	if err != nil {
		return err
	}
	listVal, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := listVal.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಮಡಿಸು requires a list, got %s", listVal.Kind())
	}
	acc := initVal
	for _, item := range list.Items {
		v.push(acc)
		v.push(item)
		if err := v.callable(fn); err != nil {
			return err
		}
		acc, err = v.pop()
		if err != nil {
			return err
		}
	}
	v.push(acc)
	return nil
}

func builtinEach(v *VM) error {
	fn, err := v.pop()
	if err != nil {
		return err
	}
	listVal, err := v.pop()
	if err != nil {
		return err
	}
	list, ok := listVal.(List)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಪ್ರತಿಯೊಂದಕ್ಕೂ requires a list, got %s", listVal.Kind())
	}
	for _, item := range list.Items {
		v.push(item)
		if err := v.callable(fn); err != nil {
			return err
		}
	}
	return nil
}

func builtinTimes(v *VM) error {
	fn, err := v.pop()
	if err != nil {
		return err
	}
	countVal, err := v.pop()
	if err != nil {
		return err
	}
	count, ok := countVal.(Int)
	if !ok {
		return newRuntimeError(lexer.Position{}, "ಸಾರಿ requires an integer count, got %s", countVal.Kind())
	}
	for i := int64(0); i < int64(count); i++ {
		if err := v.callable(fn); err != nil {
			return err
		}
	}
	return nil
}

// builtinDo invokes a quoted word or block with no implicit argument
// handling beyond its own parameter binding; it exists so callers can
// dispatch a Symbol/Block value sitting on the stack without an
// accompanying collection, e.g. a conditional branch built at runtime.
func builtinDo(v *VM) error {
	fn, err := v.pop()
	if err != nil {
		return err
	}
	return v.callable(fn)
}
