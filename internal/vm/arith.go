package vm

import "github.com/kapila-lang/kapila/internal/lexer"

// asNumber extracts a float64 view of an Int or Float value, reporting
// whether the original was an Int so callers can decide whether to
// stay in integer arithmetic.
func asNumber(val Value) (f float64, isInt bool, ok bool) {
	switch n := val.(type) {
	case Int:
		return float64(n), true, true
	case Float:
		return float64(n), false, true
	default:
		return 0, false, false
	}
}

// arith evaluates a single infix arithmetic operator against two
// already-evaluated operands, promoting to Float when either operand
// is a Float, matching the original's numeric tower.
func arith(op lexer.Token, left, right Value) (Value, error) {
	lf, lInt, lok := asNumber(left)
	rf, rInt, rok := asNumber(right)
	if !lok || !rok {
		return nil, newRuntimeError(op.Pos, "arithmetic requires numbers, got %s and %s", left.Kind(), right.Kind())
	}

	bothInt := lInt && rInt

	switch op.Type {
	case lexer.PLUS:
		if bothInt {
			return Int(int64(lf) + int64(rf)), nil
		}
		return Float(lf + rf), nil
	case lexer.MINUS:
		if bothInt {
			return Int(int64(lf) - int64(rf)), nil
		}
		return Float(lf - rf), nil
	case lexer.STAR:
		if bothInt {
			return Int(int64(lf) * int64(rf)), nil
		}
		return Float(lf * rf), nil
	case lexer.SLASH:
		if rf == 0 {
			return nil, newRuntimeError(op.Pos, "division by zero")
		}
		return Float(lf / rf), nil
	case lexer.PERCENT:
		if int64(rf) == 0 {
			return nil, newRuntimeError(op.Pos, "division by zero")
		}
		return Int(int64(lf) % int64(rf)), nil
	default:
		return nil, newRuntimeError(op.Pos, "not an arithmetic operator: %s", op.Type)
	}
}

func negate(op lexer.Token, val Value) (Value, error) {
	switch n := val.(type) {
	case Int:
		return Int(-n), nil
	case Float:
		return Float(-n), nil
	default:
		return nil, newRuntimeError(op.Pos, "unary - requires a number, got %s", val.Kind())
	}
}

// compareValues evaluates an equality/relational operator. = and ≠
// accept any pair of like-kinded values (numbers compare numerically
// across Int/Float, strings and booleans compare by equality); the
// ordering operators require two numbers.
func compareValues(op lexer.Token, left, right Value) (Value, error) {
	switch op.Type {
	case lexer.EQ:
		return Bool(valuesEqual(left, right)), nil
	case lexer.NEQ:
		return Bool(!valuesEqual(left, right)), nil
	}

	lf, _, lok := asNumber(left)
	rf, _, rok := asNumber(right)
	if !lok || !rok {
		return nil, newRuntimeError(op.Pos, "comparison requires numbers, got %s and %s", left.Kind(), right.Kind())
	}
	switch op.Type {
	case lexer.LT:
		return Bool(lf < rf), nil
	case lexer.GT:
		return Bool(lf > rf), nil
	case lexer.LTE:
		return Bool(lf <= rf), nil
	case lexer.GTE:
		return Bool(lf >= rf), nil
	default:
		return nil, newRuntimeError(op.Pos, "not a comparison operator: %s", op.Type)
	}
}

func valuesEqual(left, right Value) bool {
	if lf, _, lok := asNumber(left); lok {
		if rf, _, rok := asNumber(right); rok {
			return lf == rf
		}
		return false
	}
	switch l := left.(type) {
	case String:
		r, ok := right.(String)
		return ok && l == r
	case Bool:
		r, ok := right.(Bool)
		return ok && l == r
	case Symbol:
		r, ok := right.(Symbol)
		return ok && l == r
	default:
		return false
	}
}

// binaryArith pops two operands in postfix/block mode and pushes the
// result of applying floatOp/intOp, promoting to float when either
// operand is a Float.
func (v *VM) binaryArith(tok lexer.Token, floatOp func(a, b float64) float64, intOp func(a, b int64) int64) error {
	right, err := v.pop()
	if err != nil {
		return err
	}
	left, err := v.pop()
	if err != nil {
		return err
	}
	lf, lInt, lok := asNumber(left)
	rf, rInt, rok := asNumber(right)
	if !lok || !rok {
		return newRuntimeError(tok.Pos, "arithmetic requires numbers, got %s and %s", left.Kind(), right.Kind())
	}
	if lInt && rInt {
		v.push(Int(intOp(int64(lf), int64(rf))))
		return nil
	}
	v.push(Float(floatOp(lf, rf)))
	return nil
}

// divide always pushes a Float, even when both operands are Int,
// matching the infix evaluator's arith(SLASH) and the original's
// true-division semantics for /.
func (v *VM) divide(tok lexer.Token) error {
	right, err := v.pop()
	if err != nil {
		return err
	}
	left, err := v.pop()
	if err != nil {
		return err
	}
	lf, _, lok := asNumber(left)
	rf, _, rok := asNumber(right)
	if !lok || !rok {
		return newRuntimeError(tok.Pos, "arithmetic requires numbers, got %s and %s", left.Kind(), right.Kind())
	}
	if rf == 0 {
		return newRuntimeError(tok.Pos, "division by zero")
	}
	v.push(Float(lf / rf))
	return nil
}

func (v *VM) modulo(tok lexer.Token) error {
	right, err := v.pop()
	if err != nil {
		return err
	}
	left, err := v.pop()
	if err != nil {
		return err
	}
	lf, _, lok := asNumber(left)
	rf, _, rok := asNumber(right)
	if !lok || !rok {
		return newRuntimeError(tok.Pos, "arithmetic requires numbers, got %s and %s", left.Kind(), right.Kind())
	}
	if int64(rf) == 0 {
		return newRuntimeError(tok.Pos, "division by zero")
	}
	v.push(Int(int64(lf) % int64(rf)))
	return nil
}

func (v *VM) compare(tok lexer.Token) error {
	right, err := v.pop()
	if err != nil {
		return err
	}
	left, err := v.pop()
	if err != nil {
		return err
	}
	result, err := compareValues(tok, left, right)
	if err != nil {
		return err
	}
	v.push(result)
	return nil
}
