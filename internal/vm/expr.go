package vm

import (
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/vocab"
)

// parseExpr evaluates one infix expression starting at the VM's cursor
// and returns its value, consuming exactly the tokens that belong to
// it. It mirrors the original's `_parse_expr` precedence chain
// (ternary → or → and → equality/relational → additive → factor →
// unary → primary), but rather than building a tree it evaluates
// eagerly as it descends, since the VM never needs to revisit the
// expression once its value is known.
func (v *VM) parseExpr() (Value, error) {
	return v.parseTernary()
}

func (v *VM) parseTernary() (Value, error) {
	cond, err := v.parseOr()
	if err != nil {
		return nil, err
	}
	if v.current().Type != lexer.QUESTION {
		return cond, nil
	}
	v.advance()

	condBool, ok := cond.(Bool)
	if !ok {
		return nil, newRuntimeError(v.current().Pos, "conditional requires a boolean, got %s", cond.Kind())
	}

	thenBlock, err := v.parseBlockLiteralAsBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *Block
	if v.current().Type == lexer.LBRACKET {
		elseBlock, err = v.parseBlockLiteralAsBlock()
		if err != nil {
			return nil, err
		}
	}

	if condBool {
		return nil, v.runBlock(thenBlock)
	}
	if elseBlock != nil {
		return nil, v.runBlock(elseBlock)
	}
	return nil, nil
}

func (v *VM) parseOr() (Value, error) {
	left, err := v.parseAnd()
	if err != nil {
		return nil, err
	}
	for v.current().Type == lexer.WORD && vocab.Is(v.current().Lexeme, "or") {
		v.advance()
		lb, ok := left.(Bool)
		if !ok {
			return nil, newRuntimeError(v.current().Pos, "ಅಥವಾ requires booleans, got %s", left.Kind())
		}
		right, err := v.parseAnd()
		if err != nil {
			return nil, err
		}
		rb, ok := right.(Bool)
		if !ok {
			return nil, newRuntimeError(v.current().Pos, "ಅಥವಾ requires booleans, got %s", right.Kind())
		}
		left = Bool(bool(lb) || bool(rb))
	}
	return left, nil
}

func (v *VM) parseAnd() (Value, error) {
	left, err := v.parseEquality()
	if err != nil {
		return nil, err
	}
	for v.current().Type == lexer.WORD && vocab.Is(v.current().Lexeme, "and") {
		v.advance()
		lb, ok := left.(Bool)
		if !ok {
			return nil, newRuntimeError(v.current().Pos, "ಮತ್ತು requires booleans, got %s", left.Kind())
		}
		right, err := v.parseEquality()
		if err != nil {
			return nil, err
		}
		rb, ok := right.(Bool)
		if !ok {
			return nil, newRuntimeError(v.current().Pos, "ಮತ್ತು requires booleans, got %s", right.Kind())
		}
		left = Bool(bool(lb) && bool(rb))
	}
	return left, nil
}

var comparisonOps = map[lexer.TokenType]bool{
	lexer.EQ: true, lexer.NEQ: true, lexer.LT: true,
	lexer.GT: true, lexer.LTE: true, lexer.GTE: true,
}

func (v *VM) parseEquality() (Value, error) {
	left, err := v.parseAdditive()
	if err != nil {
		return nil, err
	}
	for comparisonOps[v.current().Type] {
		op := v.advance()
		right, err := v.parseAdditive()
		if err != nil {
			return nil, err
		}
		left, err = compareValues(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (v *VM) parseAdditive() (Value, error) {
	left, err := v.parseFactor()
	if err != nil {
		return nil, err
	}
	for v.current().Type == lexer.PLUS || v.current().Type == lexer.MINUS {
		op := v.advance()
		right, err := v.parseFactor()
		if err != nil {
			return nil, err
		}
		left, err = arith(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (v *VM) parseFactor() (Value, error) {
	left, err := v.parseUnary()
	if err != nil {
		return nil, err
	}
	for v.current().Type == lexer.STAR || v.current().Type == lexer.SLASH || v.current().Type == lexer.PERCENT {
		op := v.advance()
		right, err := v.parseUnary()
		if err != nil {
			return nil, err
		}
		left, err = arith(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (v *VM) parseUnary() (Value, error) {
	if v.current().Type == lexer.MINUS {
		op := v.advance()
		operand, err := v.parseUnary()
		if err != nil {
			return nil, err
		}
		return negate(op, operand)
	}
	if v.current().Type == lexer.WORD && vocab.Is(v.current().Lexeme, "not") {
		op := v.advance()
		operand, err := v.parseUnary()
		if err != nil {
			return nil, err
		}
		b, ok := operand.(Bool)
		if !ok {
			return nil, newRuntimeError(op.Pos, "ಅಲ್ಲ requires a boolean, got %s", operand.Kind())
		}
		return Bool(!b), nil
	}
	return v.parsePrimary()
}

// parsePrimary handles the leaf positions of an infix expression: a
// literal, a variable reference, a boolean keyword, a quoted word, a
// bracketed list/block, or a map literal.
func (v *VM) parsePrimary() (Value, error) {
	tok := v.current()

	switch tok.Type {
	case lexer.NUMBER:
		v.advance()
		return numberValue(tok.Literal), nil
	case lexer.STRING:
		v.advance()
		s, _ := tok.Literal.(string)
		return String(s), nil
	case lexer.WORD:
		if val, ok := vocab.IsBoolKeyword(tok.Lexeme); ok {
			v.advance()
			return Bool(val), nil
		}
		v.advance()
		if val, ok := v.vars[tok.Lexeme]; ok {
			return val, nil
		}
		return nil, newRuntimeError(tok.Pos, "undefined variable: %s", tok.Lexeme)
	case lexer.QUOTE:
		v.advance()
		if v.current().Type != lexer.WORD {
			return nil, newRuntimeError(v.current().Pos, "expected a word after '")
		}
		word := v.advance()
		return Symbol(word.Lexeme), nil
	case lexer.LBRACKET:
		return v.parseBlockOrPushedList()
	case lexer.LBRACE:
		return v.parseMap()
	default:
		return nil, newRuntimeError(tok.Pos, "unexpected token in expression: %s", tok.Type)
	}
}

// isBlockBracket reports whether the bracketed span starting at the
// VM's current `[` denotes a Block rather than a List, applying the
// same rule the parser uses: any Word other than the two boolean
// keywords, any Pipe, or any operator token at depth 1 makes it a
// Block (spec.md §4.3), applied uniformly to the VM's direct
// interpretation path as well.
func (v *VM) isBlockBracket() bool {
	depth := 0
	for i := v.pos; i < len(v.tokens); i++ {
		tok := v.tokens[i]
		switch tok.Type {
		case lexer.LBRACKET:
			depth++
		case lexer.RBRACKET:
			depth--
			if depth == 0 {
				return false
			}
		case lexer.PIPE:
			if depth == 1 {
				return true
			}
		case lexer.WORD:
			if depth == 1 {
				if _, ok := vocab.IsBoolKeyword(tok.Lexeme); !ok {
					return true
				}
			}
		case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
			lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
			if depth == 1 {
				return true
			}
		}
	}
	return false
}

// parseBlockOrPushedList parses the bracketed span at the cursor as
// either a Block value or a List value, per isBlockBracket's verdict.
func (v *VM) parseBlockOrPushedList() (Value, error) {
	if v.isBlockBracket() {
		return v.parseBlockLiteral()
	}
	return v.parseListLiteral()
}

func (v *VM) parseBlockLiteralAsBlock() (*Block, error) {
	val, err := v.parseBlockOrPushedList()
	if err != nil {
		return nil, err
	}
	b, ok := val.(Block)
	if !ok {
		return nil, newRuntimeError(v.current().Pos, "expected a block")
	}
	return &b, nil
}

// parseBlockLiteral consumes `[` ... `]`, recognizing an optional
// `a b | ...` parameter prefix, and returns the raw token span as a
// Block value without executing it.
func (v *VM) parseBlockLiteral() (Value, error) {
	v.advance() // consume [

	var params []string
	scan := v.pos
	for scan < len(v.tokens) && v.tokens[scan].Type == lexer.WORD {
		scan++
	}
	if scan > v.pos && scan < len(v.tokens) && v.tokens[scan].Type == lexer.PIPE {
		for v.pos < scan {
			params = append(params, v.advance().Lexeme)
		}
		v.advance() // consume |
	}

	start := v.pos
	depth := 1
	for depth > 0 && !v.atEnd() {
		switch v.current().Type {
		case lexer.LBRACKET:
			depth++
		case lexer.RBRACKET:
			depth--
			if depth == 0 {
				continue
			}
		}
		if depth > 0 {
			v.advance()
		}
	}
	body := append([]lexer.Token(nil), v.tokens[start:v.pos]...)
	if v.current().Type == lexer.RBRACKET {
		v.advance()
	}

	return Block{Tokens: body, Params: params}, nil
}

// parseListLiteral consumes `[` expr expr ... `]`, evaluating each
// element as an infix expression.
func (v *VM) parseListLiteral() (Value, error) {
	v.advance() // consume [
	var items []Value
	for v.current().Type != lexer.RBRACKET && !v.atEnd() {
		val, err := v.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, val)
	}
	if v.current().Type == lexer.RBRACKET {
		v.advance()
	}
	return List{Items: items}, nil
}

// parseMap consumes `{` word ':' expr ... `}`.
func (v *VM) parseMap() (Value, error) {
	v.advance() // consume {
	var keys []string
	values := make(map[string]Value)
	for v.current().Type != lexer.RBRACE && !v.atEnd() {
		if v.current().Type != lexer.WORD {
			v.advance()
			continue
		}
		key := v.advance().Lexeme
		if v.current().Type == lexer.COLON {
			v.advance()
		}
		val, err := v.parseExpr()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values[key] = val
	}
	if v.current().Type == lexer.RBRACE {
		v.advance()
	}
	return Map{Keys: keys, Values: values}, nil
}
