// Package parser implements a recursive-descent parser for Kapila.
//
// The tree serves the C-generation path, the advisory type checker and
// the `parse` debug command; the interpreter walks tokens directly. The
// grammar is context-sensitive in exactly the way
// spec.md describes — infix expressions at statement top level, raw
// postfix token collection inside word-definition bodies and block
// literals, and a lookahead scan to decide whether a `[...]` is a list
// or a block.
package parser

import (
	"github.com/kapila-lang/kapila/internal/ast"
	"github.com/kapila-lang/kapila/internal/lexer"
	"github.com/kapila-lang/kapila/internal/vocab"
)

// Operator precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	TERNARY  // cond ? [then] [else]
	OR       // or / ಅಥವಾ
	AND      // and / ಮತ್ತು
	EQUALITY // = != < > <= >=
	ADDITIVE // + -
	FACTOR   // * / %
	UNARY    // -x, not x
)

// Parser holds a two-token lookahead window over the lexer's output.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []*ParseError
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error collected during ParseProgram.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) atEnd() bool { return p.curToken.Type == lexer.EOF }

func (p *Parser) addError(code, message string) {
	p.errors = append(p.errors, newParseError(p.curToken.Pos, code, message))
}

// ParseProgram parses the entire token stream into a Program, collecting
// diagnostics rather than aborting on the first malformed statement.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.atEnd() {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

// synchronize implements panic-mode recovery: advance past the next Dot
// or DefEnd, or stop early at a `Word Colon` definition start.
func (p *Parser) synchronize() {
	p.nextToken()
	for !p.atEnd() {
		if p.curToken.Type == lexer.DOT || p.curToken.Type == lexer.DEF_END {
			p.nextToken()
			return
		}
		if p.curToken.Type == lexer.WORD && p.peekToken.Type == lexer.COLON {
			return
		}
		p.nextToken()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	if p.curToken.Type == lexer.WORD && p.peekToken.Type == lexer.COLON {
		return p.parseWordDef()
	}
	if p.curToken.Type == lexer.WORD && p.peekToken.Type == lexer.ASSIGN {
		return p.parseVarAssign()
	}
	return p.parseExprStmt()
}

// parseWordDef parses `name : body... ॥`.
func (p *Parser) parseWordDef() *ast.WordDef {
	nameTok := p.curToken
	name := nameTok.Lexeme
	p.nextToken() // consume name
	p.nextToken() // consume :

	wd := &ast.WordDef{Token: nameTok, Name: name}
	for !p.curIs(lexer.DEF_END) && !p.atEnd() {
		elem := p.parseBodyElement()
		if elem != nil {
			wd.Body = append(wd.Body, elem)
		}
	}
	if p.curIs(lexer.DEF_END) {
		p.nextToken()
	}
	return wd
}

// parseBodyElement parses one raw (postfix-mode) element inside a word
// definition body or block literal. Unlike expression parsing, no
// precedence climbing happens here: every token stands for itself.
func (p *Parser) parseBodyElement() ast.Node {
	switch p.curToken.Type {
	case lexer.NUMBER:
		return p.parseNumberLit()
	case lexer.STRING:
		return p.parseStringLit()
	case lexer.WORD:
		return p.parseWordNode()
	case lexer.LBRACKET:
		return p.parseBracketed()
	case lexer.LBRACE:
		return p.parseMapLit()
	case lexer.QUOTE:
		return p.parseQuotedWord()
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
		lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
		tok := p.curToken
		p.nextToken()
		return &ast.Word{Token: tok, Name: tok.Lexeme}
	default:
		// tolerate stray punctuation inside a body, per spec.md's "collect
		// raw" contract: skip and keep going.
		p.nextToken()
		return nil
	}
}

// parseWordNode parses a bare WORD, producing a BoolLit if the spelling
// is a boolean keyword (block-mode resolution order per spec.md §4.4).
func (p *Parser) parseWordNode() ast.Node {
	tok := p.curToken
	if v, ok := vocab.IsBoolKeyword(tok.Lexeme); ok {
		p.nextToken()
		return &ast.BoolLit{Token: tok, Value: v}
	}
	p.nextToken()
	return &ast.Word{Token: tok, Name: tok.Lexeme}
}

func (p *Parser) parseQuotedWord() ast.Node {
	tok := p.curToken
	p.nextToken() // consume '
	if !p.curIs(lexer.WORD) {
		p.addError(ErrExpectedWord, "expected a word after quote")
		return &ast.QuotedWord{Token: tok, Name: ""}
	}
	nameTok := p.curToken
	p.nextToken()
	return &ast.QuotedWord{Token: tok, Name: nameTok.Lexeme}
}

func (p *Parser) parseNumberLit() ast.Node {
	tok := p.curToken
	p.nextToken()
	return &ast.NumberLit{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseStringLit() ast.Node {
	tok := p.curToken
	p.nextToken()
	value, _ := tok.Literal.(string)
	return &ast.StringLit{Token: tok, Value: value}
}

// parseVarAssign parses `name := expr .?`.
func (p *Parser) parseVarAssign() *ast.VarAssign {
	nameTok := p.curToken
	name := nameTok.Lexeme
	p.nextToken() // consume name
	p.nextToken() // consume :=

	value := p.parseExpression(LOWEST)
	if p.curIs(lexer.DOT) {
		p.nextToken()
	}
	return &ast.VarAssign{Token: nameTok, Name: name, Value: value}
}

// parseExprStmt parses an infix expression, then greedily absorbs
// trailing WORD tokens as a PostfixAction chain. A trailing word
// immediately followed by `:` or `:=` belongs to the next statement and
// is left unconsumed.
func (p *Parser) parseExprStmt() *ast.ExprStmt {
	startTok := p.curToken
	expr := p.parseExpression(LOWEST)

	var actions []*ast.Word
	for p.curIs(lexer.WORD) && !p.atEnd() {
		wordTok := p.curToken
		if p.peekToken.Type == lexer.COLON || p.peekToken.Type == lexer.ASSIGN {
			break
		}
		p.nextToken()
		actions = append(actions, &ast.Word{Token: wordTok, Name: wordTok.Lexeme})
	}

	if len(actions) > 0 {
		expr = &ast.PostfixAction{Value: expr, Actions: actions}
	}

	if p.curIs(lexer.DOT) {
		p.nextToken()
	}

	return &ast.ExprStmt{Token: startTok, Expr: expr}
}

// --- Expression parsing (infix, precedence climbing) ---------------------

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parseOr()

	if precedence <= TERNARY && p.curIs(lexer.QUESTION) {
		qTok := p.curToken
		p.nextToken()
		thenBlock := p.expectBlock()
		var elseBlock *ast.Block
		if p.curIs(lexer.LBRACKET) {
			elseBlock = p.expectBlock()
		}
		return &ast.Conditional{Token: qTok, Cond: left, Then: thenBlock, Else: elseBlock}
	}
	return left
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.curIs(lexer.WORD) && vocab.Is(p.curToken.Lexeme, "or") {
		opTok := p.curToken
		p.nextToken()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: "or", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseComparison()
	for p.curIs(lexer.WORD) && vocab.Is(p.curToken.Lexeme, "and") {
		opTok := p.curToken
		p.nextToken()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: "and", Right: right}
	}
	return left
}

var comparisonOps = map[lexer.TokenType]string{
	lexer.EQ:  "=",
	lexer.NEQ: "!=",
	lexer.LT:  "<",
	lexer.GT:  ">",
	lexer.LTE: "<=",
	lexer.GTE: ">=",
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for {
		op, ok := comparisonOps[p.curToken.Type]
		if !ok {
			return left
		}
		opTok := p.curToken
		p.nextToken()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: op, Right: right}
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		opTok := p.curToken
		p.nextToken()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: opTok.Lexeme, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) || p.curIs(lexer.PERCENT) {
		opTok := p.curToken
		p.nextToken()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Token: opTok, Left: left, Operator: opTok.Lexeme, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expression {
	if p.curIs(lexer.MINUS) {
		opTok := p.curToken
		p.nextToken()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Token: opTok, Operator: "-", Operand: operand}
	}
	if p.curIs(lexer.WORD) && vocab.Is(p.curToken.Lexeme, "not") {
		opTok := p.curToken
		p.nextToken()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Token: opTok, Operator: "not", Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.curToken.Type {
	case lexer.NUMBER:
		return p.parseNumberLit().(ast.Expression)
	case lexer.STRING:
		return p.parseStringLit().(ast.Expression)
	case lexer.WORD:
		if v, ok := vocab.IsBoolKeyword(p.curToken.Lexeme); ok {
			tok := p.curToken
			p.nextToken()
			return &ast.BoolLit{Token: tok, Value: v}
		}
		tok := p.curToken
		p.nextToken()
		return &ast.Word{Token: tok, Name: tok.Lexeme}
	case lexer.LBRACKET:
		return p.parseBracketed().(ast.Expression)
	case lexer.LBRACE:
		return p.parseMapLit().(ast.Expression)
	case lexer.QUOTE:
		return p.parseQuotedWord().(ast.Expression)
	default:
		tok := p.curToken
		p.addError(ErrInvalidPrimary, "unexpected token "+tok.Type.String()+" in expression")
		p.synchronize()
		return &ast.Word{Token: tok, Name: ""}
	}
}

// peekAt returns the token n positions ahead of curToken without
// consuming anything: peekAt(0) is curToken, peekAt(1) is peekToken,
// and beyond that it draws on the lexer's own non-destructive Peek.
func (p *Parser) peekAt(n int) lexer.Token {
	switch {
	case n == 0:
		return p.curToken
	case n == 1:
		return p.peekToken
	default:
		return p.l.Peek(n - 2)
	}
}

// parseBracketed disambiguates `[...]` between a Block and a ListLit by
// scanning forward with depth tracking using peekAt, which never
// consumes a token, so no backtracking is needed once the scan decides.
func (p *Parser) parseBracketed() ast.Node {
	isBlock := false
	depth := 1
	for i := 1; depth > 0; i++ {
		tok := p.peekAt(i)
		if tok.Type == lexer.EOF {
			break
		}
		switch tok.Type {
		case lexer.LBRACKET:
			depth++
		case lexer.RBRACKET:
			depth--
		case lexer.WORD:
			if depth == 1 {
				if _, isBool := vocab.IsBoolKeyword(tok.Lexeme); !isBool {
					isBlock = true
				}
			}
		case lexer.PIPE:
			if depth == 1 {
				isBlock = true
			}
		case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
			lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LTE, lexer.GTE:
			if depth == 1 {
				isBlock = true
			}
		}
	}

	if isBlock {
		return p.parseBlockBody()
	}
	return p.parseListBody()
}

// expectBlock parses a `[...]` that must be a block (used for ternary
// branches, which are always blocks regardless of content).
func (p *Parser) expectBlock() *ast.Block {
	return p.parseBlockBody()
}

func (p *Parser) parseBlockBody() *ast.Block {
	startTok := p.curToken // the [
	p.nextToken()

	b := &ast.Block{Token: startTok}

	// Look ahead for `word word ... |` declaring stack parameters: scan
	// without consuming, then either consume the whole prefix (params
	// found) or leave curToken untouched (no pipe, body starts here).
	paramCount := 0
	for p.peekAt(paramCount).Type == lexer.WORD {
		paramCount++
	}
	if p.peekAt(paramCount).Type == lexer.PIPE {
		for i := 0; i < paramCount; i++ {
			b.Params = append(b.Params, p.curToken.Lexeme)
			p.nextToken()
		}
		p.nextToken() // consume |
	}

	for !p.curIs(lexer.RBRACKET) && !p.atEnd() {
		elem := p.parseBodyElement()
		if elem != nil {
			b.Body = append(b.Body, elem)
		}
	}
	if p.curIs(lexer.RBRACKET) {
		p.nextToken()
	} else {
		p.addError(ErrMissingRBracket, "expected ']'")
	}
	return b
}

func (p *Parser) parseListBody() *ast.ListLit {
	startTok := p.curToken // the [
	p.nextToken()

	ll := &ast.ListLit{Token: startTok}
	for !p.curIs(lexer.RBRACKET) && !p.atEnd() {
		ll.Elements = append(ll.Elements, p.parseExpression(LOWEST))
	}
	if p.curIs(lexer.RBRACKET) {
		p.nextToken()
	} else {
		p.addError(ErrMissingRBracket, "expected ']'")
	}
	return ll
}

// parseMapLit parses `{ word : expr ... }`. An unrecognised token is
// silently skipped, per spec.md's tolerance for extra punctuation.
func (p *Parser) parseMapLit() ast.Node {
	startTok := p.curToken // the {
	p.nextToken()

	ml := &ast.MapLit{Token: startTok}
	for !p.curIs(lexer.RBRACE) && !p.atEnd() {
		if !p.curIs(lexer.WORD) {
			p.nextToken()
			continue
		}
		keyTok := p.curToken
		p.nextToken()
		if !p.curIs(lexer.COLON) {
			continue
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		ml.Keys = append(ml.Keys, &ast.StringLit{Token: keyTok, Value: keyTok.Lexeme})
		ml.Vals = append(ml.Vals, value)
	}
	if p.curIs(lexer.RBRACE) {
		p.nextToken()
	} else {
		p.addError(ErrMissingRBrace, "expected '}'")
	}
	return ml
}

