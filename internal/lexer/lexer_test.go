package lexer

import "testing"

func TestNextTokenBasicOperators(t *testing.T) {
	input := `+ - * / % = != <= >= < > ≠ ≤ ≥ : := . [ ] { } | ' ? ॥`

	expected := []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT,
		EQ, NEQ, LTE, GTE, LT, GT, NEQ, LTE, GTE,
		COLON, ASSIGN, DOT, LBRACKET, RBRACKET, LBRACE, RBRACE, PIPE, QUOTE, QUESTION, DEF_END,
		EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s", i, tok.Type, want)
		}
	}
}

func TestNextTokenNumbers(t *testing.T) {
	tests := []struct {
		input   string
		literal any
	}{
		{"123", int64(123)},
		{"೧೨೩", int64(123)},
		{"3.14", float64(3.14)},
		{"೩.೧೪", float64(3.14)},
		{"10.", nil}, // trailing dot not followed by digit is NOT consumed
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != NUMBER {
			t.Fatalf("input %q: got type %s, want NUMBER", tt.input, tok.Type)
		}
		if tt.literal != nil && tok.Literal != tt.literal {
			t.Errorf("input %q: literal = %v, want %v", tt.input, tok.Literal, tt.literal)
		}
	}
}

func TestNextTokenTrailingDotIsSeparateToken(t *testing.T) {
	l := New("10.")
	num := l.NextToken()
	if num.Type != NUMBER || num.Lexeme != "10" {
		t.Fatalf("got %v, want NUMBER(10)", num)
	}
	dot := l.NextToken()
	if dot.Type != DOT {
		t.Fatalf("got %v, want DOT", dot)
	}
}

func TestNextTokenString(t *testing.T) {
	l := New(`"hello\nworld" "ಕನ್ನಡ"`)

	tok := l.NextToken()
	if tok.Type != STRING || tok.Literal != "hello\nworld" {
		t.Fatalf("got %v, want STRING(hello\\nworld)", tok)
	}

	tok = l.NextToken()
	if tok.Type != STRING || tok.Literal != "ಕನ್ನಡ" {
		t.Fatalf("got %v, want STRING(ಕನ್ನಡ)", tok)
	}
}

func TestNextTokenUnterminatedString(t *testing.T) {
	l := New(`"no closing quote`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unterminated string error")
	}
}

func TestNextTokenWords(t *testing.T) {
	l := New("ಕೂಡಿಸು add_two kebab-case-word _private")
	for _, want := range []string{"ಕೂಡಿಸು", "add_two", "kebab-case-word", "_private"} {
		tok := l.NextToken()
		if tok.Type != WORD || tok.Lexeme != want {
			t.Fatalf("got %v, want WORD(%s)", tok, want)
		}
	}
}

func TestNextTokenComments(t *testing.T) {
	l := New("1 // a line comment\n2 /* a block\ncomment */ 3")
	for _, want := range []int64{1, 2, 3} {
		tok := l.NextToken()
		if tok.Type != NUMBER || tok.Literal != want {
			t.Fatalf("got %v, want NUMBER(%d)", tok, want)
		}
	}
	if tok := l.NextToken(); tok.Type != EOF {
		t.Fatalf("got %v, want EOF", tok)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("1 2 3")
	if p := l.Peek(1); p.Literal != int64(2) {
		t.Fatalf("Peek(1) = %v, want 2", p)
	}
	first := l.NextToken()
	if first.Literal != int64(1) {
		t.Fatalf("NextToken() = %v, want 1", first)
	}
	second := l.NextToken()
	if second.Literal != int64(2) {
		t.Fatalf("NextToken() = %v, want 2", second)
	}
}

func TestNextTokenEOFIsStable(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		if tok := l.NextToken(); tok.Type != EOF {
			t.Fatalf("call %d: got %v, want EOF", i, tok)
		}
	}
}

func TestNextTokenIllegalCharacter(t *testing.T) {
	l := New("1 @ 2")
	if tok := l.NextToken(); tok.Type != NUMBER {
		t.Fatalf("got %v, want NUMBER", tok)
	}
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected an unexpected-character error")
	}
	if tok := l.NextToken(); tok.Type != NUMBER {
		t.Fatalf("got %v, want NUMBER (lexer kept scanning after the error)", tok)
	}
}
