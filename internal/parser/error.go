package parser

import (
	"fmt"

	"github.com/kapila-lang/kapila/internal/lexer"
)

// ParseError is a single recoverable diagnostic raised while building the
// tree; parsing continues past it via panic-mode synchronization.
type ParseError struct {
	Message string
	Code    string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

func newParseError(pos lexer.Position, code, message string) *ParseError {
	return &ParseError{Message: message, Code: code, Pos: pos}
}

const (
	ErrUnexpectedToken  = "E_UNEXPECTED_TOKEN"
	ErrExpectedWord     = "E_EXPECTED_WORD"
	ErrMissingRBracket  = "E_MISSING_RBRACKET"
	ErrMissingRBrace    = "E_MISSING_RBRACE"
	ErrInvalidPrimary   = "E_INVALID_PRIMARY"
)
