package sqlinsert

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// represents the category of a parse failure
type ErrorKind string

const (
	KindUnexpectedEnd       ErrorKind = "unexpected-end"
	KindKeywordMismatch     ErrorKind = "keyword-mismatch"
	KindMissingToken        ErrorKind = "missing-token"
	KindUnexpectedCharacter ErrorKind = "unexpected-character"
	KindUnterminatedList    ErrorKind = "unterminated-list"
	KindArityMismatch       ErrorKind = "arity-mismatch"
)

var (
	ErrUnexpectedEnd       = errors.New("unexpected end of input")
	ErrKeywordMismatch     = errors.New("keyword mismatch")
	ErrMissingToken        = errors.New("missing token")
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedList    = errors.New("unterminated list")
	ErrArityMismatch       = errors.New("arity mismatch")
)

var kindErrors = map[ErrorKind]error{
	KindUnexpectedEnd:       ErrUnexpectedEnd,
	KindKeywordMismatch:     ErrKeywordMismatch,
	KindMissingToken:        ErrMissingToken,
	KindUnexpectedCharacter: ErrUnexpectedCharacter,
	KindUnterminatedList:    ErrUnterminatedList,
	KindArityMismatch:       ErrArityMismatch,
}

const inputEnded = "input ended"

// ParseError describes the first violated expectation and where it happened.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Expected string
	// Found is the offending character, or "input ended".
	Found  string
	Offset int
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Expected != "" {
		msg = fmt.Sprintf("%s: expected %s", msg, e.Expected)
	}
	if e.Found == "" {
		return fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Found == inputEnded {
		return fmt.Sprintf("%s, but %s at offset %d", msg, inputEnded, e.Offset)
	}
	return fmt.Sprintf("%s, found %q at offset %d", msg, e.Found, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return kindErrors[e.Kind]
}

// foundAt returns the character at offset, or the input-ended marker.
func foundAt(input []byte, offset int) string {
	if offset >= len(input) {
		return inputEnded
	}
	r, _ := utf8.DecodeRune(input[offset:])
	return string(r)
}

func newError(kind ErrorKind, input []byte, offset int, message, expected string) *ParseError {
	return &ParseError{
		Kind:     kind,
		Message:  message,
		Expected: expected,
		Found:    foundAt(input, offset),
		Offset:   offset,
	}
}

// endOrKind reports UnexpectedEnd when the cursor ran out, otherwise kind.
func endOrKind(input []byte, offset int, kind ErrorKind) ErrorKind {
	if offset >= len(input) {
		return KindUnexpectedEnd
	}
	return kind
}
