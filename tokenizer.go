package sqlinsert

import (
	"bytes"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const eof = -1

const (
	whitespaceToken int = iota
	insertToken
	intoToken
	valuesToken
	bareToken
	openParenToken
	terminatorToken
)

// keyword matches a case-insensitive literal that ends on a word boundary.
type keyword struct {
	text  []byte
	token *parsly.Token
}

func (k *keyword) Match(cursor *parsly.Cursor) (matched int) {
	end := cursor.Pos + len(k.text)
	if end > cursor.InputSize {
		return 0
	}
	if !bytes.EqualFold(cursor.Input[cursor.Pos:end], k.text) {
		return 0
	}
	if end < cursor.InputSize && isWordByte(cursor.Input[end]) {
		return 0
	}
	return len(k.text)
}

func newKeyword(code int, text string) *keyword {
	kw := &keyword{text: []byte(text)}
	kw.token = parsly.NewToken(code, text, kw)
	return kw
}

// bare matches a maximal run of bytes that can form a table name or alias.
type bare struct{}

func (b *bare) Match(cursor *parsly.Cursor) (matched int) {
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if !isTokenByte(cursor.Input[i]) {
			break
		}
		matched++
	}
	return matched
}

var (
	insertKeyword = newKeyword(insertToken, "INSERT")
	intoKeyword   = newKeyword(intoToken, "INTO")
	valuesKeyword = newKeyword(valuesToken, "VALUES")
)

var whitespaceMatcher = parsly.NewToken(whitespaceToken, "Whitespace", matcher.NewWhiteSpace())
var bareMatcher = parsly.NewToken(bareToken, "Token", &bare{})
var openParenMatcher = parsly.NewToken(openParenToken, "(", matcher.NewByte('('))
var terminatorMatcher = parsly.NewToken(terminatorToken, ";", matcher.NewByte(';'))

func newCursor(input []byte) *parsly.Cursor {
	return parsly.NewCursor("", input, 0)
}

func skipWhitespace(cursor *parsly.Cursor) {
	for cursor.Pos < cursor.InputSize && isWhitespace(cursor.Input[cursor.Pos]) {
		if cursor.MatchOne(whitespaceMatcher).Code != whitespaceToken {
			// whitespace outside the matcher's set still counts as a separator
			cursor.Pos++
		}
	}
}

// peek returns the byte under the cursor without consuming it, or eof.
func peek(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize {
		return eof
	}
	return int(cursor.Input[cursor.Pos])
}

func matchKeyword(cursor *parsly.Cursor, kw *keyword) error {
	pos := cursor.Pos
	if cursor.MatchOne(kw.token).Code == kw.token.Code {
		return nil
	}
	offset := keywordMismatch(cursor.Input, pos, kw.text)
	kind := endOrKind(cursor.Input, offset, KindKeywordMismatch)
	return newError(kind, cursor.Input, offset, "invalid keyword", string(kw.text))
}

// keywordMismatch returns the offset of the first byte that breaks the keyword.
func keywordMismatch(input []byte, pos int, text []byte) int {
	for i := range text {
		offset := pos + i
		if offset >= len(input) {
			return offset
		}
		if !bytes.EqualFold(input[offset:offset+1], text[i:i+1]) {
			return offset
		}
	}
	return pos + len(text)
}

// takeToken consumes a bare token and returns its [start, end) offsets.
func takeToken(cursor *parsly.Cursor, what string) (int, int, error) {
	start := cursor.Pos
	if cursor.MatchOne(bareMatcher).Code != bareToken {
		return 0, 0, newError(KindMissingToken, cursor.Input, start, "missing token", what)
	}
	return start, cursor.Pos, nil
}

func matchOpenParen(cursor *parsly.Cursor, message string) error {
	pos := cursor.Pos
	if cursor.MatchOne(openParenMatcher).Code == openParenToken {
		return nil
	}
	kind := endOrKind(cursor.Input, pos, KindUnexpectedCharacter)
	return newError(kind, cursor.Input, pos, message, "'('")
}

// skipTerminators consumes any mix of whitespace and ';'.
func skipTerminators(cursor *parsly.Cursor) {
	for {
		skipWhitespace(cursor)
		if peek(cursor) != ';' {
			return
		}
		cursor.MatchOne(terminatorMatcher)
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isWhitespaceRune(r rune) bool {
	return r < 0x80 && isWhitespace(byte(r))
}

func isTokenByte(ch byte) bool {
	return !isWhitespace(ch) && ch != '(' && ch != ';'
}

func isWordByte(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
