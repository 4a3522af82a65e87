package sqlinsert

import (
	"strings"

	"github.com/viant/parsly"
)

// valueScanner splits a VALUES list into raw literals. It is fed one
// whitespace-delimited chunk at a time, so quote, escape and nesting state
// live here rather than in the loop that reads a chunk.
type valueScanner struct {
	input         []byte
	text          string
	insideQuote   bool
	escapePending bool
	depth         int
	// pendingAt is the offset of the quote an escapePending refers to
	pendingAt int
	// segment is the offset where the current literal began
	segment int
	values  []string
}

func newValueScanner(text string, input []byte, start int) *valueScanner {
	return &valueScanner{
		input:   input,
		text:    text,
		segment: start,
		values:  []string{},
	}
}

// feed scans input[from:to]. When the closing ')' is reached it returns the
// offset just past it and done set to true.
func (s *valueScanner) feed(from, to int) (next int, done bool, err error) {
	for pos := from; pos < to; pos++ {
		ch := s.input[pos]
		if s.escapePending {
			s.escapePending = false
			if pos == s.pendingAt {
				continue
			}
		}
		switch {
		case s.insideQuote && ch == '\\':
			if pos+1 >= len(s.input) || s.input[pos+1] != '\'' {
				break
			}
			if pos+1 < to {
				pos++
				continue
			}
			s.escapePending = true
			s.pendingAt = pos + 1
		case ch == '\'':
			s.insideQuote = !s.insideQuote
		case s.insideQuote:
		case ch == '(':
			s.depth++
		case ch == ')' && s.depth > 0:
			s.depth--
		case ch == ',' && s.depth == 0:
			value := s.literal(pos)
			if value == "" {
				return pos, false, newError(KindMissingToken, s.input, pos, "empty value", "value before ','")
			}
			s.values = append(s.values, value)
			s.segment = pos + 1
		case ch == ')':
			value := s.literal(pos)
			if value == "" && len(s.values) > 0 {
				return pos, false, newError(KindMissingToken, s.input, pos, "empty value", "value after ','")
			}
			if value != "" {
				s.values = append(s.values, value)
			}
			return pos + 1, true, nil
		}
	}
	return to, false, nil
}

func (s *valueScanner) literal(end int) string {
	return strings.TrimFunc(s.text[s.segment:end], isWhitespaceRune)
}

// unterminated explains why input ended before the closing ')'.
func (s *valueScanner) unterminated() error {
	end := len(s.input)
	switch {
	case s.insideQuote:
		return newError(KindUnterminatedList, s.input, end, "unterminated quoted literal in value list", "'")
	case s.depth > 0:
		return newError(KindUnterminatedList, s.input, end, "unterminated parenthesis in value list", "')'")
	case len(s.values) > 0 && s.literal(end) == "":
		return newError(KindMissingToken, s.input, end, "expected value after comma", "value")
	}
	return newError(KindUnterminatedList, s.input, end, "unterminated value list", "')'")
}

// scanValues reads literals up to and including the closing ')'.
// The cursor must sit just past the opening '('.
func scanValues(cursor *parsly.Cursor, text string) ([]string, error) {
	scanner := newValueScanner(text, cursor.Input, cursor.Pos)
	for {
		skipWhitespace(cursor)
		if cursor.Pos >= cursor.InputSize {
			return nil, scanner.unterminated()
		}
		next, done, err := scanner.feed(cursor.Pos, chunkEnd(cursor))
		cursor.Pos = next
		if err != nil {
			return nil, err
		}
		if done {
			return scanner.values, nil
		}
	}
}

// chunkEnd returns the offset of the first whitespace at or after the cursor.
func chunkEnd(cursor *parsly.Cursor) int {
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if isWhitespace(cursor.Input[i]) {
			return i
		}
	}
	return cursor.InputSize
}

// Unescape rewrites \' to ' inside the quoted regions of a literal.
func Unescape(literal string) string {
	if !strings.Contains(literal, `\'`) {
		return literal
	}
	builder := strings.Builder{}
	builder.Grow(len(literal))
	insideQuote := false
	for i := 0; i < len(literal); i++ {
		ch := literal[i]
		if insideQuote && ch == '\\' && i+1 < len(literal) && literal[i+1] == '\'' {
			builder.WriteByte('\'')
			i++
			continue
		}
		if ch == '\'' {
			insideQuote = !insideQuote
		}
		builder.WriteByte(ch)
	}
	return builder.String()
}
