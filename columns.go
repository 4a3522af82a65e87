package sqlinsert

import "github.com/viant/parsly"

// scanColumns reads column names up to and including the closing ')' and
// returns them with their start offsets. The cursor must sit just past the
// opening '('.
func scanColumns(cursor *parsly.Cursor, text string, strict bool) ([]string, []int, error) {
	input := cursor.Input
	columns := []string{}
	offsets := []int{}
	wordStart := -1
	expectedComma := false
	afterComma := false

	closeWord := func(end int) bool {
		if wordStart < 0 {
			return false
		}
		columns = append(columns, text[wordStart:end])
		offsets = append(offsets, wordStart)
		wordStart = -1
		return true
	}

	for pos := cursor.Pos; pos < cursor.InputSize; pos++ {
		ch := input[pos]
		switch {
		case ch == ')':
			if strict && afterComma && wordStart < 0 {
				return nil, nil, newError(KindMissingToken, input, pos, "empty column name", "column name")
			}
			closeWord(pos)
			cursor.Pos = pos + 1
			return columns, offsets, nil
		case isWhitespace(ch):
			if closeWord(pos) {
				expectedComma = true
			}
		case ch == ',':
			if strict && wordStart < 0 && !expectedComma {
				return nil, nil, newError(KindMissingToken, input, pos, "empty column name", "column name")
			}
			closeWord(pos)
			expectedComma = false
			afterComma = true
		default:
			if expectedComma {
				return nil, nil, newError(KindUnexpectedCharacter, input, pos, "invalid column list", "','")
			}
			if wordStart < 0 {
				wordStart = pos
				afterComma = false
			}
		}
	}
	cursor.Pos = cursor.InputSize
	return nil, nil, newError(KindUnterminatedList, input, cursor.InputSize, "unterminated column list", "')'")
}
