package sqlinsert

import (
	regexp "github.com/wasilibs/go-re2"
)

// one name part: bare, "double quoted", `backticked` or [bracketed]
const identifierPart = `(?:[A-Za-z_][A-Za-z0-9_$]*|"(?:[^"]|"")+"|` + "`[^`]+`" + `|\[[^\]]+\])`

var identifierRegex = regexp.MustCompile(`^` + identifierPart + `(?:\.` + identifierPart + `)*$`)

// IsIdentifier reports whether name is a plain or schema-qualified SQL identifier.
func IsIdentifier(name string) bool {
	return identifierRegex.MatchString(name)
}

func validateIdentifier(input []byte, name string, offset int, what string) error {
	if IsIdentifier(name) {
		return nil
	}
	return newError(KindUnexpectedCharacter, input, offset+invalidIdentifierOffset(name), "invalid identifier "+quote(name), what)
}

// invalidIdentifierOffset locates the first byte a bare identifier cannot hold.
func invalidIdentifierOffset(name string) int {
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch == '"' || ch == '`' || ch == '[':
			return 0
		case i == 0 && ch >= '0' && ch <= '9':
			return 0
		case !isWordByte(ch) && ch != '$' && ch != '.':
			return i
		}
	}
	return 0
}

func quote(name string) string {
	return "'" + name + "'"
}
