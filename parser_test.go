package sqlinsert

import (
	"fmt"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alias(name string) *string {
	return &name
}

type parseTestCase struct {
	name     string
	input    string
	options  Options
	expected *ParsedInsert
}

func TestParse(t *testing.T) {
	testCases := []parseTestCase{
		{
			name:  "parses empty column and value lists",
			input: "insert into test () values ()",
			expected: &ParsedInsert{
				TableName: "test",
				Columns:   []string{},
				Values:    []string{},
			},
		},
		{
			name:  "parses upper case statement",
			input: "INSERT INTO TEST (COL1, COL2) VALUES (VAL1, VAL2)",
			expected: &ParsedInsert{
				TableName: "TEST",
				Columns:   []string{"COL1", "COL2"},
				Values:    []string{"VAL1", "VAL2"},
			},
		},
		{
			name:  "parses mixed case keywords and padded lists",
			input: "InSeRt      InTo   TeSt   ( CoL1 , CoL2 ) VaLuEs (vAl1, VaL2) ",
			expected: &ParsedInsert{
				TableName: "TeSt",
				Columns:   []string{"CoL1", "CoL2"},
				Values:    []string{"vAl1", "VaL2"},
			},
		},
		{
			name:  "parses alias and trailing terminator",
			input: "InSeRt      InTo TeSt alias (CoL1, Col2) VaLues (Val1, Val2);",
			expected: &ParsedInsert{
				TableName: "TeSt",
				Alias:     alias("alias"),
				Columns:   []string{"CoL1", "Col2"},
				Values:    []string{"Val1", "Val2"},
			},
		},
		{
			name:  "keeps quotes around string values",
			input: "InSeRt      InTo TeSt alias (CoL1, Col2) VaLues ('222222', Val2);",
			expected: &ParsedInsert{
				TableName: "TeSt",
				Alias:     alias("alias"),
				Columns:   []string{"CoL1", "Col2"},
				Values:    []string{"'222222'", "Val2"},
			},
		},
		{
			name:  "keeps function call values whole",
			input: "InSeRt      InTo TeSt alias (CoL1, Col2) VaLues (to_date('11.02.2021', 'DD.MM.YYYY'), null);",
			expected: &ParsedInsert{
				TableName: "TeSt",
				Alias:     alias("alias"),
				Columns:   []string{"CoL1", "Col2"},
				Values:    []string{"to_date('11.02.2021', 'DD.MM.YYYY')", "null"},
			},
		},
		{
			name:  "parses without whitespace before parentheses",
			input: "insert into t(a,b) values(1,2)",
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a", "b"},
				Values:    []string{"1", "2"},
			},
		},
		{
			name:  "keeps escaped quote inside one value",
			input: `insert into t (a) values ('it\'s here')`,
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a"},
				Values:    []string{`'it\'s here'`},
			},
		},
		{
			name:  "ends quote after backslash followed by whitespace",
			input: `insert into t (a) values ('a\ ')`,
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a"},
				Values:    []string{`'a\ '`},
			},
		},
		{
			name:  "splits values after backslash followed by whitespace",
			input: `insert into t (a, b) values ('x\ ', 'y')`,
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a", "b"},
				Values:    []string{`'x\ '`, "'y'"},
			},
		},
		{
			name:    "unescapes quote when asked",
			input:   `insert into t (a) values ('it\'s here')`,
			options: Options{Unescape: true},
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a"},
				Values:    []string{`'it's here'`},
			},
		},
		{
			name:  "ignores structural characters inside quotes",
			input: "insert into t (a, b) values ('x, (y)', 'z)')",
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a", "b"},
				Values:    []string{"'x, (y)'", "'z)'"},
			},
		},
		{
			name:  "tolerates leading whitespace and terminators",
			input: " \n ;insert into t (a) values (1);;",
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a"},
				Values:    []string{"1"},
			},
		},
		{
			name:  "ignores trailing content",
			input: "insert into t (a) values (1) returning id",
			expected: &ParsedInsert{
				TableName: "t",
				Columns:   []string{"a"},
				Values:    []string{"1"},
			},
		},
		{
			name:  "parses tabs and newlines as separators",
			input: "insert\tinto\nusers\tu\n(\n\tid,\n\tname\n)\nvalues\n(\n\t42,\n\t'Zoë'\n)",
			expected: &ParsedInsert{
				TableName: "users",
				Alias:     alias("u"),
				Columns:   []string{"id", "name"},
				Values:    []string{"42", "'Zoë'"},
			},
		},
		{
			name:  "parses schema qualified table",
			input: "insert into public.users (id) values (1)",
			expected: &ParsedInsert{
				TableName: "public.users",
				Columns:   []string{"id"},
				Values:    []string{"1"},
			},
		},
		{
			name:    "strict accepts quoted identifiers",
			input:   "insert into \"Users\" `u` ([id], name) values (1, 'bob');",
			options: Options{Strict: true},
			expected: &ParsedInsert{
				TableName: `"Users"`,
				Alias:     alias("`u`"),
				Columns:   []string{"[id]", "name"},
				Values:    []string{"1", "'bob'"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseWithOptions(tc.input, tc.options)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, len(actual.Columns), len(actual.Values))
		})
	}
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		options     Options
		expectedErr error
		message     string
	}{
		{name: "rejects empty input", input: "", expectedErr: ErrUnexpectedEnd, message: "invalid keyword: expected INSERT, but input ended at offset 0"},
		{name: "rejects misspelled insert", input: "insrt into test", expectedErr: ErrKeywordMismatch, message: `invalid keyword: expected INSERT, found "r" at offset 3`},
		{name: "rejects misspelled into", input: "insert ino test", expectedErr: ErrKeywordMismatch, message: `invalid keyword: expected INTO, found "o" at offset 9`},
		{name: "rejects missing into", input: "insert test (a) values (1)", expectedErr: ErrKeywordMismatch},
		{name: "rejects glued keywords", input: "insertinto t (a) values (1)", expectedErr: ErrKeywordMismatch},
		{name: "rejects missing table", input: "insert into", expectedErr: ErrMissingToken},
		{name: "rejects missing column list", input: "insert into test", expectedErr: ErrUnexpectedEnd},
		{name: "rejects two tokens after alias", input: "insert into test test test", expectedErr: ErrUnexpectedCharacter, message: `missing column list: expected '(', found "t" at offset 22`},
		{name: "rejects alias without column list", input: "insert into test test", expectedErr: ErrUnexpectedEnd},
		{name: "rejects unclosed column list", input: "insert into test test (test ", expectedErr: ErrUnterminatedList},
		{name: "rejects missing comma in column list", input: "insert into test test (test values", expectedErr: ErrUnexpectedCharacter},
		{name: "rejects misspelled values", input: "insert into t (a) value (1)", expectedErr: ErrKeywordMismatch},
		{name: "rejects missing values keyword", input: "insert into t (a)", expectedErr: ErrUnexpectedEnd},
		{name: "rejects missing value list", input: "insert into t (a) values 1", expectedErr: ErrUnexpectedCharacter},
		{name: "rejects unclosed value list", input: "insert into t (a) values (1", expectedErr: ErrUnterminatedList},
		{name: "rejects unclosed quoted value", input: "insert into t (a) values ('x)", expectedErr: ErrUnterminatedList},
		{name: "rejects trailing comma in values", input: "insert into t (a, b) values (1, )", expectedErr: ErrMissingToken},
		{name: "rejects fewer values than columns", input: "insert into t (a, b) values (1)", expectedErr: ErrArityMismatch, message: "2 columns but 1 values at offset 31"},
		{name: "rejects more values than columns", input: "insert into t () values (1)", expectedErr: ErrArityMismatch},
		{name: "strict rejects trailing content", input: "insert into t (a) values (1); drop table t", options: Options{Strict: true}, expectedErr: ErrUnexpectedCharacter},
		{name: "strict rejects invalid table name", input: "insert into 1t (a) values (1)", options: Options{Strict: true}, expectedErr: ErrUnexpectedCharacter},
		{name: "strict rejects invalid alias", input: "insert into t x-y (a) values (1)", options: Options{Strict: true}, expectedErr: ErrUnexpectedCharacter, message: `invalid identifier 'x-y': expected alias, found "-" at offset 15`},
		{name: "strict rejects invalid column", input: "insert into t (a, b+c) values (1, 2)", options: Options{Strict: true}, expectedErr: ErrUnexpectedCharacter},
		{name: "strict rejects doubled comma", input: "insert into t (a,,b) values (1, 2)", options: Options{Strict: true}, expectedErr: ErrMissingToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var actual *ParsedInsert
			var err error
			assert.NotPanics(t, func() {
				actual, err = ParseWithOptions(tc.input, tc.options)
			})
			assert.Nil(t, actual)
			require.ErrorIs(t, err, tc.expectedErr)
			if tc.message != "" {
				assert.EqualError(t, err, tc.message)
			}
		})
	}
}

func TestParseKeywordsAreCaseInsensitive(t *testing.T) {
	expected := &ParsedInsert{TableName: "t", Columns: []string{"a"}, Values: []string{"1"}}
	for _, keyword := range []string{"insert", "into", "values"} {
		for _, variant := range []string{strings.ToLower(keyword), strings.ToUpper(keyword), mixCase(keyword)} {
			t.Run(variant, func(t *testing.T) {
				statement := strings.Replace("insert into t (a) values (1)", keyword, variant, 1)
				actual, err := Parse(statement)
				require.NoError(t, err)
				assert.Equal(t, expected, actual)
			})
		}
	}
}

func mixCase(text string) string {
	builder := strings.Builder{}
	for i, ch := range text {
		if i%2 == 0 {
			builder.WriteString(strings.ToUpper(string(ch)))
		} else {
			builder.WriteRune(ch)
		}
	}
	return builder.String()
}

func TestParseWhitespaceDoesNotChangeResult(t *testing.T) {
	reference, err := Parse("insert into t (a, b) values (1, 2)")
	require.NoError(t, err)

	variants := []string{
		"insert      into   t (a,b) values(1,2)",
		"insert into t(a,b)values(1,2)",
		"  insert\ninto\tt (  a  ,  b  )  values  (  1  ,  2  )  ",
	}
	for _, variant := range variants {
		actual, err := Parse(variant)
		require.NoError(t, err, variant)
		assert.True(t, reference.Equal(actual), variant)
	}
}

func TestParseAlias(t *testing.T) {
	withAlias, err := Parse("insert into t alias (a) values (1)")
	require.NoError(t, err)
	require.NotNil(t, withAlias.Alias)
	assert.Equal(t, "alias", *withAlias.Alias)

	withoutAlias, err := Parse("insert into t (a) values (1)")
	require.NoError(t, err)
	assert.Nil(t, withoutAlias.Alias)
}

func TestParseIsIdempotent(t *testing.T) {
	statement := "insert into t x (a, b, c) values ('a b', f('x', 1), 'it\\'s')"
	first, err := Parse(statement)
	require.NoError(t, err)
	second, err := Parse(statement)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, first.Equal(second))
}

func TestParseRoundTripsGeneratedStatements(t *testing.T) {
	for n := 0; n <= 8; n++ {
		columns := make([]string, n)
		values := make([]string, n)
		for i := 0; i < n; i++ {
			columns[i] = fmt.Sprintf("c%d", i)
			values[i] = fmt.Sprintf("'v %d'", i)
		}
		statement := fmt.Sprintf("INSERT INTO T (%s) VALUES (%s)", strings.Join(columns, ", "), strings.Join(values, ", "))
		actual, err := Parse(statement)
		require.NoError(t, err, statement)
		assert.Equal(t, columns, actual.Columns)
		assert.Equal(t, values, actual.Values)
	}
}

func TestParsePrefixesNeverPanic(t *testing.T) {
	statement := `insert into t a (x, y) values ('a b\'c', f(1, 2));`
	for i := 0; i <= len(statement); i++ {
		prefix := statement[:i]
		assert.NotPanics(t, func() {
			actual, err := Parse(prefix)
			if err == nil {
				assert.Equal(t, len(actual.Columns), len(actual.Values))
			}
		}, prefix)
	}
}

func TestParseReturnsSlicesOfInput(t *testing.T) {
	statement := "insert into users (name) values ('bob')"
	actual, err := Parse(statement)
	require.NoError(t, err)
	assert.Equal(t, unsafe.StringData(statement[12:]), unsafe.StringData(actual.TableName))
	assert.Equal(t, unsafe.StringData(statement[33:]), unsafe.StringData(actual.Values[0]))
	assert.Equal(t, "'bob'", actual.Values[0])
}

func TestParseChunks(t *testing.T) {
	chunks := strings.Fields(`insert into t (a, b) values ('a b', 'it\'s')`)
	require.Greater(t, len(chunks), 7)

	actual, err := ParseChunks(chunks, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"'a b'", `'it\'s'`}, actual.Values)

	actual, err = ParseChunks(chunks, Options{Unescape: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"'a b'", "'it's'"}, actual.Values)
}
