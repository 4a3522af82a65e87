package sqlinsert

import (
	"fmt"
	"strings"
)

// steps of the INSERT grammar, visited in a fixed forward order
var insertSteps = map[StepType]Step{
	StepStart:            {Type: StepStart, Run: runStart},
	StepAfterInsert:      {Type: StepAfterInsert, Run: runAfterInsert},
	StepAfterInto:        {Type: StepAfterInto, Run: runAfterInto},
	StepHaveTableName:    {Type: StepHaveTableName, Run: runHaveTableName},
	StepOptionalAlias:    {Type: StepOptionalAlias, Run: runOptionalAlias},
	StepOpenColumnParen:  {Type: StepOpenColumnParen, Run: runOpenColumnParen},
	StepHaveColumns:      {Type: StepHaveColumns, Run: runHaveColumns},
	StepCloseColumnParen: {Type: StepCloseColumnParen, Run: runCloseColumnParen},
	StepAfterValues:      {Type: StepAfterValues, Run: runAfterValues},
	StepOpenValueParen:   {Type: StepOpenValueParen, Run: runOpenValueParen},
	StepHaveValues:       {Type: StepHaveValues, Run: runHaveValues},
}

// Parse parses a single INSERT statement with default options.
func Parse(statement string) (*ParsedInsert, error) {
	return ParseWithOptions(statement, Options{})
}

// ParseWithOptions parses a single INSERT statement. The returned strings
// share memory with statement unless Options.Unescape rewrote them.
func ParseWithOptions(statement string, options Options) (result *ParsedInsert, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	state := initState(statement, options)
	for state.Step != StepDone {
		step, ok := insertSteps[state.Step]
		if !ok {
			return nil, fmt.Errorf("unknown parser step %q", state.Step)
		}
		next, err := step.Run(state)
		if err != nil {
			return nil, err
		}
		state.Step = next
	}
	return state.Result, nil
}

// ParseChunks parses a statement that was already split on whitespace,
// such as unquoted command line arguments. Chunks are rejoined with a
// single space, so runs of whitespace inside quoted literals collapse.
func ParseChunks(chunks []string, options Options) (*ParsedInsert, error) {
	return ParseWithOptions(strings.Join(chunks, " "), options)
}

func initState(statement string, options Options) *State {
	return &State{
		Cursor:  newCursor([]byte(statement)),
		Input:   statement,
		Options: options,
		Result: &ParsedInsert{
			Columns: []string{},
			Values:  []string{},
		},
		Step: StepStart,
	}
}

func runStart(state *State) (StepType, error) {
	skipTerminators(state.Cursor)
	if err := matchKeyword(state.Cursor, insertKeyword); err != nil {
		return "", err
	}
	return StepAfterInsert, nil
}

func runAfterInsert(state *State) (StepType, error) {
	skipWhitespace(state.Cursor)
	if err := matchKeyword(state.Cursor, intoKeyword); err != nil {
		return "", err
	}
	return StepAfterInto, nil
}

func runAfterInto(state *State) (StepType, error) {
	skipWhitespace(state.Cursor)
	start, end, err := takeToken(state.Cursor, "table name")
	if err != nil {
		return "", err
	}
	name := state.Input[start:end]
	if state.Options.Strict {
		if err := validateIdentifier(state.Cursor.Input, name, start, "table name"); err != nil {
			return "", err
		}
	}
	state.Result.TableName = name
	return StepHaveTableName, nil
}

// runHaveTableName is the single token of lookahead: '(' opens the column
// list, anything else must be an alias.
func runHaveTableName(state *State) (StepType, error) {
	skipWhitespace(state.Cursor)
	switch peek(state.Cursor) {
	case '(':
		return StepOpenColumnParen, nil
	case eof:
		pos := state.Cursor.Pos
		return "", newError(KindUnexpectedEnd, state.Cursor.Input, pos, "missing column list", "'('")
	}
	return StepOptionalAlias, nil
}

func runOptionalAlias(state *State) (StepType, error) {
	start, end, err := takeToken(state.Cursor, "alias")
	if err != nil {
		return "", err
	}
	alias := state.Input[start:end]
	if state.Options.Strict {
		if err := validateIdentifier(state.Cursor.Input, alias, start, "alias"); err != nil {
			return "", err
		}
	}
	state.Result.Alias = &alias
	skipWhitespace(state.Cursor)
	if peek(state.Cursor) != '(' {
		pos := state.Cursor.Pos
		kind := endOrKind(state.Cursor.Input, pos, KindUnexpectedCharacter)
		return "", newError(kind, state.Cursor.Input, pos, "missing column list", "'('")
	}
	return StepOpenColumnParen, nil
}

func runOpenColumnParen(state *State) (StepType, error) {
	if err := matchOpenParen(state.Cursor, "missing column list"); err != nil {
		return "", err
	}
	return StepHaveColumns, nil
}

func runHaveColumns(state *State) (StepType, error) {
	columns, offsets, err := scanColumns(state.Cursor, state.Input, state.Options.Strict)
	if err != nil {
		return "", err
	}
	if state.Options.Strict {
		for i, column := range columns {
			if err := validateIdentifier(state.Cursor.Input, column, offsets[i], "column name"); err != nil {
				return "", err
			}
		}
	}
	state.Result.Columns = columns
	return StepCloseColumnParen, nil
}

func runCloseColumnParen(state *State) (StepType, error) {
	skipWhitespace(state.Cursor)
	if err := matchKeyword(state.Cursor, valuesKeyword); err != nil {
		return "", err
	}
	return StepAfterValues, nil
}

func runAfterValues(state *State) (StepType, error) {
	skipWhitespace(state.Cursor)
	if err := matchOpenParen(state.Cursor, "missing value list"); err != nil {
		return "", err
	}
	return StepOpenValueParen, nil
}

func runOpenValueParen(state *State) (StepType, error) {
	values, err := scanValues(state.Cursor, state.Input)
	if err != nil {
		return "", err
	}
	if state.Options.Unescape {
		for i, value := range values {
			values[i] = Unescape(value)
		}
	}
	state.Result.Values = values
	return StepHaveValues, nil
}

func runHaveValues(state *State) (StepType, error) {
	result := state.Result
	if len(result.Columns) != len(result.Values) {
		return "", &ParseError{
			Kind:    KindArityMismatch,
			Message: fmt.Sprintf("%d columns but %d values", len(result.Columns), len(result.Values)),
			Offset:  state.Cursor.Pos,
		}
	}
	skipTerminators(state.Cursor)
	if state.Options.Strict && state.Cursor.Pos < state.Cursor.InputSize {
		pos := state.Cursor.Pos
		return "", newError(KindUnexpectedCharacter, state.Cursor.Input, pos, "trailing content after statement", "end of statement")
	}
	return StepDone, nil
}
