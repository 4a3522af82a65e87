package sqlinsert

import (
	"slices"

	"github.com/viant/parsly"
)

// represents a single parsed INSERT statement
type ParsedInsert struct {
	TableName string   `json:"tableName" yaml:"tableName"`
	Alias     *string  `json:"alias,omitempty" yaml:"alias,omitempty"`
	Columns   []string `json:"columns" yaml:"columns"`
	Values    []string `json:"values" yaml:"values"`
}

// Pair is one column matched with the value at the same position.
type Pair struct {
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
}

// Pairs returns the columns zipped with their values in statement order.
// Unmatched trailing columns or values are left out.
func (p *ParsedInsert) Pairs() []Pair {
	pairs := make([]Pair, min(len(p.Columns), len(p.Values)))
	for i := range pairs {
		pairs[i] = Pair{Column: p.Columns[i], Value: p.Values[i]}
	}
	return pairs
}

// Equal reports whether two parsed statements are structurally identical.
func (p *ParsedInsert) Equal(other *ParsedInsert) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.TableName != other.TableName {
		return false
	}
	if (p.Alias == nil) != (other.Alias == nil) {
		return false
	}
	if p.Alias != nil && *p.Alias != *other.Alias {
		return false
	}
	return slices.Equal(p.Columns, other.Columns) && slices.Equal(p.Values, other.Values)
}

// provides configuration for the Parse functions
type Options struct {
	// Strict rejects trailing content, empty column names and identifiers
	// that are neither bare nor quoted SQL identifiers.
	Strict bool
	// Unescape rewrites \' inside quoted literals to a plain quote.
	Unescape bool
}

// represents the assembler position within the INSERT grammar
type StepType string

const (
	StepStart            StepType = "start"
	StepAfterInsert      StepType = "after-insert"
	StepAfterInto        StepType = "after-into"
	StepHaveTableName    StepType = "have-table-name"
	StepOptionalAlias    StepType = "optional-alias"
	StepOpenColumnParen  StepType = "open-column-paren"
	StepHaveColumns      StepType = "have-columns"
	StepCloseColumnParen StepType = "close-column-paren"
	StepAfterValues      StepType = "after-values"
	StepOpenValueParen   StepType = "open-value-paren"
	StepHaveValues       StepType = "have-values"
	StepDone             StepType = "done"
)

type Step struct {
	Type StepType
	// Run consumes input for this step and returns the step to continue with.
	Run func(state *State) (StepType, error)
}

// State is the per-call parse context; nothing in it is shared between calls.
type State struct {
	Cursor  *parsly.Cursor
	Input   string
	Options Options
	Result  *ParsedInsert
	Step    StepType
}
