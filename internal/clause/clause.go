package clause

import (
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/wire"
)

// Clause is a sealed interface over the closed set of clause variants.
//
// Only types in this package implement it. All variants are immutable after
// construction.
type Clause interface {
	// Table returns the table this clause resolves against.
	Table() *tabletree.Table

	// Label returns the optional user-supplied label.
	Label() string

	// WireClause folds the clause into the server's request model.
	WireClause() wire.Clause

	clauseNode() // Sealed - only these types implement it.
}

// TextMatchType is the matching mode of a text criteria.
type TextMatchType string

const (
	TextIs       TextMatchType = "Is"
	TextContains TextMatchType = "Contains"
	TextBegins   TextMatchType = "Begins"
	TextEnds     TextMatchType = "Ends"
	TextRanges   TextMatchType = "Ranges"
)

// ArrayLogic is the combination mode of an array criteria.
type ArrayLogic string

const (
	ArrayOr  ArrayLogic = "OR"
	ArrayAnd ArrayLogic = "AND"
)

// Range sentinels for open-ended date and datetime bounds.
const (
	Earliest = "Earliest"
	Latest   = "Latest"
)

// criteria carries the fields every leaf clause shares.
type criteria struct {
	table        *tabletree.Table
	variableName string
	include      bool
	label        string
}

func (c criteria) Table() *tabletree.Table { return c.table }
func (c criteria) Label() string           { return c.label }

// Selector selects records by a list of selector codes.
type Selector struct {
	criteria
	values []string
}

func (*Selector) clauseNode() {}

// NewSelector creates a selector-list criteria.
func NewSelector(table *tabletree.Table, variableName string, values []string, include bool, label string) *Selector {
	return &Selector{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
	}
}

// Values returns the wire-form values.
func (c *Selector) Values() []string { return copyValues(c.values) }

// VariableName returns the server name of the selected variable.
func (c *Selector) VariableName() string { return c.variableName }

// CombinedCategories selects records by categories of a selector that was
// synthesized from other selectors.
type CombinedCategories struct {
	criteria
	values []string
}

func (*CombinedCategories) clauseNode() {}

// NewCombinedCategories creates a combined-categories list criteria.
func NewCombinedCategories(table *tabletree.Table, variableName string, values []string, include bool, label string) *CombinedCategories {
	return &CombinedCategories{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
	}
}

// Numeric selects records by a list of numeric wire values.
type Numeric struct {
	criteria
	values []string
}

func (*Numeric) clauseNode() {}

// NewNumeric creates a numeric-list criteria.
func NewNumeric(table *tabletree.Table, variableName string, values []string, include bool, label string) *Numeric {
	return &Numeric{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
	}
}

// Text selects records by text values under a match type.
type Text struct {
	criteria
	values    []string
	matchType TextMatchType
}

func (*Text) clauseNode() {}

// NewText creates a text criteria with the given match type.
func NewText(table *tabletree.Table, variableName string, values []string, matchType TextMatchType, include bool, label string) *Text {
	return &Text{
		criteria:  criteria{table: table, variableName: variableName, include: include, label: label},
		values:    copyValues(values),
		matchType: matchType,
	}
}

// MatchType returns the text matching mode.
func (c *Text) MatchType() TextMatchType { return c.matchType }

// Array selects records by array variable values combined with OR or AND.
type Array struct {
	criteria
	values []string
	logic  ArrayLogic
}

func (*Array) clauseNode() {}

// NewArray creates an array-list criteria.
func NewArray(table *tabletree.Table, variableName string, values []string, logic ArrayLogic, include bool, label string) *Array {
	return &Array{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
		logic:    logic,
	}
}

// FlagArray selects records by flag-array variable values.
type FlagArray struct {
	criteria
	values []string
	logic  ArrayLogic
}

func (*FlagArray) clauseNode() {}

// NewFlagArray creates a flag-array-list criteria.
func NewFlagArray(table *tabletree.Table, variableName string, values []string, logic ArrayLogic, include bool, label string) *FlagArray {
	return &FlagArray{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
		logic:    logic,
	}
}

// DateList selects records by a list of dates in basic "20060102" form.
type DateList struct {
	criteria
	values []string
}

func (*DateList) clauseNode() {}

// NewDateList creates a date-list criteria.
func NewDateList(table *tabletree.Table, variableName string, values []string, include bool, label string) *DateList {
	return &DateList{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
	}
}

// DateRange selects records within an inclusive "2006-01-02" date range.
// Either bound may be the Earliest or Latest sentinel.
type DateRange struct {
	criteria
	start string
	end   string
}

func (*DateRange) clauseNode() {}

// NewDateRange creates a date-range criteria.
func NewDateRange(table *tabletree.Table, variableName string, start, end string, include bool, label string) *DateRange {
	return &DateRange{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		start:    start,
		end:      end,
	}
}

// TimeRange selects records within an inclusive time-of-day range.
type TimeRange struct {
	criteria
	start string
	end   string
}

func (*TimeRange) clauseNode() {}

// NewTimeRange creates a time-range criteria.
func NewTimeRange(table *tabletree.Table, variableName string, start, end string, include bool, label string) *TimeRange {
	return &TimeRange{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		start:    start,
		end:      end,
	}
}

// DateTimeRange selects records within an inclusive
// "2006-01-02T15:04:05" datetime range. Either bound may be the Earliest
// or Latest sentinel.
type DateTimeRange struct {
	criteria
	start string
	end   string
}

func (*DateTimeRange) clauseNode() {}

// NewDateTimeRange creates a datetime-range criteria.
func NewDateTimeRange(table *tabletree.Table, variableName string, start, end string, include bool, label string) *DateTimeRange {
	return &DateTimeRange{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		start:    start,
		end:      end,
	}
}

// Reference selects records by reference values.
type Reference struct {
	criteria
	values []string
}

func (*Reference) clauseNode() {}

// NewReference creates a reference criteria.
func NewReference(table *tabletree.Table, variableName string, values []string, include bool, label string) *Reference {
	return &Reference{
		criteria: criteria{table: table, variableName: variableName, include: include, label: label},
		values:   copyValues(values),
	}
}

// SubSelection wraps a previously materialized selection so it can be
// composed with further clauses.
type SubSelection struct {
	table     *tabletree.Table
	selection wire.Selection
	label     string
}

func (*SubSelection) clauseNode() {}

// NewSubSelection wraps the wire model of an existing selection.
func NewSubSelection(table *tabletree.Table, selection wire.Selection, label string) *SubSelection {
	return &SubSelection{table: table, selection: selection, label: label}
}

func (c *SubSelection) Table() *tabletree.Table { return c.table }
func (c *SubSelection) Label() string           { return c.label }

func copyValues(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
