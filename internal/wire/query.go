package wire

// Query is the top-level request body submitted to the queries endpoint.
type Query struct {
	Selection Selection `json:"selection"`
}

// Selection scopes a rule tree to a resolve table.
//
// AncestorCounts asks the server to report one count per ancestor table of
// the resolve table rather than a single count.
type Selection struct {
	TableName      string  `json:"table_name"`
	AncestorCounts bool    `json:"ancestor_counts,omitempty"`
	Rule           *Rule   `json:"rule,omitempty"`
	Limits         *Limits `json:"limits,omitempty"`
}

// Rule wraps the root clause of a selection.
type Rule struct {
	Clause Clause `json:"clause"`
}

// Clause is a union node in the rule tree. Exactly one field is set.
type Clause struct {
	Criteria     *Criteria  `json:"criteria,omitempty"`
	Logic        *Logic     `json:"logic,omitempty"`
	SubSelection *Selection `json:"sub_selection,omitempty"`
}

// Criteria is a single leaf criterion against one variable.
type Criteria struct {
	VariableName  string      `json:"variable_name"`
	Include       bool        `json:"include"`
	Logic         string      `json:"logic,omitempty"`
	TextMatchType string      `json:"text_match_type,omitempty"`
	ValueRules    []ValueRule `json:"value_rules"`
	TableName     string      `json:"table_name"`
	Label         string      `json:"label,omitempty"`
}

// ValueRule is a union of the value rule kinds. Exactly one field is set.
type ValueRule struct {
	List  *ListRule  `json:"list_rule,omitempty"`
	Range *RangeRule `json:"range_rule,omitempty"`
}

// ListRule carries a tab-joined list of wire values.
type ListRule struct {
	List string `json:"list"`
}

// RangeRule carries an inclusive bound pair. Date bounds may be the
// sentinels "Earliest" and "Latest"; time bounds use "Earliest"/"Latest"
// analogues supplied by the caller.
type RangeRule struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// Logic is a composition node: a boolean operation (AND, OR, NOT) or a
// table-change operation (ANY, THE) over one or more operand clauses.
type Logic struct {
	Operation string   `json:"operation"`
	Operands  []Clause `json:"operands"`
	TableName string   `json:"table_name"`
	Label     string   `json:"label,omitempty"`
}

// Limits optionally restricts a selection before counting.
type Limits struct {
	Sampling  string  `json:"sampling,omitempty"` // "Regular" or "Random"
	Fraction  float64 `json:"fraction,omitempty"`
	Total     int64   `json:"total,omitempty"`
	Type      string  `json:"type,omitempty"` // "First", "Stratified"
	StartAt   int64   `json:"start_at,omitempty"`
	TopN      *TopN   `json:"top_n,omitempty"`
	TableName string  `json:"table_name,omitempty"`
}

// TopN keeps the highest or lowest ranked records by a variable.
type TopN struct {
	VariableName string `json:"variable_name"`
	Direction    string `json:"direction"` // "Top" or "Bottom"
	Total        int64  `json:"total,omitempty"`
	Percent      float64 `json:"percent,omitempty"`
}

// CountsResponse is the queries endpoint response.
type CountsResponse struct {
	Counts []Count `json:"counts"`
}

// Count is a per-table record count.
type Count struct {
	TableName  string `json:"table_name"`
	CountValue int64  `json:"count_value"`
}
