package vars

import (
	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/values"
)

const (
	numericValuesMsg = "chosen value(s) for a numeric variable" +
		" must be given as a number or a slice of numbers"
	numericSingleMsg = "must specify a single number" +
		" when using inequality operators"
)

// Eq selects records whose value is one of the given numbers.
// Accepts a number or a slice of numbers.
func (v *NumericVariable) Eq(value any) (clause.Clause, error) {
	vals, err := values.NumberList(value, numericValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewNumeric(v.table, v.name, vals, true, ""), nil
}

// Ne selects records whose value is none of the given numbers.
func (v *NumericVariable) Ne(value any) (clause.Clause, error) {
	vals, err := values.NumberList(value, numericValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewNumeric(v.table, v.name, vals, false, ""), nil
}

// Lt selects records strictly below the given number.
func (v *NumericVariable) Lt(value any) (clause.Clause, error) {
	return v.inequality("<", value)
}

// Le selects records at or below the given number.
func (v *NumericVariable) Le(value any) (clause.Clause, error) {
	return v.inequality("<=", value)
}

// Gt selects records strictly above the given number.
func (v *NumericVariable) Gt(value any) (clause.Clause, error) {
	return v.inequality(">", value)
}

// Ge selects records at or above the given number.
func (v *NumericVariable) Ge(value any) (clause.Clause, error) {
	return v.inequality(">=", value)
}

// inequality builds a numeric criteria whose single wire value carries the
// comparison operator prefix the server expects ("<100", ">=2000", ...).
func (v *NumericVariable) inequality(op string, value any) (clause.Clause, error) {
	val, err := values.Number(value, numericValuesMsg, numericSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewNumeric(v.table, v.name, []string{op + val}, true, ""), nil
}
