package vars

import (
	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/values"
)

const (
	dateValuesMsg = "chosen value(s) for a date variable" +
		" must be given as a time.Time or a slice of time.Time"
	dateSingleMsg = "must specify a single date" +
		" when using inequality operators"
	datetimeValuesMsg = "chosen value for a datetime variable" +
		" must be given as a time.Time"
	datetimeSingleMsg = "must specify a single datetime" +
		" when using inequality operators"
)

// Eq selects records dated on any of the given days.
// Accepts a time.Time or a slice of time.Time.
func (v *DateVariable) Eq(value any) (clause.Clause, error) {
	vals, err := values.DateList(value, values.BasicFormat, dateValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateList(v.table, v.name, vals, true, ""), nil
}

// Ne selects records dated on none of the given days.
func (v *DateVariable) Ne(value any) (clause.Clause, error) {
	vals, err := values.DateList(value, values.BasicFormat, dateValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateList(v.table, v.name, vals, false, ""), nil
}

// Le selects records dated on or before the given day. The lower bound is
// left open with the Earliest sentinel.
func (v *DateVariable) Le(value any) (clause.Clause, error) {
	val, err := values.Date(value, values.RangeFormat, dateValuesMsg, dateSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateRange(v.table, v.name, clause.Earliest, val, true, ""), nil
}

// Ge selects records dated on or after the given day. The upper bound is
// left open with the Latest sentinel.
func (v *DateVariable) Ge(value any) (clause.Clause, error) {
	val, err := values.Date(value, values.RangeFormat, dateValuesMsg, dateSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateRange(v.table, v.name, val, clause.Latest, true, ""), nil
}

// Between selects records dated within the inclusive range.
func (v *DateVariable) Between(start, end any) (clause.Clause, error) {
	lo, err := values.Date(start, values.RangeFormat, dateValuesMsg, dateSingleMsg)
	if err != nil {
		return nil, err
	}
	hi, err := values.Date(end, values.RangeFormat, dateValuesMsg, dateSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateRange(v.table, v.name, lo, hi, true, ""), nil
}

// Le selects records timestamped at or before the given instant. There is
// no equality operator on datetimes: only range bounds are supported.
func (v *DateTimeVariable) Le(value any) (clause.Clause, error) {
	val, err := values.DateTime(value, datetimeValuesMsg, datetimeSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateTimeRange(v.table, v.name, clause.Earliest, val, true, ""), nil
}

// Ge selects records timestamped at or after the given instant.
func (v *DateTimeVariable) Ge(value any) (clause.Clause, error) {
	val, err := values.DateTime(value, datetimeValuesMsg, datetimeSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateTimeRange(v.table, v.name, val, clause.Latest, true, ""), nil
}

// Between selects records timestamped within the inclusive range.
func (v *DateTimeVariable) Between(start, end any) (clause.Clause, error) {
	lo, err := values.DateTime(start, datetimeValuesMsg, datetimeSingleMsg)
	if err != nil {
		return nil, err
	}
	hi, err := values.DateTime(end, datetimeValuesMsg, datetimeSingleMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewDateTimeRange(v.table, v.name, lo, hi, true, ""), nil
}

// Eq is declared for parity with the other kinds but reference variables
// have no selection semantics.
func (v *ReferenceVariable) Eq(value any) (clause.Clause, error) {
	return nil, clause.NewUnsupportedError(
		"selection operations are not supported for reference variable %q", v.name)
}

// Ne is declared for parity with the other kinds but reference variables
// have no selection semantics.
func (v *ReferenceVariable) Ne(value any) (clause.Clause, error) {
	return nil, clause.NewUnsupportedError(
		"selection operations are not supported for reference variable %q", v.name)
}
