package vars

import (
	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/values"
)

const (
	arrayValuesMsg = "chosen value(s) for an array variable" +
		" must be given as a string or a slice of strings"
	flagArrayValuesMsg = "chosen value(s) for a flag array variable" +
		" must be given as a string or a slice of strings"
)

// Eq selects records holding any of the given values (OR logic).
// Accepts a string or a slice of strings.
func (v *ArrayVariable) Eq(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayOr, true)
}

// Ne selects records holding none of the given values.
func (v *ArrayVariable) Ne(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayOr, false)
}

// AnyOf selects records holding at least one of the given values.
func (v *ArrayVariable) AnyOf(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayOr, true)
}

// AllOf selects records holding every one of the given values.
func (v *ArrayVariable) AllOf(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayAnd, true)
}

func (v *ArrayVariable) build(value any, logic clause.ArrayLogic, include bool) (clause.Clause, error) {
	vals, err := values.StringList(value, arrayValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewArray(v.table, v.name, vals, logic, include, ""), nil
}

// Eq selects records with any of the given flags set (OR logic).
// Accepts a string or a slice of strings.
func (v *FlagArrayVariable) Eq(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayOr, true)
}

// Ne selects records with none of the given flags set.
func (v *FlagArrayVariable) Ne(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayOr, false)
}

// AnyOf selects records with at least one of the given flags set.
func (v *FlagArrayVariable) AnyOf(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayOr, true)
}

// AllOf selects records with every one of the given flags set.
func (v *FlagArrayVariable) AllOf(value any) (clause.Clause, error) {
	return v.build(value, clause.ArrayAnd, true)
}

func (v *FlagArrayVariable) build(value any, logic clause.ArrayLogic, include bool) (clause.Clause, error) {
	vals, err := values.StringList(value, flagArrayValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewFlagArray(v.table, v.name, vals, logic, include, ""), nil
}
