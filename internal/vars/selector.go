package vars

import (
	"context"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/wire"
)

const selectorValuesMsg = "chosen value(s) for a selector variable" +
	" must be given as a string or a slice of strings"

// Eq selects records whose value is one of the given codes.
// Accepts a string or a slice of strings.
func (v *SelectorVariable) Eq(value any) (clause.Clause, error) {
	vals, err := values.StringList(value, selectorValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewSelector(v.table, v.name, vals, true, ""), nil
}

// Ne selects records whose value is none of the given codes.
func (v *SelectorVariable) Ne(value any) (clause.Clause, error) {
	vals, err := values.StringList(value, selectorValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewSelector(v.table, v.name, vals, false, ""), nil
}

// CodeFetcher fetches a selector variable's code list from the server.
// Implemented by the API client; injected so validation stays lazy and the
// variable layer never owns a network client.
type CodeFetcher interface {
	FetchCodes(ctx context.Context, variableName string) ([]wire.RawCode, error)
}

// ValidateValues checks the given values against the server's code list for
// this variable, fetched on demand. The values must be either all codes or
// all descriptions; a mix of the two, or members matching neither, fail
// with an *InvalidValuesError carrying a bounded sample of offenders.
func (v *SelectorVariable) ValidateValues(ctx context.Context, fetcher CodeFetcher, vals []string) error {
	codes, err := fetcher.FetchCodes(ctx, v.name)
	if err != nil {
		return err
	}

	codeSet := make(map[string]struct{}, len(codes))
	descSet := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		codeSet[c.Code] = struct{}{}
		descSet[c.Description] = struct{}{}
	}

	var unknown, asCode, asDesc []string
	for _, val := range vals {
		_, isCode := codeSet[val]
		_, isDesc := descSet[val]
		switch {
		case isCode:
			asCode = append(asCode, val)
		case isDesc:
			asDesc = append(asDesc, val)
		default:
			unknown = append(unknown, val)
		}
	}

	if len(unknown) > 0 {
		return &InvalidValuesError{
			VariableName: v.name,
			Category:     "unknown",
			Invalid:      unknown,
		}
	}
	if len(asCode) > 0 && len(asDesc) > 0 {
		// Mixed input: report the minority side as the offenders.
		category, invalid := "description", asDesc
		if len(asCode) < len(asDesc) {
			category, invalid = "code", asCode
		}
		return &InvalidValuesError{
			VariableName: v.name,
			Category:     category,
			Invalid:      invalid,
		}
	}
	return nil
}

// Eq selects records in any of the given combined categories.
func (v *CombinedCategoriesVariable) Eq(value any) (clause.Clause, error) {
	vals, err := values.StringList(value, selectorValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewCombinedCategories(v.table, v.name, vals, true, ""), nil
}

// Ne selects records in none of the given combined categories.
func (v *CombinedCategoriesVariable) Ne(value any) (clause.Clause, error) {
	vals, err := values.StringList(value, selectorValuesMsg)
	if err != nil {
		return nil, err
	}
	return clause.NewCombinedCategories(v.table, v.name, vals, false, ""), nil
}
