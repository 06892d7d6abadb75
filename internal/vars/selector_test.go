package vars

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/wire"
)

type fakeCodeFetcher struct {
	codes []wire.RawCode
	err   error
}

func (f *fakeCodeFetcher) FetchCodes(ctx context.Context, variableName string) ([]wire.RawCode, error) {
	return f.codes, f.err
}

func destinationCodes() *fakeCodeFetcher {
	return &fakeCodeFetcher{codes: []wire.RawCode{
		{Code: "26", Description: "France"},
		{Code: "28", Description: "Germany"},
		{Code: "29", Description: "Sweden"},
		{Code: "38", Description: "United States"},
	}}
}

func TestSelectorEq(t *testing.T) {
	tree := makeTestTree(t)
	v := classifyVar(t, tree, rawSelector("Destination", "Bookings", "Categorical", "SingleValue"))
	sel := v.(*SelectorVariable)

	c, err := sel.Eq([]string{"29", "38"})
	require.NoError(t, err)
	crit, ok := c.(*clause.Selector)
	require.True(t, ok)
	assert.Equal(t, []string{"29", "38"}, crit.Values())
	assert.Equal(t, "Bookings", crit.Table().Name())

	_, err = sel.Eq(29)
	require.Error(t, err)
	assert.True(t, values.IsInputError(err))
}

func TestSelectorValidateValues_AllCodes(t *testing.T) {
	tree := makeTestTree(t)
	sel := classifyVar(t, tree,
		rawSelector("Destination", "Bookings", "Categorical", "SingleValue")).(*SelectorVariable)

	err := sel.ValidateValues(context.Background(), destinationCodes(), []string{"29", "38"})
	assert.NoError(t, err)
}

func TestSelectorValidateValues_AllDescriptions(t *testing.T) {
	tree := makeTestTree(t)
	sel := classifyVar(t, tree,
		rawSelector("Destination", "Bookings", "Categorical", "SingleValue")).(*SelectorVariable)

	err := sel.ValidateValues(context.Background(), destinationCodes(), []string{"Sweden", "France"})
	assert.NoError(t, err)
}

func TestSelectorValidateValues_Unknown(t *testing.T) {
	tree := makeTestTree(t)
	sel := classifyVar(t, tree,
		rawSelector("Destination", "Bookings", "Categorical", "SingleValue")).(*SelectorVariable)

	err := sel.ValidateValues(context.Background(), destinationCodes(), []string{"29", "Atlantis"})
	require.Error(t, err)
	require.True(t, IsInvalidValuesError(err))

	var ive *InvalidValuesError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "unknown", ive.Category)
	assert.Equal(t, []string{"Atlantis"}, ive.Invalid)
}

func TestSelectorValidateValues_MixedReportsMinority(t *testing.T) {
	tree := makeTestTree(t)
	sel := classifyVar(t, tree,
		rawSelector("Destination", "Bookings", "Categorical", "SingleValue")).(*SelectorVariable)

	err := sel.ValidateValues(context.Background(), destinationCodes(),
		[]string{"26", "28", "Sweden"})
	require.Error(t, err)

	var ive *InvalidValuesError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "description", ive.Category)
	assert.Equal(t, []string{"Sweden"}, ive.Invalid)
}

func TestInvalidValuesError_SampleIsBounded(t *testing.T) {
	err := &InvalidValuesError{
		VariableName: "Destination",
		Category:     "unknown",
		Invalid:      []string{"a", "b", "c", "d", "e"},
	}
	msg := err.Error()
	assert.Contains(t, msg, "'a', 'b', 'c'")
	assert.Contains(t, msg, "(and 2 more)")
	assert.NotContains(t, msg, "'d'")
}

func TestSelectorValidateValues_FetcherErrorPropagates(t *testing.T) {
	tree := makeTestTree(t)
	sel := classifyVar(t, tree,
		rawSelector("Destination", "Bookings", "Categorical", "SingleValue")).(*SelectorVariable)

	fetcher := &fakeCodeFetcher{err: assert.AnError}
	err := sel.ValidateValues(context.Background(), fetcher, []string{"29"})
	assert.ErrorIs(t, err, assert.AnError)
}
