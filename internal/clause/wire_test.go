package clause

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func assertWireGolden(t *testing.T, name string, c Clause) {
	t.Helper()
	data, err := json.MarshalIndent(c.WireClause(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestWireClause_SelectorList(t *testing.T) {
	tree := makeTestTree(t)
	c := makeSelector(t, tree, "Bookings", "Destination", "29", "38")
	assertWireGolden(t, "selector_list", c)
}

func TestWireClause_DateRange(t *testing.T) {
	tree := makeTestTree(t)
	c := NewDateRange(table(t, tree, "Bookings"), "TravelDate",
		Earliest, "2019-07-16", true, "")
	assertWireGolden(t, "date_range", c)
}

func TestWireClause_AndWithTableChange(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")
	gender := makeSelector(t, tree, "Customers", "Gender", "F")

	combined, err := And(dest, gender)
	require.NoError(t, err)
	assertWireGolden(t, "and_with_table_change", combined)
}
