package apitest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fathom/internal/wire"
)

func TestHolidaysFixture(t *testing.T) {
	fix := Holidays()

	assert.Equal(t, "holidays", fix.DataView)
	assert.Equal(t, "Holidays", fix.System.Name)
	assert.Len(t, fix.Tables, 5)
	assert.NotEmpty(t, fix.Variables)
	assert.NotEmpty(t, fix.Counts)

	// Every canned count references a table defined in the fixture.
	tables := map[string]bool{}
	for _, tbl := range fix.Tables {
		tables[tbl.Name] = true
	}
	for _, c := range fix.Counts {
		assert.True(t, tables[c.TableName], "count fixture table %q", c.TableName)
	}
}

func TestParseFixture_RequiresIdentity(t *testing.T) {
	_, err := ParseFixture([]byte("system:\n  name: X\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data_view")

	_, err = ParseFixture([]byte("::not yaml"))
	require.Error(t, err)
}

func TestRawVariables_TranslatesKinds(t *testing.T) {
	fix := Holidays()
	byName := map[string]wire.RawVariable{}
	for _, rv := range fix.rawVariables() {
		byName[rv.Name] = rv
	}

	surname := byName["Surname"]
	assert.Equal(t, "Text", surname.Type)
	require.NotNil(t, surname.TextInfo)

	dest := byName["Destination"]
	assert.Equal(t, "Selector", dest.Type)
	require.NotNil(t, dest.SelectorInfo)
	assert.Equal(t, "SingleValue", dest.SelectorInfo.SelectorType)
	assert.Equal(t, len(fix.Codes["Destination"]), dest.SelectorInfo.NumberOfCodes)

	travel := byName["TravelDate"]
	require.NotNil(t, travel.SelectorInfo)
	assert.Equal(t, "Date", travel.SelectorInfo.SubType)

	interests := byName["Interests"]
	require.NotNil(t, interests.SelectorInfo)
	assert.Equal(t, "OrArray", interests.SelectorInfo.SelectorType)
}

func selectionQuery(tableName string, variables ...string) wire.Query {
	operands := make([]wire.Clause, len(variables))
	for i, v := range variables {
		operands[i] = wire.Clause{Criteria: &wire.Criteria{
			VariableName: v,
			TableName:    tableName,
		}}
	}
	clause := operands[0]
	if len(operands) > 1 {
		clause = wire.Clause{Logic: &wire.Logic{
			Operation: "AND",
			Operands:  operands,
			TableName: tableName,
		}}
	}
	return wire.Query{Selection: wire.Selection{
		TableName: tableName,
		Rule:      &wire.Rule{Clause: clause},
	}}
}

func TestMatchCount(t *testing.T) {
	fix := Holidays()

	match, ok := fix.matchCount(selectionQuery("Bookings", "Destination"))
	require.True(t, ok)
	require.NotEmpty(t, match.Counts)
	assert.Equal(t, "Bookings", match.Counts[0].TableName)
	assert.Equal(t, int64(25207), match.Counts[0].Count)

	// Variable order inside the rule tree does not matter.
	_, ok = fix.matchCount(selectionQuery("Bookings", "Product", "Destination"))
	assert.True(t, ok)

	// Wrong resolve table misses.
	_, ok = fix.matchCount(selectionQuery("Customers", "Destination"))
	assert.False(t, ok)

	_, ok = fix.matchCount(selectionQuery("Bookings", "NoSuchVariable"))
	assert.False(t, ok)
}

func TestMatchCube(t *testing.T) {
	fix := Holidays()

	req := wire.CubeRequest{Dimensions: []wire.Dimension{
		{VariableName: "Destination"},
	}}
	match, ok := fix.matchCube(req)
	require.True(t, ok)
	assert.Equal(t, []string{"Destination"}, match.Dimensions)

	req.Dimensions = append(req.Dimensions, wire.Dimension{VariableName: "Product"})
	_, ok = fix.matchCube(req)
	assert.False(t, ok)
}

func TestMatchExport(t *testing.T) {
	fix := Holidays()

	req := wire.ExportRequest{Columns: []wire.Column{
		{VariableName: "Surname"},
		{VariableName: "Destination"},
		{VariableName: "Cost"},
	}}
	match, ok := fix.matchExport(req)
	require.True(t, ok)
	assert.NotEmpty(t, match.Rows)

	// Column order is part of the key.
	req.Columns[0], req.Columns[1] = req.Columns[1], req.Columns[0]
	_, ok = fix.matchExport(req)
	assert.False(t, ok)
}
