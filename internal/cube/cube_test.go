package cube

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fathom/internal/api"
	"github.com/roach88/fathom/internal/selection"
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/vars"
	"github.com/roach88/fathom/internal/wire"
)

// fakeCalculator records the submitted request and replies with a canned
// response.
type fakeCalculator struct {
	lastRequest wire.CubeRequest
	response    wire.CubeResponse
	err         error
}

func (f *fakeCalculator) CalculateCubeSynchronously(ctx context.Context, req wire.CubeRequest) (wire.CubeResponse, error) {
	f.lastRequest = req
	return f.response, f.err
}

func makeTestTree(t *testing.T) *tabletree.Tree {
	t.Helper()
	raw := []wire.RawTable{
		{Name: "Households", PluralDisplayName: "Households", HasChildTables: true},
		{Name: "Customers", PluralDisplayName: "Customers", HasChildTables: true,
			ParentTable: "Households"},
		{Name: "Bookings", PluralDisplayName: "Bookings", ParentTable: "Customers"},
		{Name: "Purchases", PluralDisplayName: "Purchases", HasChildTables: true,
			ParentTable: "Customers"},
		{Name: "Items", PluralDisplayName: "Items", ParentTable: "Purchases"},
	}
	tree, err := tabletree.Build(raw, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return tree
}

func table(t *testing.T, tree *tabletree.Tree, name string) *tabletree.Table {
	t.Helper()
	tbl, ok := tree.Lookup(name)
	require.True(t, ok)
	return tbl
}

func classifyVar(t *testing.T, tree *tabletree.Tree, raw wire.RawVariable) vars.Variable {
	t.Helper()
	v, err := vars.Classify(raw, tree)
	require.NoError(t, err)
	return v
}

func selectorVar(t *testing.T, tree *tabletree.Tree, name, tableName string) vars.Variable {
	t.Helper()
	return classifyVar(t, tree, wire.RawVariable{
		Name: name, Description: name, Type: "Selector", TableName: tableName,
		SelectorInfo: &wire.SelectorInfo{SubType: "Categorical", SelectorType: "SingleValue"},
	})
}

func dateVar(t *testing.T, tree *tabletree.Tree, name, tableName string) vars.Variable {
	t.Helper()
	return classifyVar(t, tree, wire.RawVariable{
		Name: name, Description: name, Type: "Selector", TableName: tableName,
		SelectorInfo: &wire.SelectorInfo{SubType: "Date", SelectorType: "SingleValue"},
	})
}

func textVar(t *testing.T, tree *tabletree.Tree, name, tableName string) vars.Variable {
	t.Helper()
	return classifyVar(t, tree, wire.RawVariable{
		Name: name, Description: name, Type: "Text", TableName: tableName,
		TextInfo: &wire.TextInfo{MaximumTextLength: 40},
	})
}

// destinationResponse is a one-dimension response with a grand total column.
func destinationResponse(measureID string) wire.CubeResponse {
	return wire.CubeResponse{
		DimensionResults: []wire.DimensionResult{{
			ID:                 "Destination",
			HeaderCodes:        "26\t28\t29\t38\tiTOTAL",
			HeaderDescriptions: "France\tGermany\tSweden\tUnited States\tiTOTAL",
		}},
		MeasureResults: []wire.MeasureResult{{
			ID:   measureID,
			Rows: []string{"11000\t9000\t25207\t8060\t53267"},
		}},
	}
}

func TestNew_RequiresCalculator(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))

	_, err := New(context.Background(), nil, []Dimension{dim}, nil,
		WithResolveTable(table(t, tree, "Bookings")))
	require.Error(t, err)
	assert.True(t, values.IsInputError(err))
	assert.EqualError(t, err, "a session is required to calculate a cube")
}

func TestNew_RequiresDimensions(t *testing.T) {
	tree := makeTestTree(t)

	_, err := New(context.Background(), &fakeCalculator{}, nil, nil,
		WithResolveTable(table(t, tree, "Bookings")))
	require.Error(t, err)
	assert.EqualError(t, err, "a cube must have at least one dimension")
}

func TestNew_RequiresResolveTable(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))

	_, err := New(context.Background(), &fakeCalculator{}, []Dimension{dim}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resolve table")
}

func TestValidate_RejectsNonSelectorDimensions(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(textVar(t, tree, "Surname", "Customers"))

	_, err := New(context.Background(), &fakeCalculator{}, []Dimension{dim}, nil,
		WithResolveTable(table(t, tree, "Customers")))
	require.Error(t, err)
	assert.True(t, values.IsInputError(err))
	assert.Contains(t, err.Error(),
		`cube dimensions must be plain selector or banded date variables, but "Surname" is a Text variable`)
}

func TestValidate_RejectsDimensionUnrelatedToResolve(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))

	_, err := New(context.Background(), &fakeCalculator{}, []Dimension{dim}, nil,
		WithResolveTable(table(t, tree, "Items")))
	require.Error(t, err)
	assert.Contains(t, err.Error(),
		`dimension "Destination" is on table "Bookings" which is unrelated to the resolve table "Items"`)
}

func TestValidate_RejectsMeasureUnrelatedToDimension(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Store", "Purchases"))
	measure := Count(table(t, tree, "Bookings"))

	_, err := New(context.Background(), &fakeCalculator{}, []Dimension{dim},
		[]Measure{measure}, WithResolveTable(table(t, tree, "Customers")))
	require.Error(t, err)
	assert.Contains(t, err.Error(),
		`measure "Bookings" is on table "Bookings" which is unrelated to dimension "Store" on table "Purchases"`)
}

func TestValidate_CrossCubeAccepted(t *testing.T) {
	tree := makeTestTree(t)
	dims := []Dimension{
		Dim(selectorVar(t, tree, "Store", "Purchases")),
		Dim(selectorVar(t, tree, "Destination", "Bookings")),
	}
	calc := &fakeCalculator{response: wire.CubeResponse{
		DimensionResults: []wire.DimensionResult{
			{ID: "Store", HeaderCodes: "1\tiTOTAL", HeaderDescriptions: "Main\tiTOTAL"},
			{ID: "Destination", HeaderCodes: "29\tiTOTAL", HeaderDescriptions: "Sweden\tiTOTAL"},
		},
		MeasureResults: []wire.MeasureResult{{
			ID:   "Customers",
			Rows: []string{"10\t30", "40\t100"},
		}},
	}}

	c, err := New(context.Background(), calc, dims, nil,
		WithResolveTable(table(t, tree, "Customers")))
	require.NoError(t, err)
	assert.Equal(t, "Customers", c.Table().Name())
}

func TestValidate_CrossCubeRejectsMeasureBelowResolve(t *testing.T) {
	tree := makeTestTree(t)
	dims := []Dimension{
		Dim(selectorVar(t, tree, "Store", "Purchases")),
		Dim(selectorVar(t, tree, "Destination", "Bookings")),
	}
	measure := Count(table(t, tree, "Items"))

	_, err := New(context.Background(), &fakeCalculator{}, dims, []Measure{measure},
		WithResolveTable(table(t, tree, "Customers")))
	require.Error(t, err)
	assert.True(t, values.IsInputError(err))
	assert.EqualError(t, err,
		`measure "Items" is on table "Items": in a cross cube every measure must be on the resolve table "Customers" or an ancestor of it`)
}

func TestNew_RequestShape(t *testing.T) {
	tree := makeTestTree(t)
	dims := []Dimension{
		Dim(selectorVar(t, tree, "Product", "Bookings")),
		Dim(selectorVar(t, tree, "Destination", "Bookings")),
	}
	calc := &fakeCalculator{response: wire.CubeResponse{
		DimensionResults: []wire.DimensionResult{
			{ID: "Product", HeaderCodes: "0", HeaderDescriptions: "Flight"},
			{ID: "Destination", HeaderCodes: "29", HeaderDescriptions: "Sweden"},
		},
		MeasureResults: []wire.MeasureResult{{ID: "Bookings", Rows: []string{"7"}}},
	}}

	_, err := New(context.Background(), calc, dims, nil,
		WithResolveTable(table(t, tree, "Bookings")))
	require.NoError(t, err)

	req := calc.lastRequest
	assert.Equal(t, "Bookings", req.ResolveTableName)
	assert.Equal(t, "Full", req.Storage)
	assert.Nil(t, req.BaseQuery)

	// Dimensions travel in reverse user order.
	require.Len(t, req.Dimensions, 2)
	assert.Equal(t, "Destination", req.Dimensions[0].VariableName)
	assert.Equal(t, "Product", req.Dimensions[1].VariableName)

	// The default measure counts the resolve table.
	require.Len(t, req.Measures, 1)
	assert.Equal(t, "Bookings", req.Measures[0].ID)
	assert.Equal(t, "Count", req.Measures[0].Function)
}

func TestNew_WithSelectionCarriesBaseQuery(t *testing.T) {
	tree := makeTestTree(t)
	sel := countedSelection(t, tree)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))
	calc := &fakeCalculator{response: destinationResponse("Bookings")}

	c, err := New(context.Background(), calc, []Dimension{dim}, nil,
		WithSelection(sel))
	require.NoError(t, err)

	// The resolve table is derived from the selection.
	assert.Equal(t, "Bookings", c.Table().Name())
	req := calc.lastRequest
	require.NotNil(t, req.BaseQuery)
	assert.Equal(t, "Bookings", req.BaseQuery.Selection.TableName)
}

func TestParse_RewritesTotalsAndReshapes(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))
	calc := &fakeCalculator{response: destinationResponse("Bookings")}

	c, err := New(context.Background(), calc, []Dimension{dim}, nil,
		WithResolveTable(table(t, tree, "Bookings")))
	require.NoError(t, err)

	assert.Equal(t, []string{"26", "28", "29", "38", "TOTAL"}, c.HeaderCodes(0))
	assert.Equal(t, []string{"France", "Germany", "Sweden", "United States", "TOTAL"},
		c.HeaderDescs(0))

	data, ok := c.Data("Bookings")
	require.True(t, ok)
	assert.Equal(t, []int{5}, data.Shape)
	assert.Equal(t, "25207", data.At(2))
	assert.Equal(t, "53267", data.At(4))
}

func TestParse_MissingDimensionResult(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))
	resp := destinationResponse("Bookings")
	resp.DimensionResults[0].ID = "SomethingElse"
	calc := &fakeCalculator{response: resp}

	_, err := New(context.Background(), calc, []Dimension{dim}, nil,
		WithResolveTable(table(t, tree, "Bookings")))
	require.Error(t, err)
	assert.True(t, api.IsResultsError(err))
	assert.Contains(t, err.Error(), `no dimension result returned for "Destination"`)
}

func TestParse_CellCountMismatch(t *testing.T) {
	tree := makeTestTree(t)
	dim := Dim(selectorVar(t, tree, "Destination", "Bookings"))
	resp := destinationResponse("Bookings")
	resp.MeasureResults[0].Rows = []string{"1\t2"}
	calc := &fakeCalculator{response: resp}

	_, err := New(context.Background(), calc, []Dimension{dim}, nil,
		WithResolveTable(table(t, tree, "Bookings")))
	require.Error(t, err)
	assert.True(t, api.IsResultsError(err))
	assert.Contains(t, err.Error(), "returned 2 cells, expected 5")
}

func TestNDArray_At(t *testing.T) {
	a := &NDArray{Shape: []int{2, 3}, Flat: []string{"a", "b", "c", "d", "e", "f"}}
	assert.Equal(t, "a", a.At(0, 0))
	assert.Equal(t, "c", a.At(0, 2))
	assert.Equal(t, "d", a.At(1, 0))
	assert.Equal(t, "f", a.At(1, 2))
}

func TestMeasureNames(t *testing.T) {
	tree := makeTestTree(t)
	cost := classifyVar(t, tree, wire.RawVariable{
		Name: "boCost", Description: "Cost", Type: "Numeric", TableName: "Bookings",
		NumericInfo: &wire.NumericInfo{}}).(*vars.NumericVariable)

	assert.Equal(t, "Customers", Count(table(t, tree, "Customers")).Name())
	assert.Equal(t, "Sum(Cost)", Sum(cost).Name())
	assert.Equal(t, "Mean(Cost)", Mean(cost).Name())

	w := Sum(cost).WireMeasure()
	assert.Equal(t, "Sum", w.Function)
	assert.Equal(t, "boCost", w.VariableName)
	assert.Equal(t, "Bookings", w.ResolveTableName)
}

// countedSelection builds a Destination selection against a stub counter.
func countedSelection(t *testing.T, tree *tabletree.Tree) *selection.Selection {
	t.Helper()
	v := selectorVar(t, tree, "Destination", "Bookings").(*vars.SelectorVariable)
	rule, err := v.Eq("29")
	require.NoError(t, err)

	sel, err := selection.New(context.Background(), stubCounter{}, rule)
	require.NoError(t, err)
	return sel
}

type stubCounter struct{}

func (stubCounter) CountQuery(ctx context.Context, q wire.Query) (wire.CountsResponse, error) {
	return wire.CountsResponse{Counts: []wire.Count{
		{TableName: "Bookings", CountValue: 25207},
	}}, nil
}
