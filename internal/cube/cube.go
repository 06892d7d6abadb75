package cube

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/fathom/internal/api"
	"github.com/roach88/fathom/internal/selection"
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/vars"
	"github.com/roach88/fathom/internal/wire"
)

// Calculator submits cubes for synchronous calculation. Implemented by
// *api.Client.
type Calculator interface {
	CalculateCubeSynchronously(ctx context.Context, req wire.CubeRequest) (wire.CubeResponse, error)
}

// NDArray is a measure's cells reshaped to the product of the dimension
// cardinalities, stored flat in row-major order over Shape.
type NDArray struct {
	Shape []int
	Flat  []string
}

// At returns the cell at the given indices.
func (a *NDArray) At(indices ...int) string {
	idx := 0
	for i, n := range indices {
		idx = idx*a.Shape[i] + n
	}
	return a.Flat[idx]
}

// Cube is a calculated cross-tabulation.
type Cube struct {
	dimensions   []Dimension
	measures     []Measure
	resolveTable *tabletree.Table

	// headerCodes and headerDescs are per user-order dimension, with the
	// iTOTAL sentinel already rewritten to TOTAL.
	headerCodes [][]string
	headerDescs [][]string

	// data holds one reshaped array per measure, keyed by measure name.
	// Array shape follows the server's dimension order, which is the
	// reverse of the user's.
	data map[string]*NDArray
}

// Option configures cube creation.
type Option func(*config)

type config struct {
	sel     *selection.Selection
	resolve *tabletree.Table
}

// WithSelection bases the cube on a previously counted selection. The
// resolve table is derived from it when not set explicitly.
func WithSelection(sel *selection.Selection) Option {
	return func(c *config) { c.sel = sel }
}

// WithResolveTable sets the table in whose record space the cube counts.
func WithResolveTable(t *tabletree.Table) Option {
	return func(c *config) { c.resolve = t }
}

// New validates the cube inputs, submits the calculation and parses the
// response.
func New(ctx context.Context, calc Calculator, dimensions []Dimension, measures []Measure, opts ...Option) (*Cube, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if calc == nil {
		return nil, values.NewInputError("a session is required to calculate a cube")
	}
	if len(dimensions) == 0 {
		return nil, values.NewInputError("a cube must have at least one dimension")
	}

	resolve := cfg.resolve
	if resolve == nil && cfg.sel != nil {
		resolve = cfg.sel.Table()
	}
	if resolve == nil {
		return nil, values.NewInputError(
			"no resolve table given and no selection to derive one from")
	}

	if len(measures) == 0 {
		measures = []Measure{Count(resolve)}
	}

	if err := validate(dimensions, measures, resolve); err != nil {
		return nil, err
	}

	req := buildRequest(dimensions, measures, cfg.sel, resolve)
	resp, err := calc.CalculateCubeSynchronously(ctx, req)
	if err != nil {
		return nil, err
	}

	c := &Cube{
		dimensions:   dimensions,
		measures:     measures,
		resolveTable: resolve,
	}
	if err := c.parse(resp); err != nil {
		return nil, err
	}
	return c, nil
}

// validate applies the placement rules in order: dimension kinds, then
// dimension relatedness, then measure relatedness, then the cross-cube
// rule.
func validate(dimensions []Dimension, measures []Measure, resolve *tabletree.Table) error {
	for _, d := range dimensions {
		v := d.Variable()
		switch v.(type) {
		case *vars.SelectorVariable, *vars.DateVariable:
			// Plain selectors and banded dates only; combined-categories
			// and the other selector sub-types are rejected.
		default:
			return values.NewInputError(fmt.Sprintf(
				"cube dimensions must be plain selector or banded date variables,"+
					" but %q is a %s variable", v.Name(), v.Kind()))
		}
		if !v.Table().IsSameOrRelated(resolve) {
			return values.NewInputError(fmt.Sprintf(
				"dimension %q is on table %q which is unrelated to the resolve table %q",
				v.Name(), v.Table().Name(), resolve.Name()))
		}
	}

	for _, m := range measures {
		if !m.Table().IsSameOrRelated(resolve) {
			return values.NewInputError(fmt.Sprintf(
				"measure %q is on table %q which is unrelated to the resolve table %q",
				m.Name(), m.Table().Name(), resolve.Name()))
		}
	}

	if crossCube(dimensions) {
		// Two dimensions on unrelated tables: both must descend from the
		// resolve table, and measures may not live below it.
		for _, d := range dimensions {
			t := d.Variable().Table()
			if !t.IsSame(resolve) && !t.IsDescendantOf(resolve) {
				return values.NewInputError(fmt.Sprintf(
					"dimension %q is on table %q: in a cross cube every dimension"+
						" must descend from the resolve table %q",
					d.Variable().Name(), t.Name(), resolve.Name()))
			}
		}
		for _, m := range measures {
			t := m.Table()
			if !t.IsSame(resolve) && !t.IsAncestorOf(resolve) {
				return values.NewInputError(fmt.Sprintf(
					"measure %q is on table %q: in a cross cube every measure must"+
						" be on the resolve table %q or an ancestor of it",
					m.Name(), t.Name(), resolve.Name()))
			}
		}
		return nil
	}

	for _, m := range measures {
		for _, d := range dimensions {
			if !m.Table().IsSameOrRelated(d.Variable().Table()) {
				return values.NewInputError(fmt.Sprintf(
					"measure %q is on table %q which is unrelated to"+
						" dimension %q on table %q",
					m.Name(), m.Table().Name(),
					d.Variable().Name(), d.Variable().Table().Name()))
			}
		}
	}
	return nil
}

// crossCube reports whether any two dimensions live on unrelated tables.
func crossCube(dimensions []Dimension) bool {
	for i := 0; i < len(dimensions); i++ {
		for j := i + 1; j < len(dimensions); j++ {
			a := dimensions[i].Variable().Table()
			b := dimensions[j].Variable().Table()
			if !a.IsSameOrRelated(b) {
				return true
			}
		}
	}
	return false
}

// buildRequest folds the cube into the wire model. Dimensions are sent in
// reverse order, the server's convention.
func buildRequest(dimensions []Dimension, measures []Measure, sel *selection.Selection, resolve *tabletree.Table) wire.CubeRequest {
	wireDims := make([]wire.Dimension, 0, len(dimensions))
	for i := len(dimensions) - 1; i >= 0; i-- {
		wireDims = append(wireDims, dimensions[i].wireDimension())
	}
	wireMeasures := make([]wire.Measure, 0, len(measures))
	for _, m := range measures {
		wireMeasures = append(wireMeasures, m.WireMeasure())
	}

	req := wire.CubeRequest{
		ResolveTableName: resolve.Name(),
		Storage:          "Full",
		Dimensions:       wireDims,
		Measures:         wireMeasures,
	}
	if sel != nil {
		q := sel.WireQuery()
		req.BaseQuery = &q
	}
	return req
}

// parse splits the tab-delimited header and cell streams and reshapes each
// measure to the reversed dimension tuple.
func (c *Cube) parse(resp wire.CubeResponse) error {
	dimByID := make(map[string]wire.DimensionResult, len(resp.DimensionResults))
	for _, dr := range resp.DimensionResults {
		dimByID[dr.ID] = dr
	}

	c.headerCodes = make([][]string, len(c.dimensions))
	c.headerDescs = make([][]string, len(c.dimensions))
	for i, d := range c.dimensions {
		dr, ok := dimByID[d.Variable().Name()]
		if !ok {
			return &api.ResultsError{
				Endpoint: "cubes",
				Message: fmt.Sprintf("no dimension result returned for %q",
					d.Variable().Name()),
			}
		}
		c.headerCodes[i] = rewriteTotals(strings.Split(dr.HeaderCodes, "\t"))
		c.headerDescs[i] = rewriteTotals(strings.Split(dr.HeaderDescriptions, "\t"))
		if len(c.headerCodes[i]) != len(c.headerDescs[i]) {
			return &api.ResultsError{
				Endpoint: "cubes",
				Message: fmt.Sprintf(
					"dimension %q returned %d header codes but %d descriptions",
					d.Variable().Name(), len(c.headerCodes[i]), len(c.headerDescs[i])),
			}
		}
	}

	// Shape follows the server's dimension order: reversed user order.
	shape := make([]int, len(c.dimensions))
	size := 1
	for i := range c.dimensions {
		shape[i] = len(c.headerCodes[len(c.dimensions)-1-i])
		size *= shape[i]
	}

	c.data = make(map[string]*NDArray, len(c.measures))
	measureByID := make(map[string]wire.MeasureResult, len(resp.MeasureResults))
	for _, mr := range resp.MeasureResults {
		measureByID[mr.ID] = mr
	}
	for _, m := range c.measures {
		mr, ok := measureByID[m.Name()]
		if !ok {
			return &api.ResultsError{
				Endpoint: "cubes",
				Message:  fmt.Sprintf("no measure result returned for %q", m.Name()),
			}
		}
		var flat []string
		for _, row := range mr.Rows {
			flat = append(flat, strings.Split(row, "\t")...)
		}
		if len(flat) != size {
			return &api.ResultsError{
				Endpoint: "cubes",
				Message: fmt.Sprintf(
					"measure %q returned %d cells, expected %d", m.Name(), len(flat), size),
			}
		}
		c.data[m.Name()] = &NDArray{Shape: shape, Flat: flat}
	}
	return nil
}

// rewriteTotals replaces the server's iTOTAL sentinel with TOTAL.
func rewriteTotals(headers []string) []string {
	for i, h := range headers {
		if h == "iTOTAL" {
			headers[i] = "TOTAL"
		}
	}
	return headers
}

// Dimensions returns the cube's dimensions in user order.
func (c *Cube) Dimensions() []Dimension { return c.dimensions }

// Measures returns the cube's measures.
func (c *Cube) Measures() []Measure { return c.measures }

// Table returns the resolve table.
func (c *Cube) Table() *tabletree.Table { return c.resolveTable }

// Data returns the reshaped array for the named measure.
func (c *Cube) Data(measureName string) (*NDArray, bool) {
	a, ok := c.data[measureName]
	return a, ok
}

// HeaderCodes returns the header codes for the i-th user-order dimension.
func (c *Cube) HeaderCodes(i int) []string { return c.headerCodes[i] }

// HeaderDescs returns the header descriptions for the i-th user-order
// dimension.
func (c *Cube) HeaderDescs(i int) []string { return c.headerDescs[i] }
