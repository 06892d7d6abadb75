// Package grid builds and materializes data grids: row-level exports of
// selected variables, capped at a maximum row count.
package grid

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/fathom/internal/frame"
	"github.com/roach88/fathom/internal/selection"
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/vars"
	"github.com/roach88/fathom/internal/wire"
)

// defaultMaxRows caps grids whose callers do not ask for a limit.
const defaultMaxRows = 1000

// Exporter submits exports for synchronous execution. Implemented by
// *api.Client.
type Exporter interface {
	PerformExportSynchronously(ctx context.Context, req wire.ExportRequest) (wire.ExportResponse, error)
}

// DataGrid holds the materialized rows of an export.
type DataGrid struct {
	columns      []vars.Variable
	resolveTable *tabletree.Table
	maxRows      int64

	// rows holds raw description strings, one slice per row, aligned with
	// columns.
	rows [][]string
}

// Option configures grid creation.
type Option func(*config)

type config struct {
	sel        *selection.Selection
	resolve    *tabletree.Table
	maxRows    any
	maxRowsSet bool
}

// WithSelection restricts the grid to records matching a selection. The
// resolve table is derived from it when not set explicitly.
func WithSelection(sel *selection.Selection) Option {
	return func(c *config) { c.sel = sel }
}

// WithResolveTable sets the table whose records the grid exports.
func WithResolveTable(t *tabletree.Table) Option {
	return func(c *config) { c.resolve = t }
}

// WithMaxRows caps the number of exported rows. Accepts integers, floats
// (floored) and numeric strings; the result must be positive.
func WithMaxRows(n any) Option {
	return func(c *config) { c.maxRows = n; c.maxRowsSet = true }
}

// New validates the grid inputs, performs the export and captures the raw
// rows.
func New(ctx context.Context, exp Exporter, columns []vars.Variable, opts ...Option) (*DataGrid, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if exp == nil {
		return nil, values.NewInputError("a session is required to build a data grid")
	}
	if len(columns) == 0 {
		return nil, values.NewInputError("a data grid must have at least one column")
	}

	resolve := cfg.resolve
	if resolve == nil && cfg.sel != nil {
		resolve = cfg.sel.Table()
	}
	if resolve == nil {
		return nil, values.NewInputError(
			"no resolve table given and no selection to derive one from")
	}

	maxRows := int64(defaultMaxRows)
	if cfg.maxRowsSet {
		n, err := coerceMaxRows(cfg.maxRows)
		if err != nil {
			return nil, err
		}
		maxRows = n
	}

	for _, v := range columns {
		switch v.Kind() {
		case vars.KindArray, vars.KindFlagArray:
			return nil, values.NewInputError(fmt.Sprintf(
				"%s variables are not currently supported as data grid columns,"+
					" but %q is one", v.Kind(), v.Name()))
		}
		if !v.Table().IsSame(resolve) && !v.Table().IsAncestorOf(resolve) {
			return nil, values.NewInputError(fmt.Sprintf(
				"data grid columns must be on the resolve table %q or one of its"+
					" ancestors, but %q is on table %q",
				resolve.Name(), v.Name(), v.Table().Name()))
		}
	}

	req := wire.ExportRequest{
		ResolveTableName: resolve.Name(),
		MaxRows:          maxRows,
		ReturnBrowseRows: true,
		Columns:          make([]wire.Column, len(columns)),
	}
	for i, v := range columns {
		req.Columns[i] = wire.Column{ID: v.Name(), VariableName: v.Name()}
	}
	if cfg.sel != nil {
		q := cfg.sel.WireQuery()
		req.BaseQuery = &q
	}

	resp, err := exp.PerformExportSynchronously(ctx, req)
	if err != nil {
		return nil, err
	}

	g := &DataGrid{columns: columns, resolveTable: resolve, maxRows: maxRows}
	for _, row := range resp.Rows {
		fields := strings.Split(row.Descriptions, "\t")
		if len(fields) != len(columns) {
			return nil, values.NewInputError(fmt.Sprintf(
				"export row has %d fields, expected %d", len(fields), len(columns)))
		}
		g.rows = append(g.rows, fields)
	}
	return g, nil
}

// coerceMaxRows accepts integers, floats and numeric strings. Floats are
// floored; the result must be positive.
func coerceMaxRows(v any) (int64, error) {
	reject := func() (int64, error) {
		return 0, values.NewInputError(fmt.Sprintf(
			"max_rows must be a positive number, got %v", v))
	}
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case float32:
		n = int64(math.Floor(float64(x)))
	case float64:
		n = int64(math.Floor(x))
	case string:
		if i, err := strconv.ParseInt(x, 10, 64); err == nil {
			n = i
			break
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return reject()
		}
		n = int64(math.Floor(f))
	default:
		return reject()
	}
	if n <= 0 {
		return reject()
	}
	return n, nil
}

// Columns returns the grid's column variables.
func (g *DataGrid) Columns() []vars.Variable { return g.columns }

// Table returns the resolve table.
func (g *DataGrid) Table() *tabletree.Table { return g.resolveTable }

// MaxRows returns the effective row cap.
func (g *DataGrid) MaxRows() int64 { return g.maxRows }

// NumRows returns the number of exported rows.
func (g *DataGrid) NumRows() int { return len(g.rows) }

// ToFrame materializes the grid into a frame with a positional row index
// and one typed column per variable.
func (g *DataGrid) ToFrame() (*frame.Frame, error) {
	labels := make([]string, len(g.rows))
	for i := range g.rows {
		labels[i] = strconv.Itoa(i)
	}
	levels := []frame.Level{{Name: "Row", Labels: labels}}

	cols := make([]frame.Column, len(g.columns))
	for j, v := range g.columns {
		raw := make([]string, len(g.rows))
		for i, row := range g.rows {
			raw[i] = row[j]
		}
		cols[j] = frame.Column{Name: v.Description(), Values: convertColumn(v, raw)}
	}
	return frame.New(levels, cols)
}

// convertColumn types a column's raw description strings by variable kind:
// references and numerics become numbers, dates and datetimes become typed
// values, everything else stays text.
func convertColumn(v vars.Variable, raw []string) []any {
	switch v.Kind() {
	case vars.KindReference, vars.KindNumeric:
		return frame.CoerceNumeric(raw)
	case vars.KindDate:
		return parseTimes(raw, "2006-01-02")
	case vars.KindDateTime:
		return parseTimes(raw, "2006-01-02 15:04:05", "2006-01-02T15:04:05")
	default:
		out := make([]any, len(raw))
		for i, s := range raw {
			out[i] = s
		}
		return out
	}
}

func parseTimes(raw []string, layouts ...string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				out[i] = t
				break
			}
		}
	}
	return out
}
