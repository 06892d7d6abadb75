// Package frame provides the labeled table that cube and data grid
// results materialize into.
//
// A Frame has one or more index levels (row labels) and a set of data
// columns, all row-aligned. It is a deliberately small structure: enough
// to label, filter and render results, not a general dataframe library.
package frame

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Level is one level of the row index.
type Level struct {
	Name   string
	Labels []string
}

// Column is one data column. Values hold int64, float64, string or nil
// for missing.
type Column struct {
	Name   string
	Values []any
}

// Frame is a labeled table.
type Frame struct {
	levels []Level
	cols   []Column
	rows   int
}

// New creates a frame, validating that every level and column has the
// same number of rows.
func New(levels []Level, cols []Column) (*Frame, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("frame requires at least one index level")
	}
	rows := len(levels[0].Labels)
	for _, l := range levels[1:] {
		if len(l.Labels) != rows {
			return nil, fmt.Errorf("index level %q has %d rows, expected %d",
				l.Name, len(l.Labels), rows)
		}
	}
	for _, c := range cols {
		if len(c.Values) != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d",
				c.Name, len(c.Values), rows)
		}
	}
	return &Frame{levels: levels, cols: cols, rows: rows}, nil
}

// NumRows returns the row count.
func (f *Frame) NumRows() int { return f.rows }

// NumColumns returns the data column count.
func (f *Frame) NumColumns() int { return len(f.cols) }

// Levels returns the index levels.
func (f *Frame) Levels() []Level { return f.levels }

// Columns returns the data columns.
func (f *Frame) Columns() []Column { return f.cols }

// Column returns the named data column.
func (f *Frame) Column(name string) (Column, bool) {
	for _, c := range f.cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// String renders the frame as an aligned text table.
func (f *Frame) String() string {
	headers := make([]string, 0, len(f.levels)+len(f.cols))
	for _, l := range f.levels {
		headers = append(headers, l.Name)
	}
	for _, c := range f.cols {
		headers = append(headers, c.Name)
	}

	cells := make([][]string, f.rows)
	for i := 0; i < f.rows; i++ {
		row := make([]string, 0, len(headers))
		for _, l := range f.levels {
			row = append(row, l.Labels[i])
		}
		for _, c := range f.cols {
			row = append(row, formatValue(c.Values[i]))
		}
		cells[i] = row
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
		b.WriteString("\n")
	}
	writeRow(headers)
	for _, row := range cells {
		writeRow(row)
	}
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}

// CoerceNumeric converts raw cell strings to int64 where possible, then
// float64; unparsable cells become nil (missing).
func CoerceNumeric(raw []string) []any {
	out := make([]any, len(raw))
	for i, s := range raw {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			out[i] = n
			continue
		}
		if x, err := strconv.ParseFloat(s, 64); err == nil {
			out[i] = x
			continue
		}
		out[i] = nil
	}
	return out
}
