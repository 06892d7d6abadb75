package cli

import (
	"github.com/roach88/fathom/internal/frame"
)

// frameJSON renders a frame as a JSON-friendly structure: index levels and
// columns side by side, row-aligned.
func frameJSON(f *frame.Frame) map[string]any {
	levels := make([]map[string]any, 0, len(f.Levels()))
	for _, l := range f.Levels() {
		levels = append(levels, map[string]any{
			"name":   l.Name,
			"labels": l.Labels,
		})
	}
	cols := make([]map[string]any, 0, f.NumColumns())
	for _, c := range f.Columns() {
		cols = append(cols, map[string]any{
			"name":   c.Name,
			"values": c.Values,
		})
	}
	return map[string]any{
		"rows":    f.NumRows(),
		"index":   levels,
		"columns": cols,
	}
}
