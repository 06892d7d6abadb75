package cube

import (
	"fmt"
	"strconv"

	"github.com/roach88/fathom/internal/frame"
)

// totalHeader is the rewritten grand-total sentinel.
const totalHeader = "TOTAL"

// unclassifiedLabel labels records falling outside a date banding.
const unclassifiedLabel = "Unclassified"

// ToFrame materializes the cube into a labeled frame with one index level
// per dimension, in the user's dimension order, and one numeric-coerced
// column per measure.
//
// Rows whose index touches the TOTAL header are excluded unless totals is
// true; rows touching a banding's unclassified sentinel are excluded
// unless unclassified is true.
func (c *Cube) ToFrame(totals, unclassified bool) (*frame.Frame, error) {
	chosen := make([][]string, len(c.dimensions))
	skip := make([][]bool, len(c.dimensions))
	for i, d := range c.dimensions {
		labels, omit, err := c.chosenHeaders(i, d, totals, unclassified)
		if err != nil {
			return nil, err
		}
		chosen[i] = labels
		skip[i] = omit
	}

	// Cells live in server order, the reverse of the user's. The user-order
	// counter tuple indexes the array back to front.
	serverIdx := make([]int, len(c.dimensions))
	toServer := func(counters []int) []int {
		for i, n := range counters {
			serverIdx[len(counters)-1-i] = n
		}
		return serverIdx
	}

	levels := make([]frame.Level, len(c.dimensions))
	for i, d := range c.dimensions {
		levels[i] = frame.Level{Name: d.Variable().Description()}
	}
	rawCols := make([][]string, len(c.measures))

	counters := make([]int, len(c.dimensions))
	for {
		keep := true
		for i, n := range counters {
			if skip[i][n] {
				keep = false
				break
			}
		}
		if keep {
			for i, n := range counters {
				levels[i].Labels = append(levels[i].Labels, chosen[i][n])
			}
			idx := toServer(counters)
			for j, m := range c.measures {
				rawCols[j] = append(rawCols[j], c.data[m.Name()].At(idx...))
			}
		}

		// Advance the counter tuple, last dimension fastest.
		i := len(counters) - 1
		for ; i >= 0; i-- {
			counters[i]++
			if counters[i] < len(chosen[i]) {
				break
			}
			counters[i] = 0
		}
		if i < 0 {
			break
		}
	}

	cols := make([]frame.Column, len(c.measures))
	for j, m := range c.measures {
		cols[j] = frame.Column{Name: m.Name(), Values: frame.CoerceNumeric(rawCols[j])}
	}
	return frame.New(levels, cols)
}

// chosenHeaders picks the display labels for the i-th dimension: selector
// descriptions, or banding-formatted codes for banded dates. The returned
// omit slice marks headers masked out of the frame.
func (c *Cube) chosenHeaders(i int, d Dimension, totals, unclassified bool) ([]string, []bool, error) {
	codes := c.headerCodes[i]
	descs := c.headerDescs[i]

	labels := make([]string, len(codes))
	omit := make([]bool, len(codes))
	sentinel := d.unclassifiedCode()
	for j, code := range codes {
		switch {
		case code == totalHeader || descs[j] == totalHeader:
			labels[j] = totalHeader
			omit[j] = !totals
		case d.IsBandedDate() && code == sentinel:
			labels[j] = unclassifiedLabel
			omit[j] = !unclassified
		case d.IsBandedDate():
			formatted, err := formatBandedCode(code, d.Banding())
			if err != nil {
				return nil, nil, err
			}
			labels[j] = formatted
		default:
			labels[j] = descs[j]
		}
	}
	return labels, omit, nil
}

// formatBandedCode renders a banded date code as a period label: "2019",
// "2019Q3", "2019-01" or "2019-01-02" depending on the banding.
func formatBandedCode(code string, b Banding) (string, error) {
	bad := func() (string, error) {
		return "", fmt.Errorf("malformed %s band code %q", b, code)
	}
	switch b {
	case Years:
		if len(code) != 4 {
			return bad()
		}
		return code, nil
	case Quarters:
		if len(code) != 6 {
			return bad()
		}
		q, err := strconv.Atoi(code[4:])
		if err != nil || q < 1 || q > 4 {
			return bad()
		}
		return fmt.Sprintf("%sQ%d", code[:4], q), nil
	case Months:
		if len(code) != 6 {
			return bad()
		}
		return code[:4] + "-" + code[4:], nil
	case Day:
		if len(code) != 8 {
			return bad()
		}
		return code[:4] + "-" + code[4:6] + "-" + code[6:], nil
	default:
		return bad()
	}
}
