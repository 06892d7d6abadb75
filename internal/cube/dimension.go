package cube

import (
	"strings"

	"github.com/roach88/fathom/internal/vars"
	"github.com/roach88/fathom/internal/wire"
)

// Banding buckets a date dimension.
type Banding string

const (
	Years    Banding = "Years"
	Quarters Banding = "Quarters"
	Months   Banding = "Months"
	Day      Banding = "Day"
)

// Dimension is one axis of a cube: a plain selector variable, or a date
// variable bucketed by a banding.
type Dimension struct {
	variable vars.Variable
	banding  Banding
}

// Dim creates a dimension over a variable. Date variables default to
// monthly banding; use BandedDim to choose another.
func Dim(v vars.Variable) Dimension {
	if v.Kind() == vars.KindDate {
		return Dimension{variable: v, banding: Months}
	}
	return Dimension{variable: v}
}

// BandedDim creates a date dimension with an explicit banding.
func BandedDim(v vars.Variable, b Banding) Dimension {
	return Dimension{variable: v, banding: b}
}

// Variable returns the dimension's variable.
func (d Dimension) Variable() vars.Variable { return d.variable }

// Banding returns the banding, empty for selector dimensions.
func (d Dimension) Banding() Banding { return d.banding }

// IsBandedDate reports whether the dimension is a banded date.
func (d Dimension) IsBandedDate() bool { return d.banding != "" }

func (d Dimension) wireDimension() wire.Dimension {
	if d.IsBandedDate() {
		return wire.Dimension{
			ID:           d.variable.Name(),
			Type:         "DateBand",
			VariableName: d.variable.Name(),
			Banding:      string(d.banding),
		}
	}
	return wire.Dimension{
		ID:           d.variable.Name(),
		Type:         "Selector",
		VariableName: d.variable.Name(),
	}
}

// unclassifiedCode is the all-zeros sentinel the server emits for records
// outside the banding, fixed-width per banding.
func (d Dimension) unclassifiedCode() string {
	switch d.banding {
	case Years:
		return strings.Repeat("0", 4)
	case Quarters, Months:
		return strings.Repeat("0", 6)
	case Day:
		return strings.Repeat("0", 8)
	default:
		return ""
	}
}
