package cube

import (
	"fmt"

	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/vars"
	"github.com/roach88/fathom/internal/wire"
)

// Measure is one statistic computed per cube cell.
//
// Implementations resolve against their own table; validation relates that
// table to the cube's resolve table.
type Measure interface {
	// Name labels the measure's result column.
	Name() string

	// Table returns the table the measure resolves against.
	Table() *tabletree.Table

	// WireMeasure folds the measure into the request model.
	WireMeasure() wire.Measure
}

// countMeasure counts records of a table. It is the default measure when
// none are supplied.
type countMeasure struct {
	table *tabletree.Table
}

// Count creates a measure counting the records of the given table.
func Count(table *tabletree.Table) Measure {
	return &countMeasure{table: table}
}

func (m *countMeasure) Name() string            { return m.table.PluralDisplayName() }
func (m *countMeasure) Table() *tabletree.Table { return m.table }

func (m *countMeasure) WireMeasure() wire.Measure {
	return wire.Measure{
		ID:               m.Name(),
		ResolveTableName: m.table.Name(),
		Function:         "Count",
	}
}

// statistic aggregates a variable's values per cell.
type statistic struct {
	function string
	variable vars.Variable
}

// Sum totals a numeric variable per cell.
func Sum(v *vars.NumericVariable) Measure { return &statistic{function: "Sum", variable: v} }

// Mean averages a numeric variable per cell.
func Mean(v *vars.NumericVariable) Measure { return &statistic{function: "Mean", variable: v} }

// Max takes the largest value of a numeric variable per cell.
func Max(v *vars.NumericVariable) Measure { return &statistic{function: "Max", variable: v} }

// Min takes the smallest value of a numeric variable per cell.
func Min(v *vars.NumericVariable) Measure { return &statistic{function: "Min", variable: v} }

// Variance computes the variance of a numeric variable per cell.
func Variance(v *vars.NumericVariable) Measure {
	return &statistic{function: "Variance", variable: v}
}

// StdDev computes the standard deviation of a numeric variable per cell.
func StdDev(v *vars.NumericVariable) Measure {
	return &statistic{function: "StdDev", variable: v}
}

// CountDistinct counts the distinct values of a variable per cell.
func CountDistinct(v vars.Variable) Measure {
	return &statistic{function: "CountDistinct", variable: v}
}

func (m *statistic) Name() string {
	return fmt.Sprintf("%s(%s)", m.function, m.variable.Description())
}

func (m *statistic) Table() *tabletree.Table { return m.variable.Table() }

func (m *statistic) WireMeasure() wire.Measure {
	return wire.Measure{
		ID:               m.Name(),
		ResolveTableName: m.variable.Table().Name(),
		Function:         m.function,
		VariableName:     m.variable.Name(),
	}
}
