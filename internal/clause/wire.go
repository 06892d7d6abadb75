package clause

import (
	"strings"

	"github.com/roach88/fathom/internal/wire"
)

// tabJoin joins wire values with the ASCII tab character, the list
// separator the server expects inside criteria.
func tabJoin(values []string) string {
	return strings.Join(values, "\t")
}

func (c *Selector) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", "")
}

func (c *CombinedCategories) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", "")
}

func (c *Numeric) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", "")
}

func (c *Text) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, string(c.matchType), "")
}

func (c *Array) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", string(c.logic))
}

func (c *FlagArray) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", string(c.logic))
}

func (c *DateList) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", "")
}

func (c *DateRange) WireClause() wire.Clause {
	return rangeCriteria(c.criteria, c.start, c.end)
}

func (c *TimeRange) WireClause() wire.Clause {
	return rangeCriteria(c.criteria, c.start, c.end)
}

func (c *DateTimeRange) WireClause() wire.Clause {
	return rangeCriteria(c.criteria, c.start, c.end)
}

func (c *Reference) WireClause() wire.Clause {
	return listCriteria(c.criteria, c.values, "", "")
}

func (c *BooleanOperation) WireClause() wire.Clause {
	operands := make([]wire.Clause, len(c.operands))
	for i, o := range c.operands {
		operands[i] = o.WireClause()
	}
	return wire.Clause{Logic: &wire.Logic{
		Operation: string(c.operation),
		Operands:  operands,
		TableName: c.table.Name(),
		Label:     c.label,
	}}
}

func (c *TableOperation) WireClause() wire.Clause {
	return wire.Clause{Logic: &wire.Logic{
		Operation: string(c.operation),
		Operands:  []wire.Clause{c.operand.WireClause()},
		TableName: c.table.Name(),
		Label:     c.label,
	}}
}

// WireClause embeds the wrapped selection's model verbatim.
func (c *SubSelection) WireClause() wire.Clause {
	selection := c.selection
	return wire.Clause{SubSelection: &selection}
}

func listCriteria(c criteria, values []string, matchType, logic string) wire.Clause {
	return wire.Clause{Criteria: &wire.Criteria{
		VariableName:  c.variableName,
		Include:       c.include,
		Logic:         logic,
		TextMatchType: matchType,
		ValueRules: []wire.ValueRule{
			{List: &wire.ListRule{List: tabJoin(values)}},
		},
		TableName: c.table.Name(),
		Label:     c.label,
	}}
}

func rangeCriteria(c criteria, low, high string) wire.Clause {
	return wire.Clause{Criteria: &wire.Criteria{
		VariableName: c.variableName,
		Include:      c.include,
		ValueRules: []wire.ValueRule{
			{Range: &wire.RangeRule{Low: low, High: high}},
		},
		TableName: c.table.Name(),
		Label:     c.label,
	}}
}
