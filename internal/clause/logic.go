package clause

import (
	"github.com/roach88/fathom/internal/tabletree"
)

// BoolOp is a boolean logic operation.
type BoolOp string

const (
	OpAnd BoolOp = "AND"
	OpOr  BoolOp = "OR"
	OpNot BoolOp = "NOT"
)

// TableOp is a table-change operation.
//
// ANY moves a clause from a descendant table up to an ancestor
// (existential over child records); THE moves a clause from an ancestor
// down to a descendant.
type TableOp string

const (
	OpAny TableOp = "ANY"
	OpThe TableOp = "THE"
)

// BooleanOperation composes operand clauses that share a table.
type BooleanOperation struct {
	table     *tabletree.Table
	operation BoolOp
	operands  []Clause
	label     string
}

func (*BooleanOperation) clauseNode() {}

// NewBooleanOperation validates and creates a boolean logic clause.
//
// AND and OR require at least two operands, all resolving against the same
// table; NOT requires exactly one operand and preserves its table.
func NewBooleanOperation(op BoolOp, operands []Clause, label string) (*BooleanOperation, error) {
	switch op {
	case OpNot:
		if len(operands) != 1 {
			return nil, newOperationError(ErrCodeBadCardinality,
				"%s operation requires exactly 1 operand, got %d", op, len(operands))
		}
	case OpAnd, OpOr:
		if len(operands) < 2 {
			return nil, newOperationError(ErrCodeBadCardinality,
				"%s operation requires at least 2 operands, got %d", op, len(operands))
		}
		first := operands[0].Table()
		for _, o := range operands[1:] {
			if !first.IsSame(o.Table()) {
				return nil, newOperationError(ErrCodeMixedTables,
					"%s operation requires all operands to resolve against the same table,"+
						" got %q and %q", op, first.Name(), o.Table().Name())
			}
		}
	default:
		return nil, newOperationError(ErrCodeUnknownOperation,
			"unknown logic operation %q", op)
	}
	ops := make([]Clause, len(operands))
	copy(ops, operands)
	return &BooleanOperation{
		table:     operands[0].Table(),
		operation: op,
		operands:  ops,
		label:     label,
	}, nil
}

// Table returns the shared table of the operands.
func (c *BooleanOperation) Table() *tabletree.Table { return c.table }

// Label returns the optional user-supplied label.
func (c *BooleanOperation) Label() string { return c.label }

// Operation returns the boolean operation.
func (c *BooleanOperation) Operation() BoolOp { return c.operation }

// Operands returns the operand clauses.
func (c *BooleanOperation) Operands() []Clause {
	out := make([]Clause, len(c.operands))
	copy(out, c.operands)
	return out
}

// TableOperation rewrites its single operand to resolve against a new
// table one step up (ANY) or down (THE) the table tree.
type TableOperation struct {
	table     *tabletree.Table
	operation TableOp
	operand   Clause
	label     string
}

func (*TableOperation) clauseNode() {}

// NewTableOperation validates and creates a table-change clause.
//
// For ANY the operand must resolve strictly below the new table; for THE,
// strictly above.
func NewTableOperation(op TableOp, table *tabletree.Table, operand Clause, label string) (*TableOperation, error) {
	switch op {
	case OpAny:
		if !operand.Table().IsDescendantOf(table) {
			return nil, newOperationError(ErrCodeBadDirection,
				"ANY operation requires the operand table %q to be a descendant of %q",
				operand.Table().Name(), table.Name())
		}
	case OpThe:
		if !operand.Table().IsAncestorOf(table) {
			return nil, newOperationError(ErrCodeBadDirection,
				"THE operation requires the operand table %q to be an ancestor of %q",
				operand.Table().Name(), table.Name())
		}
	default:
		return nil, newOperationError(ErrCodeUnknownOperation,
			"unknown table operation %q", op)
	}
	return &TableOperation{table: table, operation: op, operand: operand, label: label}, nil
}

// Table returns the table the operand was moved to.
func (c *TableOperation) Table() *tabletree.Table { return c.table }

// Label returns the optional user-supplied label.
func (c *TableOperation) Label() string { return c.label }

// Operation returns the table-change operation.
func (c *TableOperation) Operation() TableOp { return c.operation }

// Operand returns the single operand clause.
func (c *TableOperation) Operand() Clause { return c.operand }

// And combines two clauses with boolean AND. If the operands resolve
// against different tables the right-hand operand is first routed to the
// left-hand operand's table.
func And(left, right Clause) (Clause, error) {
	return combine(OpAnd, left, right)
}

// Or combines two clauses with boolean OR, routing the right-hand operand
// to the left-hand operand's table as needed.
func Or(left, right Clause) (Clause, error) {
	return combine(OpOr, left, right)
}

// Not negates a clause, preserving its table.
func Not(operand Clause) (Clause, error) {
	return NewBooleanOperation(OpNot, []Clause{operand}, "")
}

func combine(op BoolOp, left, right Clause) (Clause, error) {
	routed, err := ChangeTable(right, left.Table())
	if err != nil {
		return nil, err
	}
	return NewBooleanOperation(op, []Clause{left, routed}, "")
}
