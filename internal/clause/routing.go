package clause

import (
	"github.com/roach88/fathom/internal/tabletree"
)

// ChangeTable rewrites clause c to resolve against table target.
//
// Routing walks the table tree one step at a time:
//   - same table: c is returned unchanged
//   - target is an ancestor: wrap in ANY per parent step
//   - target is a descendant: wrap in THE per parent step
//   - unrelated tables: route up to the nearest common ancestor, then down
//
// Each step wraps the clause in a single-operand ANY or THE operation, so a
// multi-level change produces a chain of table operations.
func ChangeTable(c Clause, target *tabletree.Table) (Clause, error) {
	current := c.Table()

	switch {
	case current.IsSame(target):
		return c, nil

	case target.IsAncestorOf(current):
		if target.IsSame(current.Parent()) {
			return NewTableOperation(OpAny, target, c, "")
		}
		up, err := ChangeTable(c, current.Parent())
		if err != nil {
			return nil, err
		}
		return ChangeTable(up, target)

	case target.IsDescendantOf(current):
		if current.IsSame(target.Parent()) {
			return NewTableOperation(OpThe, target, c, "")
		}
		up, err := ChangeTable(c, target.Parent())
		if err != nil {
			return nil, err
		}
		return ChangeTable(up, target)

	default:
		nca, ok := current.NearestCommonAncestor(target)
		if !ok {
			return nil, newOperationError(ErrCodeUnroutable,
				"Could not establish relationship between new table and current one.")
		}
		up, err := ChangeTable(c, nca)
		if err != nil {
			return nil, err
		}
		return ChangeTable(up, target)
	}
}

// ChangeTableSimplified strips any prior table-change wrappers from c
// before routing it to target. Simplification is opt-in: re-routing an
// already routed clause otherwise stacks table operations.
func ChangeTableSimplified(c Clause, target *tabletree.Table) (Clause, error) {
	stripped, err := stripTableChanges(c)
	if err != nil {
		return nil, err
	}
	return ChangeTable(stripped, target)
}

// stripTableChanges unwinds single-operand ANY/THE wrappers recursively,
// returning the innermost non-table-change clause.
func stripTableChanges(c Clause) (Clause, error) {
	op, ok := c.(*TableOperation)
	if !ok {
		return c, nil
	}
	if op.operand == nil {
		return nil, newOperationError(ErrCodeBadCardinality,
			"%s operation must have exactly one operand", op.operation)
	}
	return stripTableChanges(op.operand)
}
