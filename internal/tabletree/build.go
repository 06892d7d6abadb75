package tabletree

import (
	"fmt"
	"log/slog"

	"github.com/roach88/fathom/internal/wire"
)

// Build constructs the table tree from raw server metadata, failing fast on
// any inconsistency.
//
// Steps, in order: group children by parent name, create table objects with
// sentinel relations, assign parents and children (checking the
// has_child_tables flag), locate the unique master, assign ancestors and
// descendants by recursive descent from the master, then verify that the
// traversal covered every raw table exactly once and that no relation was
// left unassigned.
func Build(raw []wire.RawTable, logger *slog.Logger) (*Tree, error) {
	if logger == nil {
		logger = slog.Default()
	}

	childNames := identifyChildren(raw)

	tree := &Tree{
		tables: make([]*Table, 0, len(raw)),
		byName: make(map[string]*Table, len(raw)),
	}
	for i, rt := range raw {
		t := &Table{
			tree:               tree,
			index:              i,
			name:               rt.Name,
			singular:           rt.SingularDisplayName,
			plural:             rt.PluralDisplayName,
			isDefault:          rt.IsDefaultTable,
			isPeople:           rt.IsPeopleTable,
			totalRecords:       rt.TotalRecords,
			childRelationship:  rt.ChildRelationshipName,
			parentRelationship: rt.ParentRelationshipName,
			parent:             unassigned,
		}
		tree.tables = append(tree.tables, t)
		tree.byName[rt.Name] = t
	}

	if err := assignParentsAndChildren(tree, raw, childNames); err != nil {
		return nil, err
	}

	master, err := findMaster(tree, raw)
	if err != nil {
		return nil, err
	}
	tree.master = master

	encountered := assignRelations(master, nil)

	if err := checkTreeComplete(tree, encountered); err != nil {
		return nil, err
	}
	if err := checkRelationsComplete(tree); err != nil {
		return nil, err
	}

	logger.Debug("table tree built",
		"tables", len(tree.tables),
		"master", master.Name(),
	)
	return tree, nil
}

// identifyChildren groups raw table names by their parent table name.
// Tables with no children map to an empty list.
func identifyChildren(raw []wire.RawTable) map[string][]string {
	children := make(map[string][]string, len(raw))
	for _, rt := range raw {
		if _, ok := children[rt.Name]; !ok {
			children[rt.Name] = nil
		}
	}
	for _, rt := range raw {
		if rt.ParentTable == "" {
			continue
		}
		children[rt.ParentTable] = append(children[rt.ParentTable], rt.Name)
	}
	return children
}

func assignParentsAndChildren(tree *Tree, raw []wire.RawTable, childNames map[string][]string) error {
	for i, rt := range raw {
		t := tree.tables[i]
		if rt.ParentTable == "" {
			t.parent = noParent
		} else {
			parent, ok := tree.byName[rt.ParentTable]
			if !ok {
				return NewTablesError(fmt.Sprintf(
					"table %q names parent table %q which does not exist",
					rt.Name, rt.ParentTable,
				))
			}
			t.parent = parent.index
		}

		names := childNames[rt.Name]
		if rt.HasChildTables != (len(names) > 0) {
			return NewTablesError(fmt.Sprintf(
				"table %q has_child_tables flag is %t but %d child tables were found",
				rt.Name, rt.HasChildTables, len(names),
			))
		}
		t.children = make([]int, 0, len(names))
		for _, name := range names {
			t.children = append(t.children, tree.byName[name].index)
		}
	}
	return nil
}

func findMaster(tree *Tree, raw []wire.RawTable) (*Table, error) {
	var masters []*Table
	for _, t := range tree.tables {
		if t.parent == noParent {
			masters = append(masters, t)
		}
	}
	if len(masters) != 1 {
		return nil, NewTablesError(fmt.Sprintf(
			"Found %d master tables, there should be 1.", len(masters),
		))
	}
	master, ok := tree.byName[masters[0].name]
	if !ok {
		return nil, NewTablesError(fmt.Sprintf(
			"master table %q could not be resolved", masters[0].name,
		))
	}
	return master, nil
}

// assignRelations sets ancestors and descendants for t's subtree and
// returns every table index encountered, depth-first, t first.
func assignRelations(t *Table, ancestors []int) []int {
	t.ancestors = make([]int, len(ancestors))
	copy(t.ancestors, ancestors)

	encountered := []int{t.index}
	childAncestors := append([]int{t.index}, ancestors...)
	t.descendants = []int{}
	for _, childIdx := range t.children {
		child := t.tree.tables[childIdx]
		sub := assignRelations(child, childAncestors)
		t.descendants = append(t.descendants, sub...)
		encountered = append(encountered, sub...)
	}
	return encountered
}

// checkTreeComplete multiset-compares the traversal against the arena.
func checkTreeComplete(tree *Tree, encountered []int) error {
	seen := make(map[int]int, len(encountered))
	for _, idx := range encountered {
		seen[idx]++
	}
	duplicated := 0
	missing := 0
	for _, t := range tree.tables {
		switch n := seen[t.index]; {
		case n > 1:
			duplicated++
		case n == 0:
			missing++
		}
	}
	if duplicated > 0 || missing > 0 {
		return NewTablesError(fmt.Sprintf(
			"Error constructing table tree:"+
				" %d tables occurred more than once in tree"+
				" and %d tables did not occur at all.",
			duplicated, missing,
		))
	}
	return nil
}

// checkRelationsComplete verifies no table retains a sentinel relation.
func checkRelationsComplete(tree *Tree) error {
	for _, t := range tree.tables {
		var relation string
		switch {
		case t.parent == unassigned:
			relation = "parent"
		case t.children == nil:
			relation = "children"
		case t.ancestors == nil:
			relation = "ancestors"
		case t.descendants == nil:
			relation = "descendants"
		default:
			continue
		}
		return NewTablesError(fmt.Sprintf(
			"relation %q was not assigned for table %q", relation, t.name,
		))
	}
	return nil
}
