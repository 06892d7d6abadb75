package tabletree

// Tree is the arena of tables for one analytics system.
type Tree struct {
	tables []*Table
	byName map[string]*Table
	master *Table
}

// Table is one node of the table tree.
//
// Relations are indices into the owning Tree's arena. Tables are immutable
// once Build returns.
type Table struct {
	tree  *Tree
	index int

	name               string
	singular           string
	plural             string
	isDefault          bool
	isPeople           bool
	totalRecords       int64
	childRelationship  string
	parentRelationship string

	parent      int // index into the arena; noParent for the master table
	children    []int
	ancestors   []int // parent first, master last
	descendants []int // depth-first order
}

const (
	noParent   = -1
	unassigned = -2
)

// Master returns the unique root table.
func (tr *Tree) Master() *Table {
	return tr.master
}

// Lookup returns the table with the given server name.
func (tr *Tree) Lookup(name string) (*Table, bool) {
	t, ok := tr.byName[name]
	return t, ok
}

// Tables returns every table in arena order.
func (tr *Tree) Tables() []*Table {
	out := make([]*Table, len(tr.tables))
	copy(out, tr.tables)
	return out
}

// Len returns the number of tables in the tree.
func (tr *Tree) Len() int {
	return len(tr.tables)
}

// Name returns the table's server name.
func (t *Table) Name() string { return t.name }

// SingularDisplayName returns the singular display name.
func (t *Table) SingularDisplayName() string { return t.singular }

// PluralDisplayName returns the plural display name.
func (t *Table) PluralDisplayName() string { return t.plural }

// IsDefault reports whether this is the system's default table.
func (t *Table) IsDefault() bool { return t.isDefault }

// IsPeople reports whether this is the system's people table.
func (t *Table) IsPeople() bool { return t.isPeople }

// TotalRecords returns the total record count reported by the server.
func (t *Table) TotalRecords() int64 { return t.totalRecords }

// ChildRelationship returns the display phrase for the child relationship.
func (t *Table) ChildRelationship() string { return t.childRelationship }

// ParentRelationship returns the display phrase for the parent relationship.
func (t *Table) ParentRelationship() string { return t.parentRelationship }

// IsMaster reports whether this is the root table.
func (t *Table) IsMaster() bool { return t.parent == noParent }

// Parent returns the parent table, or nil for the master table.
func (t *Table) Parent() *Table {
	if t.parent < 0 {
		return nil
	}
	return t.tree.tables[t.parent]
}

// Children returns the direct child tables in declaration order.
func (t *Table) Children() []*Table {
	return t.resolve(t.children)
}

// Ancestors returns every ancestor, parent first, master last.
func (t *Table) Ancestors() []*Table {
	return t.resolve(t.ancestors)
}

// Descendants returns every descendant in depth-first order.
func (t *Table) Descendants() []*Table {
	return t.resolve(t.descendants)
}

func (t *Table) resolve(indices []int) []*Table {
	out := make([]*Table, len(indices))
	for i, idx := range indices {
		out[i] = t.tree.tables[idx]
	}
	return out
}

// IsSame reports whether both handles name the same table.
func (t *Table) IsSame(o *Table) bool {
	return o != nil && t.tree == o.tree && t.index == o.index
}

// IsAncestorOf reports whether t is a strict ancestor of o.
func (t *Table) IsAncestorOf(o *Table) bool {
	if o == nil || t.tree != o.tree {
		return false
	}
	for _, idx := range o.ancestors {
		if idx == t.index {
			return true
		}
	}
	return false
}

// IsDescendantOf reports whether t is a strict descendant of o.
func (t *Table) IsDescendantOf(o *Table) bool {
	return o != nil && o.IsAncestorOf(t)
}

// IsRelatedTo reports whether t is a strict ancestor or strict descendant
// of o.
func (t *Table) IsRelatedTo(o *Table) bool {
	return t.IsAncestorOf(o) || t.IsDescendantOf(o)
}

// IsSameOrRelated reports whether t is o, an ancestor of o, or a
// descendant of o.
func (t *Table) IsSameOrRelated(o *Table) bool {
	return t.IsSame(o) || t.IsRelatedTo(o)
}

// NearestCommonAncestor returns the common ancestor of t and o closest to
// the leaves, considering only strict ancestors of both. Returns false when
// the two tables share no ancestor.
func (t *Table) NearestCommonAncestor(o *Table) (*Table, bool) {
	if o == nil || t.tree != o.tree {
		return nil, false
	}
	other := make(map[int]struct{}, len(o.ancestors))
	for _, idx := range o.ancestors {
		other[idx] = struct{}{}
	}
	// Ancestors are ordered parent first, so the first hit is the deepest.
	for _, idx := range t.ancestors {
		if _, ok := other[idx]; ok {
			return t.tree.tables[idx], true
		}
	}
	return nil, false
}

// String returns the table's server name.
func (t *Table) String() string {
	return t.name
}
