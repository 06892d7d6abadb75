package tabletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookup(t *testing.T, tree *Tree, name string) *Table {
	t.Helper()
	table, ok := tree.Lookup(name)
	require.True(t, ok, "table %s not found", name)
	return table
}

func TestTable_Relations(t *testing.T) {
	tree := makeTestTree(t)
	households := lookup(t, tree, "Households")
	customers := lookup(t, tree, "Customers")
	bookings := lookup(t, tree, "Bookings")
	purchases := lookup(t, tree, "Purchases")
	items := lookup(t, tree, "Items")

	assert.True(t, customers.IsSame(customers))
	assert.False(t, customers.IsSame(bookings))

	assert.True(t, households.IsAncestorOf(items))
	assert.True(t, customers.IsAncestorOf(bookings))
	assert.False(t, customers.IsAncestorOf(customers))
	assert.False(t, bookings.IsAncestorOf(customers))

	assert.True(t, items.IsDescendantOf(households))
	assert.False(t, items.IsDescendantOf(bookings))

	assert.True(t, bookings.IsRelatedTo(households))
	assert.False(t, bookings.IsRelatedTo(purchases))
	assert.False(t, bookings.IsRelatedTo(bookings))
	assert.True(t, bookings.IsSameOrRelated(bookings))
}

func TestTable_NearestCommonAncestor(t *testing.T) {
	tree := makeTestTree(t)
	customers := lookup(t, tree, "Customers")
	bookings := lookup(t, tree, "Bookings")
	items := lookup(t, tree, "Items")

	nca, ok := bookings.NearestCommonAncestor(items)
	require.True(t, ok)
	assert.Equal(t, customers, nca)

	nca, ok = items.NearestCommonAncestor(bookings)
	require.True(t, ok)
	assert.Equal(t, customers, nca)
}
