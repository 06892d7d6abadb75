package clause

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/wire"
)

func makeTestTree(t *testing.T) *tabletree.Tree {
	t.Helper()
	raw := []wire.RawTable{
		{Name: "Households", PluralDisplayName: "Households", HasChildTables: true},
		{Name: "Customers", PluralDisplayName: "Customers", HasChildTables: true,
			ParentTable: "Households"},
		{Name: "Bookings", PluralDisplayName: "Bookings", ParentTable: "Customers"},
		{Name: "Purchases", PluralDisplayName: "Purchases", HasChildTables: true,
			ParentTable: "Customers"},
		{Name: "Items", PluralDisplayName: "Items", ParentTable: "Purchases"},
	}
	tree, err := tabletree.Build(raw, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return tree
}

func table(t *testing.T, tree *tabletree.Tree, name string) *tabletree.Table {
	t.Helper()
	tbl, ok := tree.Lookup(name)
	require.True(t, ok)
	return tbl
}

func makeSelector(t *testing.T, tree *tabletree.Tree, tableName, varName string, values ...string) *Selector {
	t.Helper()
	return NewSelector(table(t, tree, tableName), varName, values, true, "")
}
