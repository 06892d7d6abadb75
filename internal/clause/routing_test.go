package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeTable_SameTableIsIdentity(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")

	routed, err := ChangeTable(dest, table(t, tree, "Bookings"))
	require.NoError(t, err)
	assert.Same(t, Clause(dest), routed)
}

func TestChangeTable_RoundTrip(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")

	for _, target := range []string{"Customers", "Households", "Purchases", "Items"} {
		routed, err := ChangeTable(dest, table(t, tree, target))
		require.NoError(t, err, "routing to %s", target)
		assert.Equal(t, target, routed.Table().Name())
	}
}

func TestChangeTable_StepsOneLevelAtATime(t *testing.T) {
	tree := makeTestTree(t)
	price := makeSelector(t, tree, "Items", "Price", "10")

	// Items -> Households climbs three levels, one ANY per step.
	routed, err := ChangeTable(price, table(t, tree, "Households"))
	require.NoError(t, err)

	depth := 0
	for {
		op, ok := routed.(*TableOperation)
		if !ok {
			break
		}
		assert.Equal(t, OpAny, op.Operation())
		routed = op.Operand()
		depth++
	}
	assert.Equal(t, 3, depth)
	assert.Same(t, Clause(price), routed)
}

func TestChangeTable_UnrelatedRoutesViaCommonAncestor(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")

	// Bookings -> Items goes up to Customers then down through Purchases.
	routed, err := ChangeTable(dest, table(t, tree, "Items"))
	require.NoError(t, err)
	assert.Equal(t, "Items", routed.Table().Name())

	outer, ok := routed.(*TableOperation)
	require.True(t, ok)
	assert.Equal(t, OpThe, outer.Operation())
}

func TestChangeTableSimplified_StripsPriorWrappers(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")

	up, err := ChangeTable(dest, table(t, tree, "Households"))
	require.NoError(t, err)

	back, err := ChangeTableSimplified(up, table(t, tree, "Bookings"))
	require.NoError(t, err)
	assert.Same(t, Clause(dest), back)
}
