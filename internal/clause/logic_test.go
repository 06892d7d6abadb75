package clause

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooleanOperation_Cardinality(t *testing.T) {
	tree := makeTestTree(t)
	a := makeSelector(t, tree, "Bookings", "Destination", "29")
	b := makeSelector(t, tree, "Bookings", "Product", "0")

	_, err := NewBooleanOperation(OpAnd, []Clause{a}, "")
	require.Error(t, err)
	assert.True(t, IsOperationError(err))

	_, err = NewBooleanOperation(OpNot, []Clause{a, b}, "")
	require.Error(t, err)
	assert.True(t, IsOperationError(err))

	op, err := NewBooleanOperation(OpOr, []Clause{a, b}, "")
	require.NoError(t, err)
	assert.Equal(t, "Bookings", op.Table().Name())
}

func TestNewBooleanOperation_MixedTablesRejected(t *testing.T) {
	tree := makeTestTree(t)
	a := makeSelector(t, tree, "Bookings", "Destination", "29")
	b := makeSelector(t, tree, "Customers", "Gender", "F")

	_, err := NewBooleanOperation(OpAnd, []Clause{a, b}, "")
	require.Error(t, err)
	assert.True(t, IsOperationError(err))
	assert.Contains(t, err.Error(), "same table")
}

func TestNewTableOperation_Direction(t *testing.T) {
	tree := makeTestTree(t)
	customers := table(t, tree, "Customers")
	bookings := table(t, tree, "Bookings")
	onBookings := makeSelector(t, tree, "Bookings", "Destination", "29")
	onCustomers := makeSelector(t, tree, "Customers", "Gender", "F")

	// ANY lifts a descendant clause to an ancestor table.
	anyOp, err := NewTableOperation(OpAny, customers, onBookings, "")
	require.NoError(t, err)
	assert.Equal(t, "Customers", anyOp.Table().Name())

	_, err = NewTableOperation(OpAny, bookings, onCustomers, "")
	require.Error(t, err)
	assert.True(t, IsOperationError(err))

	// THE pushes an ancestor clause down to a descendant table.
	theOp, err := NewTableOperation(OpThe, bookings, onCustomers, "")
	require.NoError(t, err)
	assert.Equal(t, "Bookings", theOp.Table().Name())

	_, err = NewTableOperation(OpThe, customers, onBookings, "")
	require.Error(t, err)
	assert.True(t, IsOperationError(err))
}

func TestAnd_RoutesRightOperand(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")
	gender := makeSelector(t, tree, "Customers", "Gender", "F")

	combined, err := And(dest, gender)
	require.NoError(t, err)
	assert.Equal(t, "Bookings", combined.Table().Name())

	op, ok := combined.(*BooleanOperation)
	require.True(t, ok)
	operands := op.Operands()
	require.Len(t, operands, 2)
	assert.Equal(t, "Bookings", operands[0].Table().Name())
	assert.Equal(t, "Bookings", operands[1].Table().Name())

	// The routed operand is a THE wrapper around the customer clause.
	routed, ok := operands[1].(*TableOperation)
	require.True(t, ok)
	assert.Equal(t, OpThe, routed.Operation())
}

func TestNot_PreservesTable(t *testing.T) {
	tree := makeTestTree(t)
	dest := makeSelector(t, tree, "Bookings", "Destination", "29")

	negated, err := Not(dest)
	require.NoError(t, err)
	assert.Equal(t, "Bookings", negated.Table().Name())
}
