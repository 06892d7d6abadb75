// Package cube builds and materializes cubes: cross-tabulations of one or
// more dimensions against one or more measures.
//
// Inputs are validated against the table tree before anything touches the
// network. The one non-obvious rule is the cross-cube: two dimensions may
// live on unrelated tables only when both are descendants of the resolve
// table, and then every measure must live on the resolve table or one of
// its ancestors.
//
// The server flattens each measure's cells in row-major order over its own
// dimension order, which is the reverse of the order the user supplied;
// the reshape honours that convention and materialization maps cells back
// into the user's order.
package cube
