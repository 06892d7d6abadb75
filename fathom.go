// Package fathom is a client-side query builder and result materializer
// for a FastStats-style analytics server.
//
// A Session owns the authenticated client, the table tree and the variable
// catalog. Variables build clauses, clauses combine into selections, and
// selections feed cubes and data grids:
//
//	sess, err := fathom.Login(ctx, baseURL, dataView, system, user, pass)
//	dest, err := sess.Variable("Destination")
//	cl, err := dest.(*fathom.SelectorVariable).Eq("29")
//	sel, err := fathom.NewSelection(ctx, sess, cl)
//	fmt.Println(sel.Count())
package fathom

import (
	"context"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/cube"
	"github.com/roach88/fathom/internal/frame"
	"github.com/roach88/fathom/internal/grid"
	"github.com/roach88/fathom/internal/selection"
	"github.com/roach88/fathom/internal/session"
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/vars"
)

// Session re-exports the session type.
type Session = session.Session

// SessionOption configures Login and Restore.
type SessionOption = session.Option

// WithLogger attaches a structured logger to the session.
var WithLogger = session.WithLogger

// Login authenticates and bootstraps a session: table tree, then
// variables.
func Login(ctx context.Context, baseURL, dataView, system, username, password string, opts ...SessionOption) (*Session, error) {
	return session.Login(ctx, baseURL, dataView, system, username, password, opts...)
}

// Restore rebuilds a session from its serialized form.
func Restore(ctx context.Context, data []byte, opts ...SessionOption) (*Session, error) {
	return session.Restore(ctx, data, opts...)
}

// Table tree types.
type (
	Tree  = tabletree.Tree
	Table = tabletree.Table
)

// Variable kinds.
type (
	Variable                   = vars.Variable
	SelectorVariable           = vars.SelectorVariable
	CombinedCategoriesVariable = vars.CombinedCategoriesVariable
	NumericVariable            = vars.NumericVariable
	TextVariable               = vars.TextVariable
	ArrayVariable              = vars.ArrayVariable
	FlagArrayVariable          = vars.FlagArrayVariable
	DateVariable               = vars.DateVariable
	DateTimeVariable           = vars.DateTimeVariable
	ReferenceVariable          = vars.ReferenceVariable
)

// Clause is the sealed clause interface produced by variable operators.
type Clause = clause.Clause

// Clause combinators.
var (
	And = clause.And
	Or  = clause.Or
	Not = clause.Not
)

// Selection types and options.
type (
	Selection       = selection.Selection
	SelectionOption = selection.Option
)

// Selection options.
var (
	WithTable     = selection.WithTable
	RegularSample = selection.RegularSample
	RandomSample  = selection.RandomSample
	First         = selection.First
	TopN          = selection.TopN
)

// NewSelection counts a clause against the session's server and returns
// the selection.
func NewSelection(ctx context.Context, sess *Session, rule Clause, opts ...SelectionOption) (*Selection, error) {
	return selection.New(ctx, sess.Client(), rule, opts...)
}

// Cube types.
type (
	Cube       = cube.Cube
	CubeOption = cube.Option
	Dimension  = cube.Dimension
	Measure    = cube.Measure
	Banding    = cube.Banding
)

// Date bandings.
const (
	Years    = cube.Years
	Quarters = cube.Quarters
	Months   = cube.Months
	Day      = cube.Day
)

// Dimension and measure constructors.
var (
	Dim           = cube.Dim
	BandedDim     = cube.BandedDim
	Count         = cube.Count
	Sum           = cube.Sum
	Mean          = cube.Mean
	Max           = cube.Max
	Min           = cube.Min
	Variance      = cube.Variance
	StdDev        = cube.StdDev
	CountDistinct = cube.CountDistinct
)

// Cube options.
var (
	WithSelection    = cube.WithSelection
	WithResolveTable = cube.WithResolveTable
)

// NewCube calculates a cube on the session's server.
func NewCube(ctx context.Context, sess *Session, dims []Dimension, measures []Measure, opts ...CubeOption) (*Cube, error) {
	return cube.New(ctx, sess.Client(), dims, measures, opts...)
}

// DataGrid types.
type (
	DataGrid   = grid.DataGrid
	GridOption = grid.Option
)

// Grid options.
var (
	GridSelection    = grid.WithSelection
	GridResolveTable = grid.WithResolveTable
	GridMaxRows      = grid.WithMaxRows
)

// NewDataGrid exports rows of the given column variables.
func NewDataGrid(ctx context.Context, sess *Session, columns []Variable, opts ...GridOption) (*DataGrid, error) {
	return grid.New(ctx, sess.Client(), columns, opts...)
}

// Frame is the labeled table results materialize into.
type Frame = frame.Frame
