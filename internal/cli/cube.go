package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/cube"
	"github.com/roach88/fathom/internal/selection"
	"github.com/roach88/fathom/internal/session"
	"github.com/roach88/fathom/internal/vars"
)

// CubeOptions holds flags for the cube command.
type CubeOptions struct {
	*RootOptions
	Table        string
	Dims         []string
	Measures     []string
	Eq           []string
	Totals       bool
	Unclassified bool
}

// NewCubeCommand creates the cube command.
func NewCubeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CubeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cube",
		Short: "Cross-tabulate dimensions against measures",
		Long: `Cross-tabulate dimensions against measures.

Dimensions are selector variables, or date variables with a banding given
as VAR:Years, VAR:Quarters, VAR:Months or VAR:Day. Measures take the form
FUNC:VAR (Sum, Mean, Max, Min, Variance, StdDev, CountDistinct); when no
measure is given the resolve table's records are counted.

Example:
  fathom cube --table Bookings --dim Destination --dim TravelDate:Years`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCube(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "resolve table (required)")
	cmd.Flags().StringArrayVar(&opts.Dims, "dim", nil, "dimension VAR[:Banding]")
	cmd.Flags().StringArrayVar(&opts.Measures, "measure", nil, "measure FUNC:VAR")
	cmd.Flags().StringArrayVar(&opts.Eq, "eq", nil, "base selection criterion VAR=value[,value...]")
	cmd.Flags().BoolVar(&opts.Totals, "totals", false, "include TOTAL rows")
	cmd.Flags().BoolVar(&opts.Unclassified, "unclassified", false, "include unclassified rows")
	cmd.MarkFlagRequired("table")

	return cmd
}

func runCube(opts *CubeOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts.RootOptions, cmd)

	sess, _, err := restoreSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	resolve, ok := sess.Table(opts.Table)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("no table named %q", opts.Table))
	}
	if len(opts.Dims) == 0 {
		return NewExitError(ExitCommandError, "at least one --dim is required")
	}

	dims := make([]cube.Dimension, len(opts.Dims))
	for i, spec := range opts.Dims {
		d, err := parseDimension(sess, spec)
		if err != nil {
			return err
		}
		dims[i] = d
	}
	measures := make([]cube.Measure, len(opts.Measures))
	for i, spec := range opts.Measures {
		m, err := parseMeasure(sess, spec)
		if err != nil {
			return err
		}
		measures[i] = m
	}

	cubeOpts := []cube.Option{cube.WithResolveTable(resolve)}
	if len(opts.Eq) > 0 {
		var clauses []clause.Clause
		for _, spec := range opts.Eq {
			c, err := buildEquality(sess, spec, true)
			if err != nil {
				return reportDomainError(out, err)
			}
			clauses = append(clauses, c)
		}
		combined, err := combineAll(clauses)
		if err != nil {
			return reportDomainError(out, err)
		}
		sel, err := selection.New(ctx, sess.Client(), combined, selection.WithTable(resolve))
		if err != nil {
			return reportDomainError(out, err)
		}
		cubeOpts = append(cubeOpts, cube.WithSelection(sel))
	}

	c, err := cube.New(ctx, sess.Client(), dims, measures, cubeOpts...)
	if err != nil {
		return reportDomainError(out, err)
	}
	f, err := c.ToFrame(opts.Totals, opts.Unclassified)
	if err != nil {
		return reportDomainError(out, err)
	}

	if opts.Format == "json" {
		return out.Success(frameJSON(f))
	}
	return out.Success(strings.TrimRight(f.String(), "\n"))
}

// parseDimension reads a "VAR" or "VAR:Banding" spec.
func parseDimension(sess *session.Session, spec string) (cube.Dimension, error) {
	name, banding, hasBanding := strings.Cut(spec, ":")
	v, err := sess.Variable(name)
	if err != nil {
		return cube.Dimension{}, NewExitError(ExitCommandError, err.Error())
	}
	if !hasBanding {
		return cube.Dim(v), nil
	}
	switch b := cube.Banding(banding); b {
	case cube.Years, cube.Quarters, cube.Months, cube.Day:
		return cube.BandedDim(v, b), nil
	default:
		return cube.Dimension{}, NewExitError(ExitCommandError,
			fmt.Sprintf("unknown banding %q: use Years, Quarters, Months or Day", banding))
	}
}

// parseMeasure reads a "FUNC:VAR" spec.
func parseMeasure(sess *session.Session, spec string) (cube.Measure, error) {
	fn, name, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("measure %q must have the form FUNC:VAR", spec))
	}
	v, err := sess.Variable(name)
	if err != nil {
		return nil, NewExitError(ExitCommandError, err.Error())
	}
	if fn == "CountDistinct" {
		return cube.CountDistinct(v), nil
	}
	num, ok := v.(*vars.NumericVariable)
	if !ok {
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("%s requires a numeric variable, but %q is a %s variable",
				fn, name, v.Kind()))
	}
	switch fn {
	case "Sum":
		return cube.Sum(num), nil
	case "Mean":
		return cube.Mean(num), nil
	case "Max":
		return cube.Max(num), nil
	case "Min":
		return cube.Min(num), nil
	case "Variance":
		return cube.Variance(num), nil
	case "StdDev":
		return cube.StdDev(num), nil
	default:
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("unknown measure function %q", fn))
	}
}
