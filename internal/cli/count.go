package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/selection"
)

// CountOptions holds flags for the count command.
type CountOptions struct {
	*RootOptions
	Table string
	Eq    []string
	Ne    []string
	Ge    []string
	Le    []string
	Gt    []string
	Lt    []string
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CountOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Count the records matching a set of criteria",
		Long: `Count the records matching a set of criteria.

Criteria are combined with AND and routed across the table tree
automatically. The count resolves on --table when given, otherwise on the
table of the combined clause.

Example:
  fathom count --eq Destination=29 --eq Product=0,2 --table Bookings`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "resolve table")
	cmd.Flags().StringArrayVar(&opts.Eq, "eq", nil, "equality criterion VAR=value[,value...]")
	cmd.Flags().StringArrayVar(&opts.Ne, "ne", nil, "exclusion criterion VAR=value[,value...]")
	cmd.Flags().StringArrayVar(&opts.Ge, "ge", nil, "lower bound VAR=value")
	cmd.Flags().StringArrayVar(&opts.Le, "le", nil, "upper bound VAR=value")
	cmd.Flags().StringArrayVar(&opts.Gt, "gt", nil, "strict lower bound VAR=value")
	cmd.Flags().StringArrayVar(&opts.Lt, "lt", nil, "strict upper bound VAR=value")

	return cmd
}

func runCount(opts *CountOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts.RootOptions, cmd)

	sess, _, err := restoreSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}

	var clauses []clause.Clause
	add := func(c clause.Clause, err error) error {
		if err != nil {
			return err
		}
		clauses = append(clauses, c)
		return nil
	}
	for _, spec := range opts.Eq {
		if err := add(buildEquality(sess, spec, true)); err != nil {
			return reportDomainError(out, err)
		}
	}
	for _, spec := range opts.Ne {
		if err := add(buildEquality(sess, spec, false)); err != nil {
			return reportDomainError(out, err)
		}
	}
	bounds := []struct {
		specs []string
		op    string
	}{
		{opts.Ge, "ge"}, {opts.Le, "le"}, {opts.Gt, "gt"}, {opts.Lt, "lt"},
	}
	for _, b := range bounds {
		for _, spec := range b.specs {
			if err := add(buildBound(sess, spec, b.op)); err != nil {
				return reportDomainError(out, err)
			}
		}
	}
	if len(clauses) == 0 {
		return NewExitError(ExitCommandError, "no criteria given")
	}

	combined, err := combineAll(clauses)
	if err != nil {
		return reportDomainError(out, err)
	}

	var selOpts []selection.Option
	if opts.Table != "" {
		t, ok := sess.Table(opts.Table)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("no table named %q", opts.Table))
		}
		selOpts = append(selOpts, selection.WithTable(t))
	}
	sel, err := selection.New(ctx, sess.Client(), combined, selOpts...)
	if err != nil {
		return reportDomainError(out, err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]any{
			"table": sel.Table().Name(),
			"count": sel.Count(),
		})
	}
	return out.Success(fmt.Sprintf("%d %s", sel.Count(), sel.Table().PluralDisplayName()))
}

// reportDomainError emits a formatted error and wraps it with the failure
// exit code.
func reportDomainError(out *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	out.Error(ClassifyError(err), err.Error())
	return WrapExitError(ExitFailure, "command failed", err)
}
