package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/grid"
	"github.com/roach88/fathom/internal/selection"
	"github.com/roach88/fathom/internal/vars"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Table   string
	Columns []string
	Eq      []string
	MaxRows string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export rows of selected variables as a data grid",
		Long: `Export rows of selected variables as a data grid.

Columns must live on the resolve table or one of its ancestors.

Example:
  fathom export --table Bookings --column Surname --column Destination --max-rows 100`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "resolve table (required)")
	cmd.Flags().StringArrayVar(&opts.Columns, "column", nil, "column variable name")
	cmd.Flags().StringArrayVar(&opts.Eq, "eq", nil, "selection criterion VAR=value[,value...]")
	cmd.Flags().StringVar(&opts.MaxRows, "max-rows", "", "maximum number of rows")
	cmd.MarkFlagRequired("table")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
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
	if len(opts.Columns) == 0 {
		return NewExitError(ExitCommandError, "at least one --column is required")
	}

	columns := make([]vars.Variable, len(opts.Columns))
	for i, name := range opts.Columns {
		v, err := sess.Variable(name)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		columns[i] = v
	}

	gridOpts := []grid.Option{grid.WithResolveTable(resolve)}
	if opts.MaxRows != "" {
		gridOpts = append(gridOpts, grid.WithMaxRows(opts.MaxRows))
	}
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
		gridOpts = append(gridOpts, grid.WithSelection(sel))
	}

	g, err := grid.New(ctx, sess.Client(), columns, gridOpts...)
	if err != nil {
		return reportDomainError(out, err)
	}
	f, err := g.ToFrame()
	if err != nil {
		return reportDomainError(out, err)
	}

	if opts.Format == "json" {
		return out.Success(frameJSON(f))
	}
	return out.Success(strings.TrimRight(f.String(), "\n"))
}
