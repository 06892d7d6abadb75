package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fathom/internal/vars"
)

// VariablesOptions holds flags for the variables command.
type VariablesOptions struct {
	*RootOptions
	Table string
}

// NewVariablesCommand creates the variables command.
func NewVariablesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VariablesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "variables",
		Short:         "List the system's variables",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVariables(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "only variables of this table")

	return cmd
}

type variableInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Table       string `json:"table"`
	Kind        string `json:"kind"`
}

func runVariables(opts *VariablesOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts.RootOptions, cmd)

	sess, _, err := restoreSession(ctx, opts.RootOptions)
	if err != nil {
		return err
	}

	var list []vars.Variable
	if opts.Table != "" {
		if _, ok := sess.Table(opts.Table); !ok {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("no table named %q", opts.Table))
		}
		list = sess.Variables(opts.Table)
	} else {
		for _, t := range sess.Tree().Tables() {
			list = append(list, sess.Variables(t.Name())...)
		}
	}

	if opts.Format == "json" {
		infos := make([]variableInfo, len(list))
		for i, v := range list {
			infos[i] = variableInfo{
				Name:        v.Name(),
				Description: v.Description(),
				Table:       v.Table().Name(),
				Kind:        string(v.Kind()),
			}
		}
		return out.Success(infos)
	}

	var b strings.Builder
	for _, v := range list {
		fmt.Fprintf(&b, "%-20s %-30s %-12s %s\n",
			v.Name(), v.Description(), v.Kind(), v.Table().Name())
	}
	return out.Success(strings.TrimRight(b.String(), "\n"))
}
