package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fathom/internal/tabletree"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tables",
		Short:         "Show the system's table tree",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(rootOpts, cmd)
		},
	}
	return cmd
}

type tableInfo struct {
	Name         string `json:"name"`
	Plural       string `json:"plural"`
	TotalRecords int64  `json:"total_records"`
	Parent       string `json:"parent,omitempty"`
	Children     int    `json:"children"`
}

func runTables(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts, cmd)

	sess, _, err := restoreSession(ctx, opts)
	if err != nil {
		return err
	}
	tree := sess.Tree()

	if opts.Format == "json" {
		var infos []tableInfo
		walkTree(tree.Master(), func(t *tabletree.Table, depth int) {
			info := tableInfo{
				Name:         t.Name(),
				Plural:       t.PluralDisplayName(),
				TotalRecords: t.TotalRecords(),
				Children:     len(t.Children()),
			}
			if p := t.Parent(); p != nil {
				info.Parent = p.Name()
			}
			infos = append(infos, info)
		})
		return out.Success(infos)
	}

	var b strings.Builder
	walkTree(tree.Master(), func(t *tabletree.Table, depth int) {
		fmt.Fprintf(&b, "%s%s (%d records)\n",
			strings.Repeat("  ", depth), t.Name(), t.TotalRecords())
	})
	return out.Success(strings.TrimRight(b.String(), "\n"))
}

// walkTree visits the tree depth first, children in declaration order.
func walkTree(t *tabletree.Table, visit func(*tabletree.Table, int)) {
	var walk func(*tabletree.Table, int)
	walk = func(t *tabletree.Table, depth int) {
		visit(t, depth)
		for _, child := range t.Children() {
			walk(child, depth+1)
		}
	}
	walk(t, 0)
}
