package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "info",
		Short:         "Show the connected system's description",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(rootOpts, cmd)
		},
	}
	return cmd
}

func runInfo(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts, cmd)

	sess, profile, err := restoreSession(ctx, opts)
	if err != nil {
		return err
	}
	info, err := sess.SystemInfo(ctx)
	if err != nil {
		out.Error(ClassifyError(err), err.Error())
		return WrapExitError(ExitFailure, "failed to fetch system info", err)
	}

	if opts.Format == "json" {
		return out.Success(map[string]any{
			"profile":     profile.Name,
			"system":      info.Name,
			"description": info.Description,
			"build_date":  info.BuildDate,
			"view_name":   info.ViewName,
			"user":        sess.User().Username,
		})
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Profile:     %s\n", profile.Name)
	fmt.Fprintf(&b, "System:      %s\n", info.Name)
	fmt.Fprintf(&b, "Description: %s\n", info.Description)
	fmt.Fprintf(&b, "Build date:  %s\n", info.BuildDate)
	fmt.Fprintf(&b, "User:        %s", sess.User().Username)
	return out.Success(b.String())
}
