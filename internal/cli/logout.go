package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/fathom/internal/sessionstore"
)

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "logout",
		Short:         "Discard the cached session for a profile",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(rootOpts, cmd)
		},
	}
	return cmd
}

func runLogout(opts *RootOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts, cmd)

	profile, err := resolveProfile(opts)
	if err != nil {
		return err
	}
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	key := sessionstore.Key{
		BaseURL:  profile.BaseURL,
		DataView: profile.DataView,
		Username: profile.Username,
	}
	if err := store.Delete(ctx, key); err != nil {
		return WrapExitError(ExitCommandError, "failed to discard session", err)
	}
	return out.Success(fmt.Sprintf("Logged out of %s", profile.Name))
}
