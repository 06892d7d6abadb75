package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roach88/fathom/internal/session"
)

// LoginOptions holds flags for the login command.
type LoginOptions struct {
	*RootOptions
	Username string
	Password string
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against a profile's server and cache the session",
		Long: `Authenticate against a profile's server and cache the session.

The password is prompted for interactively unless --password is given.

Example:
  fathom login --profile holidays`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "username (defaults to the profile's)")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (prompted when omitted)")

	return cmd
}

func runLogin(opts *LoginOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := newFormatter(opts.RootOptions, cmd)

	profile, err := resolveProfile(opts.RootOptions)
	if err != nil {
		return err
	}
	username := opts.Username
	if username == "" {
		username = profile.Username
	}
	if username == "" {
		return NewExitError(ExitCommandError,
			"no username: set one in the profile or pass --username")
	}
	profile.Username = username

	password := opts.Password
	if password == "" {
		password, err = promptPassword(cmd, username)
		if err != nil {
			return err
		}
	}

	sess, err := session.Login(ctx, profile.BaseURL, profile.DataView, profile.System,
		username, password)
	if err != nil {
		out.Error(ClassifyError(err), err.Error())
		return WrapExitError(ExitFailure, "login failed", err)
	}
	if err := saveSession(ctx, opts.RootOptions, profile, sess); err != nil {
		return err
	}

	return out.Success(fmt.Sprintf("Logged in to %s as %s", profile.Name, username))
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise.
func promptPassword(cmd *cobra.Command, username string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Password for %s: ", username)
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", WrapExitError(ExitCommandError, "failed to read password", err)
		}
		return string(raw), nil
	}
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := cmd.InOrStdin().Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			line.WriteByte(buf[0])
		}
		if err != nil {
			break
		}
	}
	return strings.TrimRight(line.String(), "\r"), nil
}
