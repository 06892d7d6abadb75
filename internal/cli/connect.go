package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/fathom/internal/session"
	"github.com/roach88/fathom/internal/sessionstore"
)

// resolveProfile loads the named profile, or the only profile when no name
// was given.
func resolveProfile(opts *RootOptions) (Profile, error) {
	profiles, err := LoadProfiles(opts.ProfileDir)
	if err != nil {
		return Profile{}, err
	}
	if opts.Profile == "" {
		if len(profiles) == 1 {
			for _, p := range profiles {
				return p, nil
			}
		}
		return Profile{}, NewExitError(ExitCommandError,
			fmt.Sprintf("%d profiles available; choose one with --profile", len(profiles)))
	}
	p, ok := profiles[opts.Profile]
	if !ok {
		return Profile{}, NewExitError(ExitCommandError,
			fmt.Sprintf("no profile named %q in %s", opts.Profile, opts.ProfileDir))
	}
	return p, nil
}

// openStore opens the session cache, creating parent directories as needed.
func openStore(opts *RootOptions) (*sessionstore.Store, error) {
	if dir := filepath.Dir(opts.CachePath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to create cache directory", err)
		}
	}
	store, err := sessionstore.Open(opts.CachePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open session cache", err)
	}
	return store, nil
}

// restoreSession loads the cached session for the profile and reconnects.
func restoreSession(ctx context.Context, opts *RootOptions) (*session.Session, Profile, error) {
	profile, err := resolveProfile(opts)
	if err != nil {
		return nil, Profile{}, err
	}
	store, err := openStore(opts)
	if err != nil {
		return nil, Profile{}, err
	}
	defer store.Close()

	key := sessionstore.Key{
		BaseURL:  profile.BaseURL,
		DataView: profile.DataView,
		Username: profile.Username,
	}
	payload, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, Profile{}, WrapExitError(ExitCommandError, "failed to read session cache", err)
	}
	if !ok {
		return nil, Profile{}, NewExitError(ExitCommandError,
			fmt.Sprintf("no cached session for profile %q; run \"fathom login\" first", profile.Name))
	}

	sess, err := session.Restore(ctx, []byte(payload))
	if err != nil {
		return nil, Profile{}, err
	}
	return sess, profile, nil
}

// saveSession serializes a session into the cache under the profile's key.
func saveSession(ctx context.Context, opts *RootOptions, profile Profile, sess *session.Session) error {
	store, err := openStore(opts)
	if err != nil {
		return err
	}
	defer store.Close()

	payload, err := sess.Serialize()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to serialize session", err)
	}
	key := sessionstore.Key{
		BaseURL:  profile.BaseURL,
		DataView: profile.DataView,
		Username: profile.Username,
	}
	if err := store.Put(ctx, key, string(payload)); err != nil {
		return WrapExitError(ExitCommandError, "failed to save session", err)
	}
	return nil
}
