package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfileDir(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profiles.cue"), []byte(contents), 0o600))
	return dir
}

func TestLoadProfiles(t *testing.T) {
	dir := writeProfileDir(t, `
profile: holidays: {
	base_url:  "https://faststats.example.com/api"
	data_view: "acme_inc"
	system:    "Holidays"
	username:  "demo"
}
profile: insurance: {
	base_url:  "https://faststats.example.com/api"
	data_view: "acme_inc"
	system:    "Insurance"
}
`)

	profiles, err := LoadProfiles(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	holidays := profiles["holidays"]
	assert.Equal(t, "holidays", holidays.Name)
	assert.Equal(t, "https://faststats.example.com/api", holidays.BaseURL)
	assert.Equal(t, "acme_inc", holidays.DataView)
	assert.Equal(t, "Holidays", holidays.System)
	assert.Equal(t, "demo", holidays.Username)

	// username is optional.
	assert.Empty(t, profiles["insurance"].Username)
}

func TestLoadProfiles_MissingRequiredField(t *testing.T) {
	dir := writeProfileDir(t, `
profile: broken: {
	base_url: "https://faststats.example.com/api"
	system:   "Holidays"
}
`)

	_, err := LoadProfiles(dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `profile "broken" is missing required field "data_view"`)
}

func TestLoadProfiles_MissingDirectory(t *testing.T) {
	_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "profiles directory not found")
}

func TestLoadProfiles_NoCUEFiles(t *testing.T) {
	_, err := LoadProfiles(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no CUE files found")
}

func TestLoadProfiles_NoProfileField(t *testing.T) {
	dir := writeProfileDir(t, `other: {a: "b"}`)

	_, err := LoadProfiles(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected a top-level "profile" field`)
}
