package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
)

// Profile is one named server connection, loaded from CUE.
type Profile struct {
	Name     string `json:"name"`
	BaseURL  string `json:"base_url"`
	DataView string `json:"data_view"`
	System   string `json:"system"`
	Username string `json:"username,omitempty"`
}

// LoadProfiles loads connection profiles from the CUE files in a
// directory. Profiles are declared under the top-level "profile" field:
//
//	profile: holidays: {
//	    base_url:  "https://example.com/api"
//	    data_view: "holidays"
//	    system:    "Holidays"
//	    username:  "demo"
//	}
func LoadProfiles(dir string) (map[string]Profile, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("profiles directory not found: %s", dir))
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "error accessing profiles directory", err)
	}
	if !info.IsDir() {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("not a directory: %s", dir))
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "error scanning profiles directory", err)
	}
	if len(cueFiles) == 0 {
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("no CUE files found in %s", dir))
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, NewExitError(ExitCommandError, "no CUE instances loaded")
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, WrapExitError(ExitCommandError, "loading CUE files", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, WrapExitError(ExitCommandError, "building CUE value", err)
	}

	profiles := map[string]Profile{}
	profilesVal := value.LookupPath(cue.ParsePath("profile"))
	if !profilesVal.Exists() {
		return nil, NewExitError(ExitCommandError, "no profiles found: expected a top-level \"profile\" field")
	}
	iter, err := profilesVal.Fields()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "iterating profiles", err)
	}
	for iter.Next() {
		name := iter.Label()
		p, err := decodeProfile(name, iter.Value())
		if err != nil {
			return nil, err
		}
		profiles[name] = p
	}
	if len(profiles) == 0 {
		return nil, NewExitError(ExitCommandError, "no profiles found in CUE files")
	}
	return profiles, nil
}

func decodeProfile(name string, v cue.Value) (Profile, error) {
	p := Profile{Name: name}
	fields := []struct {
		path     string
		dst      *string
		required bool
	}{
		{"base_url", &p.BaseURL, true},
		{"data_view", &p.DataView, true},
		{"system", &p.System, true},
		{"username", &p.Username, false},
	}
	for _, f := range fields {
		fv := v.LookupPath(cue.ParsePath(f.path))
		if !fv.Exists() {
			if f.required {
				return Profile{}, NewExitError(ExitCommandError,
					fmt.Sprintf("profile %q is missing required field %q", name, f.path))
			}
			continue
		}
		s, err := fv.String()
		if err != nil {
			return Profile{}, WrapExitError(ExitCommandError,
				fmt.Sprintf("profile %q field %q is not a string", name, f.path), err)
		}
		*f.dst = s
	}
	return p, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
