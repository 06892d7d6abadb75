package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fathom/internal/api"
	"github.com/roach88/fathom/internal/session"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/vars"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestExitError_Formatting(t *testing.T) {
	plain := NewExitError(ExitFailure, "count failed")
	assert.EqualError(t, plain, "count failed")

	cause := errors.New("connection refused")
	wrapped := WrapExitError(ExitFailure, "count failed", cause)
	assert.EqualError(t, wrapped, "count failed: connection refused")
	assert.ErrorIs(t, wrapped, cause)
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"input", values.NewInputError("bad value"), ErrCodeInput},
		{"invalid values", &vars.InvalidValuesError{VariableName: "v"}, ErrCodeInput},
		{"results", &api.ResultsError{Endpoint: "tables", Message: "short"}, ErrCodeResults},
		{"variables", &vars.VariablesError{VariableName: "v"}, ErrCodeResults},
		{"status", &api.StatusError{Endpoint: "/queries", StatusCode: 500}, ErrCodeStatus},
		{"session", &session.DeserializeError{Message: "bad"}, ErrCodeSession},
		{"lookup", &vars.LookupError{Key: "x", Message: "unknown"}, ErrCodeLookup},
		{"generic", errors.New("anything else"), ErrCodeGeneric},
		{"wrapped input", fmt.Errorf("context: %w", values.NewInputError("bad")), ErrCodeInput},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyError(tc.err))
		})
	}
}

func TestOutputFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]any{"count": 25207}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)

	buf.Reset()
	require.NoError(t, f.Error(ErrCodeInput, "bad value"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInput, resp.Error.Code)
	assert.Equal(t, "bad value", resp.Error.Message)
}

func TestOutputFormatter_Text(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Error(ErrCodeStatus, "server returned 500"))
	assert.Equal(t, "Error [E104]: server returned 500\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	var out, errw bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errw, Verbose: true}

	f.VerboseLog("loaded %d profiles", 2)
	assert.Empty(t, out.String())
	assert.Equal(t, "loaded 2 profiles\n", errw.String())

	f.Verbose = false
	errw.Reset()
	f.VerboseLog("quiet")
	assert.Empty(t, errw.String())
}
