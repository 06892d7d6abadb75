package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/fathom/internal/api"
	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/session"
	"github.com/roach88/fathom/internal/values"
	"github.com/roach88/fathom/internal/vars"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (invalid inputs, server rejected the request)
	ExitCommandError = 2 // Command error (missing profile, unreadable cache, bad flags)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeProfile     = "E002" // Profile not found or malformed
	ErrCodeCache       = "E003" // Session cache unreadable
	ErrCodeNotLoggedIn = "E004" // No cached session for the profile
	ErrCodeLoginFailed = "E005" // Authentication rejected

	// Domain errors surfaced from the library
	ErrCodeInput     = "E101" // Invalid user input (values, placement, max_rows)
	ErrCodeOperation = "E102" // Clause operation error (routing, cardinality)
	ErrCodeResults   = "E103" // Server payload inconsistent with stated counts
	ErrCodeStatus    = "E104" // Non-2xx HTTP response
	ErrCodeSession   = "E105" // Session deserialize failure
	ErrCodeLookup    = "E106" // Unknown variable or table
)

// ClassifyError maps a library error to a CLI error code.
func ClassifyError(err error) string {
	var statusErr *api.StatusError
	var lookupErr *vars.LookupError
	switch {
	case values.IsInputError(err) || vars.IsInvalidValuesError(err):
		return ErrCodeInput
	case clause.IsOperationError(err):
		return ErrCodeOperation
	case api.IsResultsError(err) || vars.IsVariablesError(err):
		return ErrCodeResults
	case errors.As(err, &statusErr):
		return ErrCodeStatus
	case session.IsDeserializeError(err):
		return ErrCodeSession
	case errors.As(err, &lookupErr):
		return ErrCodeLookup
	default:
		return ErrCodeGeneric
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success outputs a successful result in the configured format. In text
// mode data is printed with its String method.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
			},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return nil
}

// VerboseLog outputs a message only if verbose mode is enabled. When format
// is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	fmt.Fprintf(w, format+"\n", args...)
}
