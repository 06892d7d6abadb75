package vars

import (
	"errors"
	"fmt"
	"strings"
)

// VariablesError reports raw variable metadata that could not be
// classified: a discriminant outside the known set, or an owning table
// missing from the table tree. These are logged and skipped during
// bootstrap, never fatal.
type VariablesError struct {
	VariableName string
	Message      string
}

// Error implements the error interface.
func (e *VariablesError) Error() string {
	return fmt.Sprintf("variable %q: %s", e.VariableName, e.Message)
}

// IsVariablesError returns true if the error is a classification error.
// Uses errors.As to handle wrapped errors.
func IsVariablesError(err error) bool {
	var ve *VariablesError
	return errors.As(err, &ve)
}

// LookupError reports an ambiguous or unknown catalog key.
type LookupError struct {
	Key     string
	Message string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return e.Message
}

// invalidSampleSize bounds the number of offending values quoted in an
// InvalidValuesError.
const invalidSampleSize = 3

// InvalidValuesError reports selector values that failed lazy code-list
// validation: values that are neither codes nor descriptions, or a mix of
// the two.
type InvalidValuesError struct {
	// VariableName is the selector variable being validated.
	VariableName string

	// Category is "code", "description" or "unknown", describing what the
	// offending values were matched against.
	Category string

	// Invalid holds every offending value.
	Invalid []string
}

// Error implements the error interface. At most three offenders are
// quoted; a sample-size indicator is appended when more were detected.
func (e *InvalidValuesError) Error() string {
	sample := e.Invalid
	more := 0
	if len(sample) > invalidSampleSize {
		more = len(sample) - invalidSampleSize
		sample = sample[:invalidSampleSize]
	}
	quoted := make([]string, len(sample))
	for i, v := range sample {
		quoted[i] = fmt.Sprintf("'%s'", v)
	}
	msg := fmt.Sprintf("invalid %s value(s) for variable %q: %s",
		e.Category, e.VariableName, strings.Join(quoted, ", "))
	if more > 0 {
		msg += fmt.Sprintf(" (and %d more)", more)
	}
	return msg
}

// IsInvalidValuesError returns true if the error is a selector code
// mismatch. Uses errors.As to handle wrapped errors.
func IsInvalidValuesError(err error) bool {
	var ive *InvalidValuesError
	return errors.As(err, &ive)
}
