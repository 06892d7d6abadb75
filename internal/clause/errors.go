package clause

import (
	"errors"
	"fmt"
)

// OperationError reports an invalid clause composition.
//
// Operation errors include:
//   - Mixed tables: boolean operands resolve against different tables
//   - Wrong cardinality: AND/OR need at least two operands, ANY/THE and
//     NOT exactly one
//   - Bad direction: ANY over a non-descendant or THE over a non-ancestor
//   - Unroutable: no relationship between the target table and the
//     clause's current one
type OperationError struct {
	// Code identifies the error category.
	Code OperationErrorCode

	// Message is a human-readable description.
	Message string
}

// OperationErrorCode categorizes operation errors.
type OperationErrorCode string

const (
	// ErrCodeMixedTables indicates boolean operands on different tables.
	ErrCodeMixedTables OperationErrorCode = "MIXED_TABLES"

	// ErrCodeBadCardinality indicates the wrong number of operands.
	ErrCodeBadCardinality OperationErrorCode = "BAD_CARDINALITY"

	// ErrCodeBadDirection indicates an ANY/THE operand on the wrong side
	// of the new table.
	ErrCodeBadDirection OperationErrorCode = "BAD_DIRECTION"

	// ErrCodeUnknownOperation indicates an operation outside the closed set.
	ErrCodeUnknownOperation OperationErrorCode = "UNKNOWN_OPERATION"

	// ErrCodeUnroutable indicates no relationship could be established
	// between the new table and the clause's current one.
	ErrCodeUnroutable OperationErrorCode = "UNROUTABLE"

	// ErrCodeUnsupported indicates an operation the variable kind does not
	// support.
	ErrCodeUnsupported OperationErrorCode = "UNSUPPORTED"
)

// Error implements the error interface.
func (e *OperationError) Error() string {
	return e.Message
}

func newOperationError(code OperationErrorCode, format string, args ...any) *OperationError {
	return &OperationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewUnsupportedError creates an OperationError for a variable kind that
// does not support clause-producing operators.
func NewUnsupportedError(format string, args ...any) *OperationError {
	return newOperationError(ErrCodeUnsupported, format, args...)
}

// IsOperationError returns true if the error is a clause-composition error.
// Uses errors.As to handle wrapped errors.
func IsOperationError(err error) bool {
	var oe *OperationError
	return errors.As(err, &oe)
}
