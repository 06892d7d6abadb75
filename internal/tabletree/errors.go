package tabletree

import "errors"

// TablesError reports an inconsistency detected while constructing the
// table tree: child-count mismatches, zero or multiple master tables,
// tables unreachable from the root, or relations left unassigned.
//
// Tables errors are raised only during bootstrap and are fatal to session
// creation.
type TablesError struct {
	Message string
}

// Error implements the error interface.
func (e *TablesError) Error() string {
	return e.Message
}

// NewTablesError creates a TablesError with the given message.
func NewTablesError(message string) *TablesError {
	return &TablesError{Message: message}
}

// IsTablesError returns true if the error is a table-tree construction error.
// Uses errors.As to handle wrapped errors.
func IsTablesError(err error) bool {
	var te *TablesError
	return errors.As(err, &te)
}
