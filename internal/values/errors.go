package values

import "errors"

// InputError reports an invalid user-supplied value.
//
// Input errors are flat: they never wrap another error, and the message is
// supplied by the caller so it can name the variable kind being selected
// ("specify the selector value as a string", "must specify a single number
// when using inequality operators", ...).
type InputError struct {
	Message string
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return e.Message
}

// NewInputError creates an InputError with the given message.
func NewInputError(message string) *InputError {
	return &InputError{Message: message}
}

// IsInputError returns true if the error is an invalid-input error.
// Uses errors.As to handle wrapped errors.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
