package utils

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownPlan     = errors.New("unknown plan id")
	ErrSheetDisabled   = errors.New("sheet backend disabled")
	ErrBadUpdatedRange = errors.New("unexpected updated range")
	ErrMissingConfig   = errors.New("missing configuration")
)

// RejectionError is a user input error. Message is shown to the user as is
// and the session is left untouched.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string { return e.Message }

func Reject(message string) error {
	return &RejectionError{Message: message}
}

// AsRejection returns the user-facing message carried by err, if any.
func AsRejection(err error) (string, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Message, true
	}
	return "", false
}
