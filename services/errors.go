package services

import "fmt"

// ErrorKind is the stable machine-readable failure code surfaced to clients.
type ErrorKind string

const (
	KindInvalidArgument     ErrorKind = "invalid_argument"
	KindNotFound            ErrorKind = "not_found"
	KindConflict            ErrorKind = "conflict"
	KindGone                ErrorKind = "gone"
	KindInsufficientUploads ErrorKind = "insufficient_uploads"
	KindUnauthorized        ErrorKind = "unauthorized"
)

// Error is the only error type the check-in service returns for expected
// failures. Required/Found are populated only for KindInsufficientUploads.
type Error struct {
	Kind     ErrorKind
	Message  string
	Required int
	Found    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func errInvalid(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// AsError unwraps err into *Error when it is one.
func AsError(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
