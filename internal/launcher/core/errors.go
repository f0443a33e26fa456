package core

import "fmt"

type ErrorKind string

const (
	KindUsage       ErrorKind = "USAGE"
	KindResolution  ErrorKind = "RESOLUTION"
	KindMissingPath ErrorKind = "MISSING_PATH"
	KindSubprocess  ErrorKind = "SUBPROCESS"
)

// Error is a fatal launcher error. Use errors.Is against the Err* kinds to
// classify it.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

var (
	ErrUsage       = &Error{Kind: KindUsage}
	ErrResolution  = &Error{Kind: KindResolution}
	ErrMissingPath = &Error{Kind: KindMissingPath}
	ErrSubprocess  = &Error{Kind: KindSubprocess}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func NewError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
