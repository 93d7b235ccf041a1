package clinic

import "errors"

// NewError creates a new error with the given error code and error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

func newUsageError(code ErrorCode, err error, usage string) error {
	return &Error{code: code, err: err, usage: usage}
}

// ErrorCode represents an error code for a specific error type.
type ErrorCode int

const (
	// ErrShowHelp is not a failure: the caller asked for help and the usage text should be
	// printed before exiting successfully.
	ErrShowHelp ErrorCode = iota + 1
	// ErrParse reports invalid command line input.
	ErrParse
	// ErrAnnotation reports a misconfigured command or option, detected while building it or the
	// first time a type is used.
	ErrAnnotation
	// ErrInternal reports a failure while invoking a command's function that is not an error the
	// function returned itself.
	ErrInternal
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrShowHelp:
		return "show help"
	case ErrParse:
		return "parse error"
	case ErrAnnotation:
		return "annotation error"
	case ErrInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// Error represents an error with an error code and an underlying error. Errors produced while
// parsing also carry the rendered usage text of the command or application.
type Error struct {
	code  ErrorCode
	err   error
	usage string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return convertErrorCode(e.code) + ": <nil>"
	}
	return e.err.Error()
}

// Code returns the error code.
func (e *Error) Code() ErrorCode {
	return e.code
}

// Usage returns the help text that accompanies the error, if any.
func (e *Error) Usage() string {
	return e.usage
}

func (e *Error) Unwrap() error {
	return e.err
}

// IsCode reports whether any error in err's chain is an [Error] with the given code.
func IsCode(err error, code ErrorCode) bool {
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.code == code
	}
	return false
}
