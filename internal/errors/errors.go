package errors

import (
	stderrors "errors"
	"fmt"
	"unicode/utf8"

	goerrors "github.com/go-errors/errors"
)

// ErrorType classifies failures for logging and exit handling
type ErrorType string

const (
	ErrTypeTransport    ErrorType = "TRANSPORT"
	ErrTypeUpstream     ErrorType = "UPSTREAM"
	ErrTypeMalformed    ErrorType = "MALFORMED"
	ErrTypeInvalidInput ErrorType = "INVALID_INPUT"
	ErrTypeUnknown      ErrorType = "UNKNOWN"
)

// DomainError is an error with a type and the stack where it was created
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

// New creates a DomainError, reusing the stack of err when it carries one
func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

// Transport covers failures where no HTTP response was received
func Transport(message string, err error) *DomainError {
	return New(ErrTypeTransport, message, err)
}

// maxBodySnippet caps how many bytes of a response body end up in an error
const maxBodySnippet = 200

// Upstream reports a non-2xx response from a vendor
func Upstream(vendor string, status int, body string) *DomainError {
	if len(body) > maxBodySnippet {
		cut := maxBodySnippet
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut] + "..."
	}
	return New(ErrTypeUpstream, fmt.Sprintf("%s returned status %d: %s", vendor, status, body), nil)
}

// Malformed reports a response body that does not have the expected shape
func Malformed(message string, err error) *DomainError {
	return New(ErrTypeMalformed, message, err)
}

// InvalidInput reports bad flags, config values or arguments
func InvalidInput(message string, err error) *DomainError {
	return New(ErrTypeInvalidInput, message, err)
}

// TypeOf returns the type of the first DomainError in err's chain
func TypeOf(err error) ErrorType {
	var domainErr *DomainError
	if stderrors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ErrTypeUnknown
}

// Is reports whether err carries a DomainError of the given type
func Is(err error, errType ErrorType) bool {
	return err != nil && TypeOf(err) == errType
}
