package transport

import (
	"errors"
	"fmt"
)

// Kind classifies a failed request so callers can pick a recovery
// policy without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnauthorized means the bearer credential was rejected. The
	// session must be cleared and the user sent back to login.
	KindUnauthorized
	// KindNotFound means the resource does not exist (or is not
	// visible to the caller).
	KindNotFound
	// KindValidation means the server rejected the payload itself.
	KindValidation
	// KindNetwork covers timeouts and transport-level failures.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	}
	return "unknown"
}

// Error is the failure type every transport call returns on rejection.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from any error chain; non-transport errors
// report KindUnknown.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindUnknown
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}
