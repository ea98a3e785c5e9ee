// Package meshrr defines the resolver's error taxonomy (§7): a small,
// closed set of error kinds callers can discriminate with errors.As,
// rather than parsing error strings.
package meshrr

import "fmt"

// Kind is one of the five error categories named in §7.
type Kind string

const (
	KindValidationFail     Kind = "ValidationFail"
	KindStalemate          Kind = "Stalemate"
	KindPersistenceFail    Kind = "PersistenceFail"
	KindTransportInvariant Kind = "TransportInvariant"
	KindFatal              Kind = "Fatal"
)

// Error wraps an underlying cause with its §7 classification. Handlers
// themselves never return Error — per §7 "no exception propagates out
// of a handler" — this type surfaces at the transport and persistence
// boundaries where a caller needs to decide how to react.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind around an existing cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}
