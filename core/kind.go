/*Package core defines the shared vocabulary of the reflora backend:
the error kinds used across all layers and the notification interface
for backend change events.
*/
package core

import "errors"

// Kind classifies an error for its transport representation. Every error
// that crosses a package boundary carries exactly one kind; untagged
// errors count as server errors.
type Kind string

// all error kinds
const (
	KindValidation      Kind = "validation"
	KindUnauthenticated Kind = "unauthenticated"
	KindNotFound        Kind = "not_found"
	KindConflict        Kind = "conflict"
	KindServer          Kind = "server"
)

// Error is a kinded error. Message is safe to show to a client; Err is
// the internal cause and only ever appears in logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the internal cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError tags a client-caused error in a request payload
func ValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// UnauthenticatedError tags a failure to establish the acting user
func UnauthenticatedError(message string) error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

// NotFoundError tags an absent resource. Resources owned by another user
// are reported with this same kind, so they are indistinguishable from
// absent ones.
func NotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// ConflictError tags a uniqueness violation
func ConflictError(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// ServerError wraps an internal failure. The cause stays available for
// logging through Unwrap; clients only ever see the generic message.
func ServerError(err error) error {
	return &Error{Kind: KindServer, Message: "internal server error", Err: err}
}

// KindOf returns the kind of err, unwrapping as necessary. Errors that
// carry no kind are server errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServer
}

// MessageOf returns the client-safe message of err. Errors that carry no
// kind yield the generic server error message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
