// Package domain defines the core entities and the domain error taxonomy of
// the user backend.
//
// This file implements the tagged error type used by all business logic.
// Services signal failure with a small, closed vocabulary of kinds instead of
// transport status codes; the HTTP layer owns the kind→status translation.
//
// Conventions:
//   - A failing operation returns exactly one *Error per call.
//   - Messages are human-readable and safe to surface to API clients.
//   - Lookups that find nothing return an absent signal (nil/false), never an
//     *Error; the transport layer decides whether absence is a 404.
package domain

// ErrorKind classifies a domain failure. The set is closed: adding a kind
// requires a matching entry in the HTTP status table of the handlers package.
type ErrorKind string

const (
	KindValidation   ErrorKind = "Validation"
	KindNotFound     ErrorKind = "NotFound"
	KindBadRequest   ErrorKind = "BadRequest"
	KindUnauthorized ErrorKind = "Unauthorized"
	KindForbidden    ErrorKind = "Forbidden"
	KindConflict     ErrorKind = "Conflict"
	KindInternal     ErrorKind = "Internal"
)

// Error is the canonical domain error: a kind from the closed taxonomy plus a
// client-safe, human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

// E constructs a new *Error with the given kind and message.
func E(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Error implements the built-in error interface. Only the message is
// rendered; the kind travels as the struct field so classification never
// depends on string parsing.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// ErrorKind exposes the kind by name. It exists for callers that only see a
// plain error value and want to classify it without importing the concrete
// type (the name-based fallback path in the HTTP error handler).
func (e *Error) ErrorKind() string { return string(e.Kind) }

// Convenience constructors, one per taxonomy member.

// Validation signals failed input validation (HTTP 400).
func Validation(msg string) *Error { return E(KindValidation, msg) }

// NotFound signals a required entity that does not exist (HTTP 404).
func NotFound(msg string) *Error { return E(KindNotFound, msg) }

// BadRequest signals a malformed request outside field validation (HTTP 400).
func BadRequest(msg string) *Error { return E(KindBadRequest, msg) }

// Unauthorized signals a missing or unverifiable identity (HTTP 401).
func Unauthorized(msg string) *Error { return E(KindUnauthorized, msg) }

// Forbidden signals an authenticated caller lacking permission (HTTP 403).
func Forbidden(msg string) *Error { return E(KindForbidden, msg) }

// Conflict signals a domain-state conflict such as a duplicate (HTTP 409).
func Conflict(msg string) *Error { return E(KindConflict, msg) }

// Internal signals an unclassified server-side failure (HTTP 500).
func Internal(msg string) *Error { return E(KindInternal, msg) }
