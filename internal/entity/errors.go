package entity

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated indicates that no valid session accompanies the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidCredentials indicates a failed email/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden indicates that the caller's role or ownership does not allow the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrNotFound indicates that a referenced record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("resource already exists")
	// ErrAccountBlocked indicates the account was blocked by an administrator.
	ErrAccountBlocked = errors.New("account is blocked")
	// ErrInvalidState indicates an operation that the record's lifecycle state does not allow.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnavailable indicates an optional integration that is not configured.
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError carries per-field messages. Step names the form step the
// fields belong to when the input was checked against a wizard definition.
type ValidationError struct {
	Step   string
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// BlockedError is returned for sessions or logins of a blocked account.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	if e.Reason == "" {
		return ErrAccountBlocked.Error()
	}
	return ErrAccountBlocked.Error() + ": " + e.Reason
}

func (e *BlockedError) Unwrap() error { return ErrAccountBlocked }

// Error pairs a sentinel kind with the message shown to API clients.
type Error struct {
	Kind    error
	Message string
}

func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }
