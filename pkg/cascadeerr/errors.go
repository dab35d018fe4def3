// Package cascadeerr defines the closed error taxonomy shared by the
// store adapter, cascade engine, and ingress. Callers classify errors
// with errors.As against *Error rather than matching message text.
package cascadeerr

import (
	"errors"
	"fmt"
)

// Kind is one of the error categories named in the engine's error
// handling design. It is a closed set: adding a new kind means
// updating every switch that matches on it.
type Kind string

const (
	// StoreUnavailable means a read or write to the KV store failed.
	StoreUnavailable Kind = "StoreUnavailable"

	// StoreConflict is reserved for a future compare-and-swap backend.
	// The current last-writer-wins store never produces it.
	StoreConflict Kind = "StoreConflict"

	// InvalidTransition means an explicit state-change request named a
	// state the evaluator would never produce for that resource kind.
	InvalidTransition Kind = "InvalidTransition"

	// UnknownResource means a request named a resource with no
	// membership entry in the store.
	UnknownResource Kind = "UnknownResource"

	// RemediationUnavailable means the reconcile RPC failed after
	// exhausting its retry backoff.
	RemediationUnavailable Kind = "RemediationUnavailable"

	// Malformed means an ingress request failed to parse or normalize.
	Malformed Kind = "Malformed"
)

// Error is a classified error carrying enough context for a caller to
// decide whether to retry, surface a transition result, or drop the
// affected branch of a cascade.
type Error struct {
	Kind      Kind
	Message   string
	Resource  string
	Operation string
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Resource != "" && e.Operation != "":
		return fmt.Sprintf("%s: %s (resource=%s, op=%s): %v", e.Kind, e.Message, e.Resource, e.Operation, e.Err)
	case e.Resource != "":
		return fmt.Sprintf("%s: %s (resource=%s): %v", e.Kind, e.Message, e.Resource, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is lets errors.Is match on Kind alone, so callers can write
// errors.Is(err, &cascadeerr.Error{Kind: cascadeerr.StoreUnavailable}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithResource attaches the resource name this error occurred against.
func (e *Error) WithResource(name string) *Error {
	e.Resource = name
	return e
}

// WithOperation attaches the store/cascade operation this error occurred during.
func (e *Error) WithOperation(op string) *Error {
	e.Operation = op
	return e
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewStoreUnavailable(message string, err error) *Error {
	return newError(StoreUnavailable, message, err)
}

func NewInvalidTransition(message string, err error) *Error {
	return newError(InvalidTransition, message, err)
}

func NewUnknownResource(message string, err error) *Error {
	return newError(UnknownResource, message, err)
}

func NewRemediationUnavailable(message string, err error) *Error {
	return newError(RemediationUnavailable, message, err)
}

func NewMalformed(message string, err error) *Error {
	return newError(Malformed, message, err)
}

// Of returns the Kind of err, and ok=false if no *Error is found in
// its chain.
func Of(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// IsKind reports whether err is a *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	k, ok := Of(err)
	return ok && k == kind
}
