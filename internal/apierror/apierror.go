// Package apierror defines the error taxonomy every operation maps its
// failures into, plus the response envelope clients receive. Handlers never
// build ad-hoc error responses; they translate an *apierror.Error (or wrap an
// unexpected one) so internals are never leaked.
package apierror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota // missing/malformed input
	KindNotFound               // record or sub-record absent
	KindConflict               // duplicate signature, stale version
	KindStorage                // datastore / blob store failure
	KindInternal               // unexpected
)

type Error struct {
	Kind Kind
	Msg  string // summary shown to the caller
	Err  error  // underlying cause, surfaced in details
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the error kind to its HTTP status. Conflict maps to 400, not
// 409: the frontend treats a duplicate firma as a bad request.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }
func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Msg: msg} }

func Storage(msg string, err error) *Error  { return &Error{Kind: KindStorage, Msg: msg, Err: err} }
func Internal(msg string, err error) *Error { return &Error{Kind: KindInternal, Msg: msg, Err: err} }

// Envelope is the canonical error body: a summary plus the underlying
// message. No stack traces, no SQL.
type Envelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ToEnvelope converts any error into the response envelope and its status.
// Non-taxonomy errors are treated as internal.
func ToEnvelope(err error) (int, Envelope) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal("Error interno", err)
	}
	env := Envelope{Error: apiErr.Msg}
	if apiErr.Err != nil {
		env.Details = apiErr.Err.Error()
	}
	return apiErr.Status(), env
}
