package mlapi

import (
	"errors"
	"strconv"
)

// Code classifies why a client call failed.
type Code string

const (
	// CodeDisabled: the integration is switched off; no request was made.
	CodeDisabled Code = "disabled"
	// CodeUnreachable: the service could not be reached at all.
	CodeUnreachable Code = "unreachable"
	// CodeTimeout: the per-call deadline expired or the call was canceled.
	CodeTimeout Code = "timeout"
	// CodeBadRequest: the service rejected the payload (HTTP 400/422).
	CodeBadRequest Code = "bad_request"
	// CodeNotReady: the service answered but has no model loaded (HTTP 503).
	CodeNotReady Code = "not_ready"
	// CodeRemote: any other server-side failure, including enveloped
	// `{"success":false}` bodies on HTTP 200.
	CodeRemote Code = "remote"
	// CodeDecode: the response body could not be decoded.
	CodeDecode Code = "decode"
)

// Error is the single failure shape every client method returns. Transport
// errors, timeouts, HTTP error statuses and enveloped failures all
// normalize into it.
type Error struct {
	// Op is the client operation, e.g. "predict".
	Op string
	// Code classifies the failure.
	Code Code
	// Status is the HTTP status when the server answered, else 0.
	Status int
	// Message is the server-provided reason when one was present.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	s := "mlapi " + e.Op + ": " + string(e.Code)
	if e.Status != 0 {
		s += " (http " + strconv.Itoa(e.Status) + ")"
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// IsDisabled reports whether err is the disabled-integration short circuit.
func IsDisabled(err error) bool { return hasCode(err, CodeDisabled) }

// IsUnavailable reports whether the service could not be reached.
func IsUnavailable(err error) bool { return hasCode(err, CodeUnreachable) }

// IsTimeout reports whether a per-call deadline expired.
func IsTimeout(err error) bool { return hasCode(err, CodeTimeout) }

// IsNotReady reports whether the service is up but has no model loaded.
func IsNotReady(err error) bool { return hasCode(err, CodeNotReady) }

func hasCode(err error, c Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == c
}
