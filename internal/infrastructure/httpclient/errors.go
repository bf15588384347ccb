package httpclient

import (
	"errors"
	"fmt"
)

// Kind classifies how a call failed.
type Kind int

const (
	// KindResponse means the backend answered with a non-2xx status.
	KindResponse Kind = iota + 1
	// KindNoResponse means the request was sent but no response arrived.
	KindNoResponse
	// KindSetup means the request could not be built.
	KindSetup
)

func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindNoResponse:
		return "no_response"
	case KindSetup:
		return "setup"
	default:
		return "unknown"
	}
}

// RequestInfo identifies the request an Error belongs to.
type RequestInfo struct {
	Method string
	URL    string
	Route  string
}

// Error is the normalized failure returned by every Client call.
// Response is set only for KindResponse.
type Error struct {
	Kind     Kind
	Request  RequestInfo
	Response *Response
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Request.Method == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s: %s", e.Request.Method, e.Request.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the response status, or 0 when no response was received.
func (e *Error) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsStatus reports whether err is a KindResponse error with the given status.
func IsStatus(err error, status int) bool {
	e, ok := AsError(err)
	return ok && e.Kind == KindResponse && e.StatusCode() == status
}

func responseError(info RequestInfo, resp *Response) *Error {
	return &Error{
		Kind:     KindResponse,
		Request:  info,
		Response: resp,
		Message:  fmt.Sprintf("request failed with status code %d", resp.StatusCode),
	}
}

func noResponseError(info RequestInfo, err error) *Error {
	return &Error{
		Kind:    KindNoResponse,
		Request: info,
		Message: "network error: " + err.Error(),
		Err:     err,
	}
}

func setupError(info RequestInfo, err error) *Error {
	return &Error{
		Kind:    KindSetup,
		Request: info,
		Message: err.Error(),
		Err:     err,
	}
}
