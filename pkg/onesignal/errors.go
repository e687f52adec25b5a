package onesignal

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrInvalidConfig = errors.New("onesignal: invalid config")

	// Transport failures, no response was obtained.
	ErrNetwork      = errors.New("onesignal: network error")
	ErrRequestBuild = errors.New("onesignal: request could not be built")
	ErrTransfer     = errors.New("onesignal: transfer error")

	// Remote failures.
	ErrServiceUnavailable       = errors.New("onesignal: service unavailable")
	ErrServerError              = errors.New("onesignal: server error")
	ErrClientError              = errors.New("onesignal: client error")
	ErrUnexpectedResponseFormat = errors.New("onesignal: unexpected response format")

	// ErrAllIncludedPlayersAreNotSubscribed is never returned by the client.
	// Result.Err offers it for callers that treat zero recipients as a failure.
	ErrAllIncludedPlayersAreNotSubscribed = errors.New("onesignal: all included players are not subscribed")
)

// RequestError is implemented by errors that carry the outgoing request.
type RequestError interface {
	error
	Request() *http.Request
}

// Error is returned for every transport and remote failure.
// Match the failure class with errors.Is against the sentinels above.
type Error struct {
	Kind    error
	Message string
	Err     error

	request  *http.Request
	response *Response
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Request returns the outgoing request. It is nil only when the request
// could not be constructed.
func (e *Error) Request() *http.Request {
	return e.request
}

// Response returns the received response, nil for transport failures.
func (e *Error) Response() *Response {
	return e.response
}

// StatusCode returns the response status, 0 for transport failures.
func (e *Error) StatusCode() int {
	if e.response == nil {
		return 0
	}
	return e.response.StatusCode
}

func newError(kind error, msg string, req *http.Request, resp *Response, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause, request: req, response: resp}
}
