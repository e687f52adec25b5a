package onesignal

import (
	"net/http"
	"slices"
)

// Response is a snapshot of a received HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Result is the outcome of a create notification call.
//
// Exactly one of ID and Errors is non-empty. A result without an id means
// nobody was targeted (the API reports "All included players are not
// subscribed"); see Err.
type Result struct {
	id                     string
	externalID             string
	recipients             int
	hasRecipients          bool
	errors                 []string
	invalidExternalUserIDs []string
	invalidPhoneNumbers    []string

	request  *http.Request
	response *Response
}

// ID returns the notification id, empty when nothing was sent.
func (r *Result) ID() string { return r.id }

// ExternalID returns the idempotency key echoed by the API.
func (r *Result) ExternalID() string { return r.externalID }

// Recipients returns the recipient count. Newer API versions may omit it.
func (r *Result) Recipients() (int, bool) { return r.recipients, r.hasRecipients }

// Errors returns the string errors reported with a successful status, or nil.
func (r *Result) Errors() []string { return slices.Clone(r.errors) }

// InvalidExternalUserIDs lists external ids the API could not resolve.
func (r *Result) InvalidExternalUserIDs() []string { return slices.Clone(r.invalidExternalUserIDs) }

// InvalidPhoneNumbers lists phone numbers the API rejected.
func (r *Result) InvalidPhoneNumbers() []string { return slices.Clone(r.invalidPhoneNumbers) }

// Request returns the outgoing request.
func (r *Result) Request() *http.Request { return r.request }

// Response returns the received response.
func (r *Result) Response() *Response { return r.response }

// Err returns an *Error of kind ErrAllIncludedPlayersAreNotSubscribed when the
// notification was not sent to anyone, nil otherwise.
func (r *Result) Err() error {
	if r.id != "" {
		return nil
	}
	msg := ""
	if len(r.errors) > 0 {
		msg = r.errors[0]
	}
	return newError(ErrAllIncludedPlayersAreNotSubscribed, msg, r.request, r.response, nil)
}
