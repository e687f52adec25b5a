package onesignal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// Classify turns a raw create notification response into a Result or an *Error.
// A status of 0 means the transport reported no status.
func Classify(req *http.Request, status int, body []byte) (*Result, error) {
	return classify(req, &Response{StatusCode: status, Header: http.Header{}, Body: body})
}

func classify(req *http.Request, resp *Response) (*Result, error) {
	data, errs, err := decodeResponse(req, resp)
	if err != nil {
		return nil, err
	}

	fail := func(msg string) (*Result, error) {
		return nil, newError(ErrUnexpectedResponseFormat, msg, req, resp, nil)
	}

	res := &Result{
		errors:                 errs.messages,
		invalidExternalUserIDs: errs.invalidExternalUserIDs,
		invalidPhoneNumbers:    errs.invalidPhoneNumbers,
		request:                req,
		response:               resp,
	}

	var ok bool
	if res.id, ok = optionalString(data[fields.ResponseID]); !ok {
		return fail("id must be a string")
	}
	if res.externalID, ok = optionalString(data[fields.ResponseExternalID]); !ok {
		return fail("external_id must be a string")
	}
	if raw, present := data[fields.ResponseRecipients]; present && !isNull(raw) {
		n, ok := nonNegativeInt(raw)
		if !ok {
			return fail("Invalid value of recipients")
		}
		res.recipients, res.hasRecipients = n, true
	}

	switch {
	case res.id != "" && len(res.errors) > 0:
		return fail("response has both id and errors")
	case res.id == "" && len(res.errors) == 0:
		return fail("response has neither id nor errors")
	}

	return res, nil
}

type responseErrors struct {
	messages               []string
	invalidExternalUserIDs []string
	invalidPhoneNumbers    []string
}

// decodeResponse applies the status and body checks shared by every endpoint.
// Any status >= 400 is returned as an error.
func decodeResponse(req *http.Request, resp *Response) (map[string]json.RawMessage, responseErrors, error) {
	var errs responseErrors

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == 0:
		return nil, errs, newError(ErrServiceUnavailable, "", req, resp, nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, errs, newError(ErrServerError, http.StatusText(resp.StatusCode), req, resp, nil)
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return nil, errs, newError(ErrServerError, "Response body is empty", req, resp, nil)
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || data == nil {
		return nil, errs, newError(ErrServerError, "Response body is not a valid JSON", req, resp, err)
	}

	errs, err := decodeErrors(data[fields.ResponseErrors])
	if err != nil {
		return nil, errs, newError(ErrUnexpectedResponseFormat, err.Error(), req, resp, nil)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if len(errs.messages) > 0 {
			return nil, errs, newError(ErrClientError, errs.messages[0], req, resp, nil)
		}
		return nil, errs, newError(ErrUnexpectedResponseFormat, "error status without error message", req, resp, nil)
	}

	return data, errs, nil
}

// decodeErrors accepts a list of strings, a list of objects or a single object.
func decodeErrors(raw json.RawMessage) (responseErrors, error) {
	var errs responseErrors
	if len(raw) == 0 || isNull(raw) {
		return errs, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return errs, fmt.Errorf("errors: %w", err)
	}

	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return errs, nil
		}
		switch v[0].(type) {
		case string:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return errs, errors.New("errors must be a list of strings")
				}
				errs.messages = append(errs.messages, s)
			}
			return errs, nil
		case map[string]any:
			for _, item := range v {
				obj, ok := item.(map[string]any)
				if !ok {
					return errs, errors.New("errors must be a list of objects")
				}
				if err := errs.addStructured(obj); err != nil {
					return errs, err
				}
			}
			return errs, nil
		default:
			return errs, errors.New("errors[0] must be a string or an object")
		}
	case map[string]any:
		return errs, errs.addStructured(v)
	default:
		return errs, errors.New("errors must be a list or an object")
	}
}

func (e *responseErrors) addStructured(obj map[string]any) error {
	for key, target := range map[string]*[]string{
		fields.ResponseInvalidExternalUserIDs: &e.invalidExternalUserIDs,
		fields.ResponseInvalidPhoneNumbers:    &e.invalidPhoneNumbers,
	} {
		raw, ok := obj[key]
		if !ok || raw == nil {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("errors.%s must be a list", key)
		}
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("errors.%s must contain strings", key)
			}
			*target = append(*target, s)
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// optionalString accepts an absent key, null or a JSON string.
func optionalString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || isNull(raw) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func nonNegativeInt(raw json.RawMessage) (int, bool) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
