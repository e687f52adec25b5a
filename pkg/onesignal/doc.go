// Package onesignal is a client for the OneSignal REST API.
//
// A Client sends notifications built with package notification and
// classifies every response into a *Result or an *Error. It performs exactly
// one HTTP request per call: there are no retries, no caching and no rate
// limiting. Limits enforced by OneSignal (200 filters, 2000 ids per request)
// come back as ErrClientError.
//
// # Usage
//
//	cfg, err := onesignal.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	client, err := onesignal.NewFromConfig(cfg, onesignal.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	res, err := client.Send(ctx, notification.NewContentsPush(notification.Text("Hello")).
//	    SetIncludedSegments(fields.SegmentSubscribedUsers))
//	switch {
//	case errors.Is(err, notification.ErrInvalidArgument):
//	    // rejected locally, nothing was sent
//	case errors.Is(err, onesignal.ErrClientError):
//	    // 4xx, err.Error() carries the first API error
//	case err != nil:
//	    // network, 5xx or malformed response
//	case res.ID() == "":
//	    // nobody was targeted, res.Errors() explains why
//	}
//
// # Errors
//
// Transport failures are ErrNetwork (connectivity, DNS, TLS), ErrRequestBuild
// (the request could not be built) or ErrTransfer. Response failures are
// ErrServiceUnavailable, ErrServerError, ErrClientError and
// ErrUnexpectedResponseFormat. All of them are *Error values carrying the
// outgoing request (see RequestError) and, for response failures, the
// received *Response.
//
// A notification that reached nobody is not an error: the Result has an empty
// ID and the API message in Errors. Result.Err converts that case into
// ErrAllIncludedPlayersAreNotSubscribed for callers that prefer error flow.
//
// # Default segment
//
// ClientOptions.WithDefaultSegment names a segment used for notifications that
// carry no included segments, filters or device ids.
//
// # Configuration
//
// LoadConfig reads ONESIGNAL_APP_ID, ONESIGNAL_REST_API_KEY, ONESIGNAL_BASE_URL,
// ONESIGNAL_DEFAULT_SEGMENT, ONESIGNAL_TIMEOUT and ONESIGNAL_DEBUG, after
// loading optional .env files.
package onesignal
