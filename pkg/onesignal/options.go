package onesignal

import (
	"fmt"
	"log/slog"
	"strings"
)

// ClientOptions identifies the app and the API endpoint.
// It is a value type: With* methods return modified copies.
type ClientOptions struct {
	appID          string
	restAPIKey     string
	baseURL        string
	defaultSegment string
}

// NewClientOptions returns options for the production API.
func NewClientOptions(appID, restAPIKey string) ClientOptions {
	return ClientOptions{appID: appID, restAPIKey: restAPIKey}
}

// WithBaseURL overrides the API root. An empty url restores the default.
func (o ClientOptions) WithBaseURL(url string) ClientOptions {
	o.baseURL = strings.TrimRight(url, "/")
	return o
}

// WithDefaultSegment sets the segment used when a notification has no targeting.
func (o ClientOptions) WithDefaultSegment(segment string) ClientOptions {
	o.defaultSegment = segment
	return o
}

func (o ClientOptions) AppID() string          { return o.appID }
func (o ClientOptions) RESTAPIKey() string     { return o.restAPIKey }
func (o ClientOptions) DefaultSegment() string { return o.defaultSegment }

// BaseURL returns the API root without a trailing slash.
func (o ClientOptions) BaseURL() string {
	if o.baseURL == "" {
		return DefaultBaseURL
	}
	return o.baseURL
}

// Validate requires an app id and a REST API key.
func (o ClientOptions) Validate() error {
	if strings.TrimSpace(o.appID) == "" {
		return fmt.Errorf("%w: app id is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(o.restAPIKey) == "" {
		return fmt.Errorf("%w: REST API key is required", ErrInvalidConfig)
	}
	return nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. Nil is ignored.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithLogger sets the logger. Nil discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDebug adds request bodies to debug log records.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}
