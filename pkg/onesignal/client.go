package onesignal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/onesignal/pkg/fields"
	"github.com/dmitrymomot/onesignal/pkg/logger"
	"github.com/dmitrymomot/onesignal/pkg/notification"
)

// Client talks to the OneSignal REST API.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	opts   ClientOptions
	doer   Doer
	logger *slog.Logger
	debug  bool
}

// New creates a client. Without WithHTTPClient it uses NewHTTPClient(30s).
func New(opts ClientOptions, options ...Option) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c := &Client{opts: opts}
	for _, opt := range options {
		opt(c)
	}
	if c.doer == nil {
		c.doer = NewHTTPClient(30 * time.Second)
	}
	c.logger = logger.OrDiscard(c.logger).With(logger.Component("onesignal"), logger.AppID(opts.AppID()))

	return c, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts ClientOptions, options ...Option) *Client {
	c, err := New(opts, options...)
	if err != nil {
		panic(err)
	}
	return c
}

// NewFromConfig creates a client from environment config.
// Options are applied after the config-derived ones.
func NewFromConfig(cfg Config, options ...Option) (*Client, error) {
	base := []Option{
		WithHTTPClient(NewHTTPClient(cfg.Timeout)),
		WithDebug(cfg.Debug),
	}
	return New(cfg.ClientOptions(), append(base, options...)...)
}

// Options returns the client options.
func (c *Client) Options() ClientOptions {
	return c.opts
}

// Send builds b and creates the notification.
func (c *Client) Send(ctx context.Context, b notification.Builder) (*Result, error) {
	n, err := b.Build()
	if err != nil {
		return nil, err
	}
	return c.CreateNotification(ctx, n)
}

// CreateNotification sends n with exactly one request.
//
// When n names no recipients and the client has a default segment, the
// request targets that segment. app_id is always the client's.
func (c *Client) CreateNotification(ctx context.Context, n *notification.Notification) (*Result, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: nil notification", notification.ErrInvalidArgument)
	}
	doc := n.Document()
	if !n.Targeted() && c.opts.DefaultSegment() != "" {
		_ = doc.Set(fields.IncludedSegments, []string{c.opts.DefaultSegment()})
	}
	doc.Delete(fields.AppID)
	_ = doc.Set(fields.AppID, c.opts.AppID())

	if id, ok := doc.Get(fields.ExternalID); ok {
		if s, ok := id.(string); ok && s != "" {
			ctx = logger.ContextWithAttrs(ctx, logger.ExternalID(s))
		}
	}

	req, resp, err := c.do(ctx, http.MethodPost, c.opts.BaseURL()+"/notifications", doc)
	if err != nil {
		return nil, err
	}

	res, err := classify(req, resp)
	if err != nil {
		c.logger.DebugContext(ctx, "notification rejected", logger.StatusCode(resp.StatusCode), logger.Error(err))
		return nil, err
	}

	attrs := []any{logger.NotificationID(res.ID())}
	if count, ok := res.Recipients(); ok {
		attrs = append(attrs, logger.Recipients(count))
	}
	c.logger.DebugContext(ctx, "notification created", attrs...)

	return res, nil
}

// do sends body as JSON and reads the whole response.
func (c *Client) do(ctx context.Context, method, url string, body *notification.Document) (*http.Request, *Response, error) {
	payload, err := body.MarshalJSON()
	if err != nil {
		return nil, nil, newError(ErrRequestBuild, "encode request body", nil, nil, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, newError(ErrRequestBuild, "", nil, nil, err)
	}
	req.Header.Set("Authorization", "Basic "+c.opts.RESTAPIKey())
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Accept", "application/json")
	if err := checkRequestURL(req.URL); err != nil {
		return nil, nil, newError(ErrRequestBuild, "", req, nil, err)
	}

	attrs := []any{logger.Method(method), logger.URL(url)}
	if c.debug {
		attrs = append(attrs, logger.Body(payload))
	}
	c.logger.DebugContext(ctx, "request started", attrs...)

	start := time.Now()
	httpResp, err := c.doer.Do(req)
	if err != nil {
		kind := classifyTransport(err)
		c.logger.ErrorContext(ctx, "request failed",
			logger.Method(method),
			logger.URL(url),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return nil, nil, newError(kind, "", req, nil, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "reading response failed", logger.URL(url), logger.Error(err))
		return nil, nil, newError(ErrTransfer, "read response body", req, nil, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       respBody,
	}

	attrs = []any{
		logger.Method(method),
		logger.URL(url),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	}
	if c.debug {
		attrs = append(attrs, logger.Body(respBody))
	}
	c.logger.DebugContext(ctx, "request finished", attrs...)

	return req, resp, nil
}
