package onesignal

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrymomot/onesignal/pkg/fields"
	"github.com/dmitrymomot/onesignal/pkg/notification"
)

// ExportOptions narrows a players CSV export. Zero values are omitted.
type ExportOptions struct {
	// ExtraFields adds columns such as "location", "country", "rooted",
	// "ip", "external_user_id", "web_auth" and "web_p256".
	ExtraFields     []string
	LastActiveSince time.Time
	SegmentName     string
}

// ExportResult points at the generated file.
type ExportResult struct {
	csvFileURL string
	request    *http.Request
	response   *Response
}

// CSVFileURL is the gzip-compressed CSV location. The file may take a while
// to appear; see export.Downloader.
func (r *ExportResult) CSVFileURL() string { return r.csvFileURL }

func (r *ExportResult) Request() *http.Request { return r.request }

func (r *ExportResult) Response() *Response { return r.response }

// ExportPlayers asks OneSignal to generate a CSV dump of the app's players.
func (c *Client) ExportPlayers(ctx context.Context, opts ExportOptions) (*ExportResult, error) {
	doc := notification.NewDocument()
	if len(opts.ExtraFields) > 0 {
		_ = doc.Set("extra_fields", opts.ExtraFields)
	}
	if !opts.LastActiveSince.IsZero() {
		_ = doc.Set("last_active_since", strconv.FormatInt(opts.LastActiveSince.Unix(), 10))
	}
	if opts.SegmentName != "" {
		_ = doc.Set("segment_name", opts.SegmentName)
	}

	endpoint := c.opts.BaseURL() + "/players/csv_export?" + url.Values{fields.AppID: {c.opts.AppID()}}.Encode()

	req, resp, err := c.do(ctx, http.MethodPost, endpoint, doc)
	if err != nil {
		return nil, err
	}

	data, _, err := decodeResponse(req, resp)
	if err != nil {
		return nil, err
	}

	fileURL, ok := optionalString(data[fields.ResponseCSVFileURL])
	if !ok || fileURL == "" {
		return nil, newError(ErrUnexpectedResponseFormat, "csv_file_url is missing", req, resp, nil)
	}

	c.logger.DebugContext(ctx, "players export requested", "csv_file_url", fileURL)

	return &ExportResult{csvFileURL: fileURL, request: req, response: resp}, nil
}
