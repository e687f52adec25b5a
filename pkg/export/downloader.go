package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/dmitrymomot/onesignal/pkg/logger"
)

// DefaultFileName is used when the export URL has no usable file name.
const DefaultFileName = "players.csv.gz"

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithHTTPClient sets the client used to fetch export files.
func WithHTTPClient(d Doer) Option {
	return func(dl *Downloader) {
		dl.doer = d
	}
}

// WithLogger sets the logger. Nil keeps the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(dl *Downloader) {
		dl.logger = l
	}
}

// Downloader fetches generated export files. It is safe for concurrent use.
type Downloader struct {
	doer   Doer
	logger *slog.Logger
}

// NewDownloader creates a Downloader. Without WithHTTPClient it uses a
// client with a five minute timeout.
func NewDownloader(opts ...Option) *Downloader {
	d := &Downloader{}
	for _, opt := range opts {
		opt(d)
	}
	if d.doer == nil {
		d.doer = &http.Client{Timeout: 5 * time.Minute}
	}
	d.logger = logger.OrDiscard(d.logger).With(logger.Component("export"))
	return d
}

// Download streams the file at fileURL into sink and returns the sink location.
// It returns ErrNotReady while OneSignal is still generating the file.
func (d *Downloader) Download(ctx context.Context, fileURL string, sink Sink) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: invalid url %q", ErrDownloadFailed, fileURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	start := time.Now()
	resp, err := d.doer.Do(req)
	if err != nil {
		d.logger.ErrorContext(ctx, "export download failed", logger.URL(fileURL), logger.Error(err))
		return "", fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", ErrNotReady
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: unexpected status %d", ErrDownloadFailed, resp.StatusCode)
	}

	location, err := sink.Store(ctx, fileName(u), resp.Body)
	if err != nil {
		d.logger.ErrorContext(ctx, "export store failed", logger.URL(fileURL), logger.Error(err))
		return "", err
	}

	d.logger.InfoContext(ctx, "export downloaded",
		logger.URL(fileURL),
		slog.String("location", location),
		logger.Duration(time.Since(start)),
	)
	return location, nil
}

func fileName(u *url.URL) string {
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return DefaultFileName
	}
	return name
}
