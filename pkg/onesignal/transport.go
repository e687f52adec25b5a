package onesignal

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// Doer sends one HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a pooled client. A non-positive timeout disables the client timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// classifyTransport maps an error returned by Doer.Do to ErrNetwork,
// ErrRequestBuild or ErrTransfer.
func classifyTransport(err error) error {
	cause := err
	var uerr *url.Error
	if errors.As(err, &uerr) {
		// *url.Error satisfies net.Error itself, look at what it wraps.
		cause = uerr.Err
	}

	switch {
	case errors.Is(cause, ErrNetwork):
		return ErrNetwork
	case errors.Is(cause, ErrRequestBuild):
		return ErrRequestBuild
	case errors.Is(cause, ErrTransfer):
		return ErrTransfer
	case isNetworkError(cause):
		return ErrNetwork
	default:
		return ErrTransfer
	}
}

func isNetworkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var (
		opErr       *net.OpError
		dnsErr      *net.DNSError
		addrErr     *net.AddrError
		netErr      net.Error
		verifyErr   *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		authErr     x509.UnknownAuthorityError
		hostErr     x509.HostnameError
		invalidCert x509.CertificateInvalidError
	)
	return errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.As(err, &addrErr) ||
		errors.As(err, &netErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &authErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidCert)
}

// checkRequestURL rejects URLs the transport cannot send to.
func checkRequestURL(u *url.URL) error {
	switch u.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
