package http

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

type transportOptions struct {
	insecure bool
}

// TransportOption configures the HTTP transport.
type TransportOption func(*transportOptions)

// WithInsecure skips TLS certificate verification.
func WithInsecure(insecure bool) TransportOption {
	return func(o *transportOptions) {
		o.insecure = insecure
	}
}

// GetHTTPTransport returns a transport with sane connection limits.
func GetHTTPTransport(opts ...TransportOption) *http.Transport {
	options := &transportOptions{}
	for _, opt := range opts {
		opt(options)
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if options.insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return transport
}

// NewRetryableClient returns an *http.Client that retries transient failures
// with exponential backoff. Used for the package-listing and gist endpoints;
// manifest probes go through go-containerregistry and are not retried.
func NewRetryableClient(opts ...TransportOption) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	rc.HTTPClient = &http.Client{
		Transport: GetHTTPTransport(opts...),
		Timeout:   30 * time.Second,
	}
	return rc.StandardClient()
}
