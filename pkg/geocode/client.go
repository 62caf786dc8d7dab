// Package geocode provides one-line address geocoding against the Census
// Geocoder service, or any service speaking the same JSON contract.
package geocode

import (
	"context"
	"net/http"
	"time"
)

// Client geocodes one-line street addresses.
type Client interface {
	// Geocode geocodes a single one-line address.
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Result holds the geocoding output for an address. X is longitude and Y is
// latitude, as the service returns them. An unmatched address is reported
// with Matched false, not an error.
type Result struct {
	X              float64
	Y              float64
	MatchedAddress string
	Matched        bool
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. Ignored when a custom HTTP
// client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(g *geocoder) {
		g.timeout = d
	}
}

// WithUserAgent sets the User-Agent header on requests.
func WithUserAgent(ua string) Option {
	return func(g *geocoder) {
		g.userAgent = ua
	}
}

type geocoder struct {
	prefixURL  string
	suffixURL  string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

// NewClient creates a geocoding Client. Request URLs are built by
// concatenating prefixURL, the url-encoded address, and suffixURL.
func NewClient(prefixURL, suffixURL string, opts ...Option) Client {
	g := &geocoder{
		prefixURL: prefixURL,
		suffixURL: suffixURL,
		timeout:   30 * time.Second,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.httpClient == nil {
		g.httpClient = &http.Client{Timeout: g.timeout}
	}
	return g
}
