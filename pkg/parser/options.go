package parser

import (
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultFetchTimeout bounds a URL fetch, including reading the body.
const DefaultFetchTimeout = 30 * time.Second

type openOptions struct {
	encoding   string
	timeout    time.Duration
	httpClient *http.Client
	stdin      io.Reader
}

// Option configures how a source is opened.
type Option func(*openOptions)

// WithEncoding decodes the source from the named charset (e.g. "latin1").
// An empty name or "utf-8" reads the bytes unchanged.
func WithEncoding(name string) Option {
	return func(o *openOptions) {
		o.encoding = name
	}
}

// WithTimeout sets the timeout for URL fetches.
func WithTimeout(d time.Duration) Option {
	return func(o *openOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithHTTPClient sets the client used for URL fetches.
func WithHTTPClient(c *http.Client) Option {
	return func(o *openOptions) {
		o.httpClient = c
	}
}

// WithStdin replaces os.Stdin as the reader behind the "-" location.
func WithStdin(r io.Reader) Option {
	return func(o *openOptions) {
		o.stdin = r
	}
}

func newOpenOptions(opts []Option) *openOptions {
	o := &openOptions{
		timeout: DefaultFetchTimeout,
		stdin:   os.Stdin,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
