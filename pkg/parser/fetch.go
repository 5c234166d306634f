package parser

import (
	"context"
	"fmt"
	"net/http"
)

// Fetch requests url and returns its body as a LineSource.
// The caller must Close the source to release the response body.
func Fetch(ctx context.Context, url string, opts ...Option) (*ReaderSource, error) {
	o := newOpenOptions(opts)

	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "tally")
	req.Header.Set("Accept", "text/plain, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: server returned status %d", url, resp.StatusCode)
	}

	r, err := decode(resp.Body, o.encoding)
	if err != nil {
		_ = resp.Body.Close()
		return nil, err
	}

	src := NewReaderSource(r, url)
	src.closer = resp.Body
	return src, nil
}
