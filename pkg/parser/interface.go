package parser

// LineSource provides an ordered, forward-only sequence of text lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next line without its line terminator.
	// Returns io.EOF when no more lines are available; Walk treats any
	// other error as a read failure.
	Next() (string, error)
}

// ReadCloser is a LineSource that holds an underlying resource,
// such as an open file or an HTTP response body.
type ReadCloser interface {
	LineSource

	// Close releases any resources held by the source.
	Close() error
}
