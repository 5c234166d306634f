package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single line read by a ReaderSource.
const maxLineSize = 1024 * 1024

// SliceSource implements LineSource over an in-memory list of lines.
type SliceSource struct {
	lines []string
	pos   int
}

// NewSliceSource creates a LineSource that yields lines in order.
func NewSliceSource(lines []string) *SliceSource {
	return &SliceSource{lines: lines}
}

// Next returns the next line, or io.EOF once every line has been returned.
func (s *SliceSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

// ReaderSource implements LineSource by scanning lines from a reader.
// Trailing "\r" is dropped so CRLF files read the same as LF files.
type ReaderSource struct {
	name    string
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
}

// NewReaderSource creates a LineSource over r. The source does not take
// ownership of r; Close is a no-op unless the source was opened by this
// package.
func NewReaderSource(r io.Reader, name string) *ReaderSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &ReaderSource{
		name:    name,
		scanner: scanner,
	}
}

// Name returns the path, URL or label the source reads from.
func (s *ReaderSource) Name() string {
	return s.name
}

// LinesRead returns the number of lines returned so far.
func (s *ReaderSource) LinesRead() int {
	return s.line
}

// Next returns the next line. Returns io.EOF when the reader is exhausted.
func (s *ReaderSource) Next() (string, error) {
	if s.scanner.Scan() {
		s.line++
		return s.scanner.Text(), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", s.name, err)
	}
	return "", io.EOF
}

// Close releases the underlying file or response body, if the source owns one.
func (s *ReaderSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// OpenFile opens a local file as a LineSource. The caller must Close it.
func OpenFile(path string, opts ...Option) (*ReaderSource, error) {
	o := newOpenOptions(opts)

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	r, err := decode(f, o.encoding)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	src := NewReaderSource(r, path)
	src.closer = f
	return src, nil
}

// Stdin is the location that selects standard input in Open.
const Stdin = "-"

// IsURL reports whether location is fetched over HTTP rather than opened locally.
func IsURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open opens location as a LineSource: an http(s) URL is fetched, "-" reads
// standard input, anything else is a local file path. The caller must Close it.
func Open(ctx context.Context, location string, opts ...Option) (*ReaderSource, error) {
	switch {
	case IsURL(location):
		return Fetch(ctx, location, opts...)
	case location == Stdin:
		o := newOpenOptions(opts)
		r, err := decode(o.stdin, o.encoding)
		if err != nil {
			return nil, err
		}
		return NewReaderSource(r, "stdin"), nil
	default:
		return OpenFile(location, opts...)
	}
}
