// Package parser reads header-prefixed numeric text files and totals their data lines.
package parser

// CommentMarker introduces a comment line in the block after the header.
const CommentMarker = "#"

// Kind classifies a line of a data file.
type Kind int

const (
	// KindHeader is the mandatory first line, always discarded.
	KindHeader Kind = iota
	// KindComment is a '#' line between the header and the first data line.
	KindComment
	// KindData is a line holding a base-10 integer.
	KindData
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindComment:
		return "comment"
	case KindData:
		return "data"
	default:
		return "unknown"
	}
}

// Line is a single classified line.
type Line struct {
	// Kind is the role the line plays in the file.
	Kind Kind

	// Num is the 1-based line number in the source.
	Num int

	// Text is the line content as read, without the line terminator.
	Text string

	// Value is the parsed integer for data lines, zero otherwise.
	Value int64
}

// Result is the outcome of totalling one source.
type Result struct {
	// Total is the exact sum of every data line.
	Total int64

	// Header is the discarded description line.
	Header string

	// CommentLines is the number of comment lines skipped.
	CommentLines int

	// DataLines is the number of lines that contributed to Total.
	DataLines int
}
