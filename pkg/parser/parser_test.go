package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    int64
		wantErr error
	}{
		{
			name:  "comment block before data",
			lines: []string{"description", "#comment A", "#comment B", "22", "29", "2"},
			want:  53,
		},
		{
			name:  "no comment lines",
			lines: []string{"description", "16", "12"},
			want:  28,
		},
		{
			name:    "non-numeric data",
			lines:   []string{"description", "#comment", "not_a_number"},
			wantErr: ErrMalformedData,
		},
		{
			name:    "header only",
			lines:   []string{"description"},
			wantErr: ErrExhaustedSource,
		},
		{
			name:    "only comments",
			lines:   []string{"description", "#only comments", "#still a comment"},
			wantErr: ErrExhaustedSource,
		},
		{
			name:    "empty source",
			lines:   nil,
			wantErr: ErrExhaustedSource,
		},
		{
			name:  "comment marker as first line is the header",
			lines: []string{"#not a comment, a header", "5"},
			want:  5,
		},
		{
			name:  "surrounding whitespace",
			lines: []string{"description", "  #indented comment", "      22   ", "\t-7\t"},
			want:  15,
		},
		{
			name:    "blank data line",
			lines:   []string{"description", "1", "", "2"},
			wantErr: ErrMalformedData,
		},
		{
			name:    "comment after data",
			lines:   []string{"description", "1", "#late comment"},
			wantErr: ErrMalformedData,
		},
		{
			name:    "trailing garbage",
			lines:   []string{"description", "12abc"},
			wantErr: ErrMalformedData,
		},
		{
			name:    "value out of range",
			lines:   []string{"description", "99999999999999999999"},
			wantErr: ErrMalformedData,
		},
		{
			name:    "sum overflows",
			lines:   []string{"description", "9223372036854775807", "1"},
			wantErr: ErrSumOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SumLines(tt.lines)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSum_CommentsNeverAffectResult(t *testing.T) {
	data := []string{"22", "29", "2", "16"}
	for n := 0; n < 5; n++ {
		lines := []string{"description"}
		for i := 0; i < n; i++ {
			lines = append(lines, fmt.Sprintf("# comment %d", i))
		}
		lines = append(lines, data...)

		res, err := Sum(NewSliceSource(lines))
		require.NoError(t, err)
		assert.Equal(t, int64(69), res.Total, "with %d comment lines", n)
		assert.Equal(t, n, res.CommentLines)
		assert.Equal(t, len(data), res.DataLines)
	}
}

func TestSum_ExactForAnyLength(t *testing.T) {
	for n := 1; n <= 50; n++ {
		lines := []string{"description"}
		var want int64
		for i := 1; i <= n; i++ {
			lines = append(lines, strconv.Itoa(i))
			want += int64(i)
		}
		got, err := SumLines(lines)
		require.NoError(t, err)
		// Triangular number n(n+1)/2
		assert.Equal(t, int64(n*(n+1)/2), got)
		assert.Equal(t, want, got)
	}
}

func TestSum_Idempotent(t *testing.T) {
	lines := []string{"description", "#comment A", "#comment B", "22", "29", "2"}

	first, err := Sum(NewSliceSource(lines))
	require.NoError(t, err)
	second, err := Sum(NewSliceSource(lines))
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Sum() mismatch on second run (-first +second):\n%s", diff)
	}
}

func TestSum_Result(t *testing.T) {
	res, err := Sum(NewSliceSource([]string{"Fox pelts", "#Source", "#Table", "10", "20"}))
	require.NoError(t, err)

	want := &Result{
		Total:        30,
		Header:       "Fox pelts",
		CommentLines: 2,
		DataLines:    2,
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Sum() mismatch (-want +got):\n%s", diff)
	}
}

func TestSum_MalformedDataError(t *testing.T) {
	_, err := Sum(NewSliceSource([]string{"description", "#c", "4", "four"}))
	require.Error(t, err)

	var mde *MalformedDataError
	require.ErrorAs(t, err, &mde)
	assert.Equal(t, 4, mde.Num)
	assert.Equal(t, "four", mde.Text)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.True(t, IsDataError(err))
}

// countingSource records how many lines were requested.
type countingSource struct {
	lines []string
	calls int
}

func (s *countingSource) Next() (string, error) {
	s.calls++
	if s.calls > len(s.lines) {
		return "", io.EOF
	}
	return s.lines[s.calls-1], nil
}

func TestSum_ReadsSourceOnce(t *testing.T) {
	src := &countingSource{lines: []string{"h", "#c", "1", "2", "3"}}
	_, err := Sum(src)
	require.NoError(t, err)
	// Every line plus the final io.EOF
	assert.Equal(t, len(src.lines)+1, src.calls)
}

func TestSum_StopsAtFirstMalformedLine(t *testing.T) {
	src := &countingSource{lines: []string{"h", "1", "x", "2", "3"}}
	_, err := Sum(src)
	require.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 3, src.calls)
}

type failingSource struct {
	lines []string
	err   error
	pos   int
}

func (s *failingSource) Next() (string, error) {
	if s.pos >= len(s.lines) {
		return "", s.err
	}
	s.pos++
	return s.lines[s.pos-1], nil
}

func TestSum_SourceErrorIsPropagated(t *testing.T) {
	readErr := errors.New("connection reset")

	for _, lines := range [][]string{nil, {"h"}, {"h", "1"}} {
		_, err := Sum(&failingSource{lines: lines, err: readErr})
		require.ErrorIs(t, err, readErr)
		assert.False(t, IsDataError(err))
	}
}

func TestWalk_Classifies(t *testing.T) {
	var got []Line
	err := Walk(NewSliceSource([]string{"Header", "#a", "  7 "}), func(l Line) error {
		got = append(got, l)
		return nil
	})
	require.NoError(t, err)

	want := []Line{
		{Kind: KindHeader, Num: 1, Text: "Header"},
		{Kind: KindComment, Num: 2, Text: "#a"},
		{Kind: KindData, Num: 3, Text: "  7 ", Value: 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk() mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_CallbackErrorStopsWalk(t *testing.T) {
	stop := errors.New("stop")
	seen := 0
	err := Walk(NewSliceSource([]string{"h", "1", "2", "3"}), func(l Line) error {
		seen++
		if l.Kind == KindData {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, seen)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "header", KindHeader.String())
	assert.Equal(t, "comment", KindComment.String())
	assert.Equal(t, "data", KindData.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
