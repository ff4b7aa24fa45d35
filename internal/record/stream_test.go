package record_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-recsplit/internal/record"
)

// errSink fails on the nth write (1-based).
type errSink struct {
	failAt int
	writes int
}

func (s *errSink) WriteLine(string) error {
	s.writes++
	if s.writes == s.failAt {
		return errors.New("disk full")
	}
	return nil
}

// cancelSink cancels a context after n writes.
type cancelSink struct {
	record.SliceSink
	cancel  context.CancelFunc
	cancelN int
}

func (s *cancelSink) WriteLine(line string) error {
	if err := s.SliceSink.WriteLine(line); err != nil {
		return err
	}
	if len(s.Lines) == s.cancelN {
		s.cancel()
	}
	return nil
}

func TestStream_MatchesProcess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      string
		mode       record.Mode
		fieldCount int
	}{
		{name: "csv mixed", input: "a,b,c\n1,2\n\n4,5,6\n", mode: record.Comma, fieldCount: 3},
		{name: "tsv no trailing newline", input: "a\tb\nc\td\te", mode: record.Tab, fieldCount: 2},
		{name: "crlf endings", input: "a,b\r\nc\r\n  \r\nd,e\r\n", mode: record.Comma, fieldCount: 2},
		{name: "empty body", input: "", mode: record.Comma, fieldCount: 1},
		{name: "only blanks", input: "\n \n\t\n", mode: record.Tab, fieldCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var good, bad record.SliceSink
			stats, err := record.Stream(context.Background(), strings.NewReader(tt.input), tt.mode, tt.fieldCount, &good, &bad)
			require.NoError(t, err)

			lines := splitBody(tt.input)
			want := record.Process(lines, tt.mode, tt.fieldCount)

			assert.Equal(t, want.Good, orEmpty(good.Lines))
			assert.Equal(t, want.Bad, orEmpty(bad.Lines))
			assert.Equal(t, len(lines), stats.Lines)
			assert.Equal(t, len(want.Good), stats.Good)
			assert.Equal(t, len(want.Bad), stats.Bad)
			assert.Equal(t, stats.Lines, stats.Good+stats.Bad+stats.Blank)
		})
	}
}

func TestStream_KeepsOriginalLine(t *testing.T) {
	t.Parallel()

	var good, bad record.SliceSink
	_, err := record.Stream(context.Background(), strings.NewReader(" a , b \r\n"), record.Comma, 2, &good, &bad)
	require.NoError(t, err)
	assert.Equal(t, []string{" a , b "}, good.Lines)
	assert.Empty(t, bad.Lines)
}

func TestStream_CarriageReturnEndings(t *testing.T) {
	t.Parallel()

	var good, bad record.SliceSink
	stats, err := record.Stream(context.Background(), strings.NewReader("a,b\rc\r\rd,e\r\nf,g"), record.Comma, 2, &good, &bad)
	require.NoError(t, err)

	assert.Equal(t, []string{"a,b", "d,e", "f,g"}, good.Lines)
	assert.Equal(t, []string{"c"}, bad.Lines)
	assert.Equal(t, record.Stats{Lines: 5, Blank: 1, Good: 3, Bad: 1}, stats)
}

func TestStream_CanceledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var good, bad record.SliceSink
	stats, err := record.Stream(ctx, strings.NewReader("a,b\n"), record.Comma, 2, &good, &bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Lines)
	assert.Empty(t, good.Lines)
}

func TestStream_CanceledMidPassKeepsPrefix(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	good := &cancelSink{cancel: cancel, cancelN: 2}
	var bad record.SliceSink
	input := "g1,x\nb1\ng2,x\nb2\ng3,x\n"

	stats, err := record.Stream(ctx, strings.NewReader(input), record.Comma, 2, good, &bad)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, []string{"g1,x", "g2,x"}, good.Lines)
	assert.Equal(t, []string{"b1"}, bad.Lines)
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 2, stats.Good)
	assert.Equal(t, 1, stats.Bad)
}

func TestStream_SinkError(t *testing.T) {
	t.Parallel()

	sink := &errSink{failAt: 2}
	var bad record.SliceSink
	stats, err := record.Stream(context.Background(), strings.NewReader("a,b\nc,d\ne,f\n"), record.Comma, 2, sink, &bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, 1, stats.Good)
	assert.Equal(t, 2, stats.Lines)
}

// splitBody mirrors the line reader for test expectations.
func splitBody(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
