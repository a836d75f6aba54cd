package slchatlog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/sltypes"
)

const sampleLog = `[2024/01/15 10:00:00] Jane Doe: hello
[2024/01/15 10:00:05] Second Life: Jane Doe is online.
[2024/01/15 10:01:00] Bob Smith: a long message
 that continues here
garbage without a timestamp
[2024/01/15 10:02:00] Second Life: Home position set.
[2024/01/15 10:03:00] Jane Doe: /me waves
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func utcParser(t *testing.T, opts ...slchatlog.ParserOption) *slchatlog.Parser {
	t.Helper()
	p, err := slchatlog.NewParser(append([]slchatlog.ParserOption{slchatlog.WithLocation(time.UTC)}, opts...)...)
	require.NoError(t, err)
	return p
}

func collect(seq func(func(slchatlog.Entry, error) bool)) ([]slchatlog.Entry, []error) {
	var entries []slchatlog.Entry
	var errs []error
	for e, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

func TestParseReader(t *testing.T) {
	entries, errs := collect(slchatlog.ParseReader(context.Background(), strings.NewReader(sampleLog),
		slchatlog.WithParseParser(utcParser(t))))

	require.Len(t, entries, 5)
	require.Len(t, errs, 1)

	assert.Equal(t, event.Chat, entries[0].Line.Type())
	assert.Equal(t, 1, entries[0].LineNumber)
	assert.Equal(t, event.CameOnline, entries[1].Line.Type())

	assert.Equal(t, "[2024/01/15 10:01:00] Bob Smith: a long message\n that continues here", entries[2].Raw)
	assert.Equal(t, 3, entries[2].LineNumber)
	assert.Equal(t, &event.ChatMessage{Volume: sltypes.Say, Message: "a long message\n that continues here"}, entries[2].Line.Payload())

	assert.Equal(t, 6, entries[3].LineNumber)
	assert.Equal(t, event.Emote, entries[4].Line.Type())

	var pe *slchatlog.ParseError
	require.True(t, errors.As(errs[0], &pe))
	assert.Equal(t, 5, pe.LineNumber)
	assert.Equal(t, "garbage without a timestamp", pe.Line)
	assert.True(t, errors.Is(errs[0], slchatlog.ErrFraming))
}

func TestParseReader_StopOnError(t *testing.T) {
	entries, errs := collect(slchatlog.ParseReader(context.Background(), strings.NewReader(sampleLog),
		slchatlog.WithParseStopOnError(true)))
	assert.Len(t, entries, 3)
	assert.Len(t, errs, 1)
}

func TestParseReader_Filters(t *testing.T) {
	tests := []struct {
		name string
		opts []slchatlog.ParseOption
		want []event.Type
	}{
		{
			name: "include",
			opts: []slchatlog.ParseOption{slchatlog.WithParseIncludeTypes(event.Chat)},
			want: []event.Type{event.Chat, event.Chat},
		},
		{
			name: "exclude",
			opts: []slchatlog.ParseOption{slchatlog.WithParseExcludeTypes(event.Chat, event.OtherSystem)},
			want: []event.Type{event.CameOnline, event.Emote},
		},
		{
			name: "filter",
			opts: []slchatlog.ParseOption{slchatlog.WithParseFilter([]event.Type{event.Chat, event.Emote}, []event.Type{event.Chat})},
			want: []event.Type{event.Emote},
		},
		{
			name: "since",
			opts: []slchatlog.ParseOption{slchatlog.WithParseSince(time.Date(2024, 1, 15, 10, 1, 0, 0, time.UTC))},
			want: []event.Type{event.Chat, event.OtherSystem, event.Emote},
		},
		{
			name: "until",
			opts: []slchatlog.ParseOption{slchatlog.WithParseUntil(time.Date(2024, 1, 15, 10, 1, 0, 0, time.UTC))},
			want: []event.Type{event.Chat, event.CameOnline},
		},
		{
			name: "time range",
			opts: []slchatlog.ParseOption{slchatlog.WithParseTimeRange(
				time.Date(2024, 1, 15, 10, 0, 5, 0, time.UTC),
				time.Date(2024, 1, 15, 10, 2, 0, 0, time.UTC),
			)},
			want: []event.Type{event.CameOnline, event.Chat},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]slchatlog.ParseOption{slchatlog.WithParseParser(utcParser(t))}, tt.opts...)
			entries, _ := collect(slchatlog.ParseReader(context.Background(), strings.NewReader(sampleLog), opts...))
			var got []event.Type
			for _, e := range entries {
				got = append(got, e.Line.Type())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReader_UntimedLineDroppedByTimeRange(t *testing.T) {
	input := "[[year,datetime,slt]/[mthnum,datetime,slt]/[day,datetime,slt] [hour,datetime,slt]:[min,datetime,slt]] Bob: hi\n"

	entries, errs := collect(slchatlog.ParseReader(context.Background(), strings.NewReader(input)))
	require.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Line.Timestamp)

	entries, _ = collect(slchatlog.ParseReader(context.Background(), strings.NewReader(input),
		slchatlog.WithParseSince(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))
	assert.Empty(t, entries)
}

func TestParseReader_Encoding(t *testing.T) {
	// "café" in Windows-1252.
	input := "[2024/01/15 10:00:00] Jane Doe: caf\xe9\n"

	entries, errs := collect(slchatlog.ParseReader(context.Background(), strings.NewReader(input),
		slchatlog.WithParseEncoding("cp1252")))
	require.Empty(t, errs)
	require.Len(t, entries, 1)
	assert.Equal(t, &event.ChatMessage{Volume: sltypes.Say, Message: "café"}, entries[0].Line.Payload())
}

func TestParseReader_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  slchatlog.ParseOption
	}{
		{"encoding", slchatlog.WithParseEncoding("ebcdic")},
		{"time range", slchatlog.WithParseTimeRange(time.Unix(100, 0), time.Unix(50, 0))},
		{"max size", slchatlog.WithParseMaxFileSize(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, errs := collect(slchatlog.ParseReader(context.Background(), strings.NewReader(sampleLog), tt.opt))
			assert.Empty(t, entries)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Error(), "invalid options")
		})
	}
}

func TestParseReader_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, errs := collect(slchatlog.ParseReader(ctx, strings.NewReader(sampleLog)))
	assert.Empty(t, entries)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], context.Canceled)
}

func TestParseReader_EarlyBreak(t *testing.T) {
	n := 0
	for _, err := range slchatlog.ParseReader(context.Background(), strings.NewReader(sampleLog)) {
		require.NoError(t, err)
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestParseFile(t *testing.T) {
	path := writeLog(t, sampleLog)

	entries, errs := collect(slchatlog.ParseFile(context.Background(), path))
	require.Len(t, entries, 5)
	require.Len(t, errs, 1)
	assert.Equal(t, path, entries[0].Path)

	var pe *slchatlog.ParseError
	require.True(t, errors.As(errs[0], &pe))
	assert.Equal(t, path, pe.Path)
	assert.Contains(t, pe.Error(), path+":5:")
}

func TestParseFile_Missing(t *testing.T) {
	entries, errs := collect(slchatlog.ParseFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt")))
	assert.Empty(t, entries)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrNotExist)
}

func TestParseFile_TooLarge(t *testing.T) {
	path := writeLog(t, sampleLog)

	_, errs := collect(slchatlog.ParseFile(context.Background(), path, slchatlog.WithParseMaxFileSize(10)))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], slchatlog.ErrFileTooLarge)
}

func TestParseFile_Directory(t *testing.T) {
	_, errs := collect(slchatlog.ParseFile(context.Background(), t.TempDir()))
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], slchatlog.ErrNotRegularFile)
}

func TestParseFiles(t *testing.T) {
	a := writeLog(t, "[2024/01/15 10:00:00] Jane Doe: one\n")
	b := writeLog(t, "[2024/01/16 10:00:00] Jane Doe: two\n[2024/01/16 10:00:01] Jane Doe: three\n")

	entries, errs := collect(slchatlog.ParseFiles(context.Background(), []string{a, b}))
	require.Empty(t, errs)
	require.Len(t, entries, 3)
	assert.Equal(t, a, entries[0].Path)
	assert.Equal(t, b, entries[2].Path)
	assert.Equal(t, 2, entries[2].LineNumber)
}

func TestParseFileAll(t *testing.T) {
	path := writeLog(t, sampleLog)

	entries, err := slchatlog.ParseFileAll(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	entries, err = slchatlog.ParseFileAll(context.Background(), path, slchatlog.WithParseStopOnError(true))
	var pe *slchatlog.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Len(t, entries, 3)
}
