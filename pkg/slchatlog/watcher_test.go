package slchatlog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
	"github.com/slchatlog/slchatlog-go/pkg/slchatlog/event"
)

// makeAvatarLog creates <dir>/<avatar dir>/chat.txt with content and the
// given modification time offset.
func makeAvatarLog(t *testing.T, dir, avatarDir, content string, age time.Duration) string {
	t.Helper()
	sub := filepath.Join(dir, avatarDir)
	require.NoError(t, os.MkdirAll(sub, 0o755))
	path := filepath.Join(sub, "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	mod := time.Now().Add(age)
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func logDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString(line)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func nextEntry(t *testing.T, entries <-chan slchatlog.Entry, errs <-chan error) slchatlog.Entry {
	t.Helper()
	select {
	case e, ok := <-entries:
		require.True(t, ok, "entries channel closed")
		return e
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for entry")
	}
	return slchatlog.Entry{}
}

func startWatcher(t *testing.T, opts ...slchatlog.WatchOption) (<-chan slchatlog.Entry, <-chan error) {
	t.Helper()
	base := []slchatlog.WatchOption{
		slchatlog.WithPoll(true),
		slchatlog.WithPollInterval(100 * time.Millisecond),
		slchatlog.WithFlushDelay(50 * time.Millisecond),
	}
	w, err := slchatlog.NewWatcher(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	t.Cleanup(cancel)

	entries, errs, err := w.Watch(ctx)
	require.NoError(t, err)
	return entries, errs
}

func TestWatcher_ReplayFromStart(t *testing.T) {
	dir := logDir(t)
	path := makeAvatarLog(t, dir, "jane_doe", "[2024/01/15 10:00:00] Jane Doe: one\n[2024/01/15 10:00:01] Jane Doe: two\n more\n", 0)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir), slchatlog.WithReplayFromStart())

	e := nextEntry(t, entries, errs)
	assert.Equal(t, path, e.Path)
	assert.Equal(t, 1, e.LineNumber)
	assert.Equal(t, "Jane Doe", e.Line.Name())

	// The last logical line is emitted after the flush delay.
	e = nextEntry(t, entries, errs)
	assert.Equal(t, 2, e.LineNumber)
	assert.Equal(t, "[2024/01/15 10:00:01] Jane Doe: two\n more", e.Raw)
}

func TestWatcher_TailsNewLines(t *testing.T) {
	dir := logDir(t)
	path := makeAvatarLog(t, dir, "jane_doe", "[2024/01/15 10:00:00] Jane Doe: old\n", 0)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir))
	time.Sleep(300 * time.Millisecond)

	appendLine(t, path, "[2024/01/15 10:05:00] Jane Doe: new\n")
	e := nextEntry(t, entries, errs)
	assert.Equal(t, event.Chat, e.Line.Type())
	assert.Equal(t, "[2024/01/15 10:05:00] Jane Doe: new", e.Raw)
	assert.Zero(t, e.LineNumber)
}

func TestWatcher_ReplayLastN(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", `[2024/01/15 10:00:00] Jane Doe: one
[2024/01/15 10:00:01] Jane Doe: two
 continued
[2024/01/15 10:00:02] Jane Doe: three
`, 0)

	// The window starts on a continuation line, which is dropped.
	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir), slchatlog.WithReplayLastN(2))

	e := nextEntry(t, entries, errs)
	assert.Equal(t, "[2024/01/15 10:00:02] Jane Doe: three", e.Raw)
}

func TestWatcher_ReplaySinceTime(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", `[2024/01/15 10:00:00] Jane Doe: old
[2024/01/15 12:00:00] Jane Doe: new
`, 0)

	p, err := slchatlog.NewParser(slchatlog.WithLocation(time.UTC))
	require.NoError(t, err)
	entries, errs := startWatcher(t,
		slchatlog.WithLogDir(dir),
		slchatlog.WithWatchParser(p),
		slchatlog.WithReplaySinceTime(time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)),
	)

	e := nextEntry(t, entries, errs)
	assert.Equal(t, "[2024/01/15 12:00:00] Jane Doe: new", e.Raw)
	assert.Equal(t, 2, e.LineNumber)
}

func TestWatcher_Filter(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", `[2024/01/15 10:00:00] Jane Doe: hi
[2024/01/15 10:00:01] Second Life: Bob Smith is online.
[2024/01/15 10:00:02] Jane Doe: /me waves
`, 0)

	entries, errs := startWatcher(t,
		slchatlog.WithLogDir(dir),
		slchatlog.WithReplayFromStart(),
		slchatlog.WithIncludeTypes(event.CameOnline, event.Emote),
		slchatlog.WithExcludeTypes(event.Emote),
	)

	e := nextEntry(t, entries, errs)
	assert.Equal(t, event.CameOnline, e.Line.Type())
	assert.Equal(t, "Bob Smith", e.Line.Name())
}

func TestWatcher_ParseErrorsAreReported(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", "garbage\n[2024/01/15 10:00:00] Jane Doe: hi\n", 0)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir), slchatlog.WithReplayFromStart())

	select {
	case err := <-errs:
		var pe *slchatlog.ParseError
		require.True(t, errors.As(err, &pe), "got %T: %v", err, err)
		assert.Equal(t, 1, pe.LineNumber)
		assert.True(t, errors.Is(err, slchatlog.ErrFraming))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for parse error")
	}

	e := nextEntry(t, entries, errs)
	assert.Equal(t, 2, e.LineNumber)
}

func TestWatcher_Encoding(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", "[2024/01/15 10:00:00] Jane Doe: caf\xe9\n", 0)

	entries, errs := startWatcher(t,
		slchatlog.WithLogDir(dir),
		slchatlog.WithReplayFromStart(),
		slchatlog.WithEncoding("windows-1252"),
	)

	e := nextEntry(t, entries, errs)
	assert.Equal(t, "[2024/01/15 10:00:00] Jane Doe: café", e.Raw)
}

func TestWatcher_SwitchesToNewestChatLog(t *testing.T) {
	dir := logDir(t)
	janePath := makeAvatarLog(t, dir, "jane_doe", "", -time.Hour)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir))
	time.Sleep(300 * time.Millisecond)

	appendLine(t, janePath, "[2024/01/15 10:00:00] Jane Doe: before\n")
	e := nextEntry(t, entries, errs)
	assert.Equal(t, janePath, e.Path)

	// Logging in as another avatar makes its chat.txt the newest.
	bobPath := makeAvatarLog(t, dir, "bob_smith", "[2024/01/15 11:00:00] Bob Smith: after\n", time.Hour)

	e = nextEntry(t, entries, errs)
	assert.Equal(t, bobPath, e.Path)
	assert.Equal(t, 1, e.LineNumber)
	assert.Equal(t, "Bob Smith", e.Line.Name())
}

func TestWatcher_AvatarPinned(t *testing.T) {
	dir := logDir(t)
	janePath := makeAvatarLog(t, dir, "jane_doe", "", -time.Hour)
	makeAvatarLog(t, dir, "bob_smith", "[2024/01/15 11:00:00] Bob Smith: ignored\n", 0)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir), slchatlog.WithAvatar("Jane Doe"))
	time.Sleep(300 * time.Millisecond)

	appendLine(t, janePath, "[2024/01/15 12:00:00] Jane Doe: mine\n")
	e := nextEntry(t, entries, errs)
	assert.Equal(t, janePath, e.Path)
	assert.Equal(t, "Jane Doe", e.Line.Name())
}

func TestWatcher_WaitForLogs_Appears(t *testing.T) {
	dir := logDir(t)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir), slchatlog.WithWaitForLogs(true), slchatlog.WithReplayFromStart())
	time.Sleep(300 * time.Millisecond)

	makeAvatarLog(t, dir, "jane_doe", "[2024/01/15 10:00:00] Jane Doe: first\n", 0)
	e := nextEntry(t, entries, errs)
	assert.Equal(t, "Jane Doe", e.Line.Name())
}

func TestWatcher_WaitForLogs_False(t *testing.T) {
	dir := logDir(t)

	entries, errs := startWatcher(t, slchatlog.WithLogDir(dir))

	select {
	case e := <-entries:
		t.Errorf("unexpected entry: %+v", e)
	case err := <-errs:
		var we *slchatlog.WatchError
		require.True(t, errors.As(err, &we), "got %T: %v", err, err)
		assert.Equal(t, slchatlog.WatchOpFindLatest, we.Op)
		assert.ErrorIs(t, err, slchatlog.ErrNoLogFiles)
	case <-time.After(2 * time.Second):
		t.Fatal("expected immediate error, got timeout")
	}
}

func TestWatcher_WaitForLogs_ContextCancel(t *testing.T) {
	dir := logDir(t)

	w, err := slchatlog.NewWatcher(
		slchatlog.WithLogDir(dir),
		slchatlog.WithWaitForLogs(true),
		slchatlog.WithPollInterval(100*time.Millisecond),
	)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	_, errs, err := w.Watch(ctx)
	require.NoError(t, err)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("expected context cancellation error")
	}
}

func TestWatcher_Lifecycle(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", "", 0)

	w, err := slchatlog.NewWatcher(slchatlog.WithLogDir(dir), slchatlog.WithPoll(true))
	require.NoError(t, err)
	assert.Equal(t, dir, w.LogDir())

	entries, errs, err := w.Watch(context.Background())
	require.NoError(t, err)

	_, _, err = w.Watch(context.Background())
	assert.ErrorIs(t, err, slchatlog.ErrAlreadyWatching)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-entries
	assert.False(t, ok)
	for range errs {
	}

	_, _, err = w.Watch(context.Background())
	assert.ErrorIs(t, err, slchatlog.ErrWatcherClosed)
}

func TestNewWatcher_InvalidOptions(t *testing.T) {
	dir := logDir(t)
	makeAvatarLog(t, dir, "jane_doe", "", 0)

	tests := []struct {
		name string
		opt  slchatlog.WatchOption
	}{
		{"negative last n", slchatlog.WithReplayLastN(-1)},
		{"last n over limit", slchatlog.WithReplayLastN(slchatlog.DefaultMaxReplayLastN + 1)},
		{"zero since", slchatlog.WithReplay(slchatlog.ReplayConfig{Mode: slchatlog.ReplaySinceTime})},
		{"zero poll interval", slchatlog.WithPollInterval(0)},
		{"zero flush delay", slchatlog.WithFlushDelay(0)},
		{"negative replay bytes", slchatlog.WithMaxReplayBytes(-1)},
		{"negative replay line bytes", slchatlog.WithMaxReplayLineBytes(-1)},
		{"unknown encoding", slchatlog.WithEncoding("klingon")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := slchatlog.NewWatcher(slchatlog.WithLogDir(dir), tt.opt)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid options")
		})
	}
}

func TestNewWatcher_MissingLogDir(t *testing.T) {
	_, err := slchatlog.NewWatcher(slchatlog.WithLogDir(filepath.Join(t.TempDir(), "missing")))
	assert.ErrorIs(t, err, slchatlog.ErrLogDirNotFound)
}
