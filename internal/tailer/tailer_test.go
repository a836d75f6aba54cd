package tailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLine(t *testing.T, tl *Tailer) string {
	t.Helper()
	select {
	case line, ok := <-tl.Lines():
		require.True(t, ok, "lines channel closed")
		return line
	case err := <-tl.Errors():
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for line")
	}
	return ""
}

func TestTailer_FromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\r\nsecond\n"), 0o644))

	cfg := DefaultConfig()
	cfg.FromStart = true
	cfg.Poll = true
	tl, err := New(context.Background(), path, cfg)
	require.NoError(t, err)
	defer tl.Stop()

	assert.Equal(t, "first", readLine(t, tl))
	assert.Equal(t, "second", readLine(t, tl))
}

func TestTailer_FollowsAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o644))

	cfg := DefaultConfig()
	cfg.Poll = true
	tl, err := New(context.Background(), path, cfg)
	require.NoError(t, err)
	defer tl.Stop()

	// Give the tailer time to seek to the end before appending.
	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteString("new\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "new", readLine(t, tl))
}

func TestTailer_MissingFile(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), DefaultConfig())
	assert.Error(t, err)
}

func TestTailer_StopClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	cfg := DefaultConfig()
	cfg.Poll = true
	tl, err := New(context.Background(), path, cfg)
	require.NoError(t, err)

	require.NoError(t, tl.Stop())
	_, ok := <-tl.Lines()
	assert.False(t, ok)
	assert.ErrorIs(t, tl.Stop(), ErrStopped)
}

func TestTailer_ContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cfg := DefaultConfig()
	cfg.Poll = true
	tl, err := New(ctx, path, cfg)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-tl.Lines():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("lines channel not closed after cancel")
	}
}
