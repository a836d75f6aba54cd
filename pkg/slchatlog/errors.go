package slchatlog

import (
	"errors"
	"fmt"

	"github.com/slchatlog/slchatlog-go/internal/logfinder"
	"github.com/slchatlog/slchatlog-go/internal/safefile"
)

// Sentinel errors.
var (
	// ErrLogDirNotFound is returned when no chat log directory is found.
	ErrLogDirNotFound = logfinder.ErrLogDirNotFound

	// ErrNoLogFiles is returned when the directory has no chat.txt.
	ErrNoLogFiles = logfinder.ErrNoLogFiles

	// ErrNotRegularFile is returned when a log path is a symlink, FIFO,
	// device or directory.
	ErrNotRegularFile = safefile.ErrNotRegularFile

	// ErrFileTooLarge is returned when a file exceeds the configured limit.
	ErrFileTooLarge = safefile.ErrFileTooLarge

	// ErrWatcherClosed is returned by Watch after Close.
	ErrWatcherClosed = errors.New("watcher closed")

	// ErrAlreadyWatching is returned when Watch is called twice.
	ErrAlreadyWatching = errors.New("already watching")

	// ErrReplayLimitExceeded is returned when replay would read more than
	// the configured byte limits.
	ErrReplayLimitExceeded = errors.New("replay limit exceeded")
)

// ParseError is a per-line failure while parsing a file or stream. Err is
// usually a *FramingError.
type ParseError struct {
	Path       string
	LineNumber int
	Line       string
	Err        error
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.LineNumber > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.LineNumber, e.Err)
	case e.LineNumber > 0:
		return fmt.Sprintf("line %d: %v", e.LineNumber, e.Err)
	default:
		return fmt.Sprintf("parse error: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WatchOp names the watcher operation that failed.
type WatchOp string

const (
	WatchOpFindLatest WatchOp = "find_latest"
	WatchOpTail       WatchOp = "tail"
	WatchOpParse      WatchOp = "parse"
	WatchOpReplay     WatchOp = "replay"
	WatchOpRotation   WatchOp = "rotation"
	WatchOpDecode     WatchOp = "decode"
)

// WatchError is an error from the watcher's background goroutine.
type WatchError struct {
	Op   WatchOp
	Path string
	Err  error
}

func (e *WatchError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("watch %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("watch %s: %v", e.Op, e.Err)
}

func (e *WatchError) Unwrap() error {
	return e.Err
}

// UnknownEventTypeError is returned for event type names that do not exist.
type UnknownEventTypeError struct {
	Name string
}

func (e *UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown event type %q", e.Name)
}
