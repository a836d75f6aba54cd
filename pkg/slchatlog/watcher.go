package slchatlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/slchatlog/slchatlog-go/internal/logfinder"
	"github.com/slchatlog/slchatlog-go/internal/tailer"
	"github.com/slchatlog/slchatlog-go/internal/textenc"
)

// ReplayMode specifies how to handle existing log lines.
type ReplayMode int

const (
	// ReplayNone only watches for new lines (default, tail -f behavior).
	ReplayNone ReplayMode = iota
	// ReplayFromStart reads from the beginning of the file.
	ReplayFromStart
	// ReplayLastN reads the last N physical lines before tailing.
	ReplayLastN
	// ReplaySinceTime reads lines since a specific timestamp.
	ReplaySinceTime
)

// DefaultMaxReplayLastN is the default maximum lines for ReplayLastN mode.
const DefaultMaxReplayLastN = 10000

// DefaultFlushDelay is how long a logical line is held back waiting for
// continuation lines.
const DefaultFlushDelay = 250 * time.Millisecond

// watcherErrBuffer is the buffer size for the error channel.
const watcherErrBuffer = 16

// ReplayConfig configures replay behavior.
// Only one mode can be active at a time.
type ReplayConfig struct {
	Mode  ReplayMode
	LastN int       // For ReplayLastN
	Since time.Time // For ReplaySinceTime
}

// Watcher follows a viewer's chat.txt and emits parsed entries.
type Watcher struct {
	cfg    watchConfig // immutable after creation
	logDir string
	enc    textenc.Name
	log    *slog.Logger

	mu       sync.Mutex
	closed   bool
	cancel   context.CancelFunc
	doneCh   chan struct{}
	watching bool
}

// NewWatcher creates a watcher using functional options.
// It validates options and locates the log directory but does not start
// any goroutines.
//
// Example:
//
//	w, err := slchatlog.NewWatcher(
//	    slchatlog.WithAvatar("Jane Doe"),
//	    slchatlog.WithIncludeTypes(event.Chat, event.Whisper),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	entries, errs, err := w.Watch(ctx)
func NewWatcher(opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	logDir, err := logfinder.FindLogDir(cfg.logDir)
	if err != nil {
		return nil, fmt.Errorf("finding log directory: %w", err)
	}

	enc, _ := textenc.Lookup(cfg.encoding)
	log := cfg.logger
	if log == nil {
		log = discardLogger
	}

	return &Watcher{
		cfg:    *cfg,
		logDir: logDir,
		enc:    enc,
		log:    log,
	}, nil
}

// WatchWithOptions creates a watcher and starts watching. The watcher
// stops when ctx is cancelled; use NewWatcher for synchronous Close.
func WatchWithOptions(ctx context.Context, opts ...WatchOption) (<-chan Entry, <-chan error, error) {
	w, err := NewWatcher(opts...)
	if err != nil {
		return nil, nil, err
	}
	return w.Watch(ctx)
}

// LogDir returns the log directory the watcher resolved.
func (w *Watcher) LogDir() string {
	return w.logDir
}

// Watch starts watching and returns channels. Both channels are closed
// when ctx is cancelled, Close is called or a fatal error occurs.
// Watch can only be called once per Watcher.
//
// Returns ErrWatcherClosed if the watcher has been closed and
// ErrAlreadyWatching if Watch has already been called.
func (w *Watcher) Watch(ctx context.Context) (<-chan Entry, <-chan error, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, nil, ErrWatcherClosed
	}
	if w.watching {
		return nil, nil, ErrAlreadyWatching
	}
	w.watching = true

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.doneCh = make(chan struct{})

	entryCh := make(chan Entry)
	errCh := make(chan error, watcherErrBuffer)

	go w.run(ctx, entryCh, errCh)

	return entryCh, errCh, nil
}

// Close stops the watcher and waits for its goroutine to exit.
// Safe to call multiple times.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.cancel != nil {
		w.cancel()
	}
	doneCh := w.doneCh
	w.mu.Unlock()

	if doneCh != nil {
		<-doneCh
	}
	return nil
}

// stream is the per-file state of a running watch.
type stream struct {
	path     string
	j        joiner
	n        int  // physical lines seen
	counting bool // n is a real line number
}

func (w *Watcher) run(ctx context.Context, entryCh chan<- Entry, errCh chan<- error) {
	defer close(w.doneCh)
	defer close(entryCh)
	defer close(errCh)

	logFile, err := w.findLogFileWithWait(ctx, errCh)
	if err != nil {
		return
	}
	w.log.Debug("found chat log", "path", logFile)

	cfg := w.tailerConfig()
	cfg.FromStart = w.cfg.replay.Mode == ReplayFromStart || w.cfg.replay.Mode == ReplaySinceTime
	s := &stream{path: logFile, counting: cfg.FromStart}

	if w.cfg.replay.Mode == ReplayLastN && w.cfg.replay.LastN > 0 {
		w.log.Debug("replaying last N lines", "n", w.cfg.replay.LastN, "path", logFile)
		if err := w.replayLastN(ctx, s, entryCh, errCh); err != nil {
			sendError(ctx, errCh, &WatchError{Op: WatchOpReplay, Path: logFile, Err: err})
		}
	}

	t, err := tailer.New(ctx, logFile, cfg)
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: logFile, Err: err})
		return
	}
	w.log.Debug("started tailing", "path", logFile, "from_start", cfg.FromStart)
	defer func() { _ = t.Stop() }()

	rotationTicker := time.NewTicker(w.cfg.pollInterval)
	defer rotationTicker.Stop()

	flushTimer := time.NewTimer(w.cfg.flushDelay)
	flushTimer.Stop()
	defer flushTimer.Stop()
	if s.j.has {
		flushTimer.Reset(w.cfg.flushDelay)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-t.Lines():
			if !ok {
				w.flush(ctx, s, entryCh, errCh)
				return
			}
			w.pushLine(ctx, s, line, entryCh, errCh)
			flushTimer.Reset(w.cfg.flushDelay)
		case err, ok := <-t.Errors():
			if !ok {
				w.flush(ctx, s, entryCh, errCh)
				return
			}
			sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: s.path, Err: err})
		case <-flushTimer.C:
			w.flush(ctx, s, entryCh, errCh)
		case <-rotationTicker.C:
			newFile, err := logfinder.FindChatLog(w.logDir, w.cfg.avatar)
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: WatchOpRotation, Err: err})
				continue
			}
			if newFile == s.path {
				continue
			}
			w.log.Debug("active chat log changed", "from", s.path, "to", newFile)
			cfg := w.tailerConfig()
			cfg.FromStart = true
			newTailer, err := tailer.New(ctx, newFile, cfg)
			if err != nil {
				sendError(ctx, errCh, &WatchError{Op: WatchOpTail, Path: newFile, Err: err})
				continue
			}
			w.flush(ctx, s, entryCh, errCh)
			_ = t.Stop()
			t = newTailer
			s = &stream{path: newFile, counting: true}
		}
	}
}

func (w *Watcher) tailerConfig() tailer.Config {
	cfg := tailer.DefaultConfig()
	cfg.Poll = w.cfg.poll
	return cfg
}

// findLogFileWithWait finds the chat log, optionally waiting for it to
// appear. Errors are also sent to errCh.
func (w *Watcher) findLogFileWithWait(ctx context.Context, errCh chan<- error) (string, error) {
	logFile, err := logfinder.FindChatLog(w.logDir, w.cfg.avatar)
	if err == nil {
		return logFile, nil
	}
	if !errors.Is(err, ErrNoLogFiles) || !w.cfg.waitForLogs {
		sendError(ctx, errCh, &WatchError{Op: WatchOpFindLatest, Err: err})
		return "", err
	}

	w.log.Debug("no chat log yet, waiting", "poll_interval", w.cfg.pollInterval)
	ticker := time.NewTicker(w.cfg.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// sendError would drop this since ctx is already done.
			err := ctx.Err()
			select {
			case errCh <- &WatchError{Op: WatchOpFindLatest, Err: err}:
			default:
			}
			return "", err
		case <-ticker.C:
			logFile, err := logfinder.FindChatLog(w.logDir, w.cfg.avatar)
			if err == nil {
				w.log.Debug("chat log appeared", "path", logFile)
				return logFile, nil
			}
			if !errors.Is(err, ErrNoLogFiles) {
				sendError(ctx, errCh, &WatchError{Op: WatchOpFindLatest, Err: err})
				return "", err
			}
		}
	}
}

// pushLine feeds one physical line into the stream's joiner and emits the
// logical line it completes, if any.
func (w *Watcher) pushLine(ctx context.Context, s *stream, line string, entryCh chan<- Entry, errCh chan<- error) {
	decoded, err := textenc.DecodeString(line, w.enc)
	if err != nil {
		sendError(ctx, errCh, &WatchError{Op: WatchOpDecode, Path: s.path, Err: err})
		decoded = line
	}
	s.n++
	n := 0
	if s.counting {
		n = s.n
	}
	if text, start, ok := s.j.push(decoded, n); ok {
		w.processLine(ctx, s.path, text, start, entryCh, errCh)
	}
}

func (w *Watcher) flush(ctx context.Context, s *stream, entryCh chan<- Entry, errCh chan<- error) {
	if text, start, ok := s.j.flush(); ok {
		w.processLine(ctx, s.path, text, start, entryCh, errCh)
	}
}

func (w *Watcher) processLine(ctx context.Context, path, raw string, lineNumber int, entryCh chan<- Entry, errCh chan<- error) {
	l, err := w.cfg.parser.ParseLine(raw)
	if err != nil {
		sendError(ctx, errCh, &ParseError{Path: path, LineNumber: lineNumber, Line: raw, Err: err})
		return
	}

	// Lines without a timestamp cannot be placed and are dropped while
	// replaying since a time.
	if w.cfg.replay.Mode == ReplaySinceTime && (l.Timestamp == nil || l.Timestamp.Before(w.cfg.replay.Since)) {
		return
	}
	if !w.cfg.filter.Allows(l.Type()) {
		return
	}

	select {
	case entryCh <- Entry{Line: l, Path: path, LineNumber: lineNumber, Raw: raw}:
	case <-ctx.Done():
	}
}

// replayLastN feeds the last N lines of the file into s. The final logical
// line stays pending so that continuation lines written later still join it.
func (w *Watcher) replayLastN(ctx context.Context, s *stream, entryCh chan<- Entry, errCh chan<- error) error {
	lines, err := readLastNLines(s.path, w.cfg.replay.LastN, w.cfg.maxReplayBytes, w.cfg.maxReplayLineBytes)
	if err != nil {
		return err
	}

	// Drop the tail of a message whose first line is outside the window.
	for len(lines) > 0 && isContinuation(lines[0]) {
		lines = lines[1:]
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.pushLine(ctx, s, line, entryCh, errCh)
	}
	return nil
}

// readLastNLines reads the last n physical lines from a file using backward
// chunk scanning. Lines are returned oldest first. Empty lines are kept,
// since they continue multi-line messages; the empty segment after a final
// newline is not a line.
//
// Memory limits:
//   - maxBytes: Maximum total bytes to read (0 = unlimited)
//   - maxLineBytes: Maximum bytes per single line (0 = unlimited)
//
// Returns ErrReplayLimitExceeded if limits are exceeded.
func readLastNLines(path string, n int, maxBytes int, maxLineBytes int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	fileSize := stat.Size()
	if fileSize == 0 {
		return nil, nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, fileSize-1); err != nil {
		return nil, err
	}
	if last[0] == '\n' {
		fileSize--
	}
	if fileSize == 0 {
		return nil, nil
	}

	lines := make([]string, 0, n)

	const chunkSize = 4096
	offset := fileSize
	carry := []byte{} // incomplete line from the previous chunk
	totalBytes := 0

	for len(lines) < n && offset > 0 {
		readSize := int64(chunkSize)
		if offset < readSize {
			readSize = offset
		}
		offset -= readSize

		if maxBytes > 0 && totalBytes+int(readSize)+len(carry) > maxBytes {
			return nil, ErrReplayLimitExceeded
		}

		chunk := make([]byte, readSize)
		if _, err := file.ReadAt(chunk, offset); err != nil {
			return nil, err
		}
		totalBytes += int(readSize)

		// carry comes after chunk in file order
		chunk = append(chunk, carry...)

		newLines, newCarry := extractLinesBackward(chunk, n-len(lines), maxLineBytes)
		if newCarry == nil && maxLineBytes > 0 && len(chunk) > maxLineBytes {
			return nil, ErrReplayLimitExceeded
		}
		if len(newLines) > 0 {
			lines = append(newLines, lines...)
		}
		carry = newCarry
	}

	// The first line of the file has no newline before it.
	if offset == 0 && len(lines) < n && carry != nil {
		if maxLineBytes > 0 && len(carry) > maxLineBytes {
			return nil, ErrReplayLimitExceeded
		}
		line := trimCR(string(carry))
		lines = append([]string{line}, lines...)
	}

	return lines, nil
}

// extractLinesBackward extracts complete lines from a buffer by scanning
// backwards. It returns up to maxLines lines, oldest first, and the carry
// (the incomplete line at the start of the buffer). A nil carry signals a
// line longer than maxLineBytes.
func extractLinesBackward(buffer []byte, maxLines int, maxLineBytes int) ([]string, []byte) {
	var lines []string
	end := len(buffer)

	for i := len(buffer) - 1; i >= 0; i-- {
		if buffer[i] != '\n' {
			continue
		}
		lineBytes := buffer[i+1 : end]
		if maxLineBytes > 0 && len(lineBytes) > maxLineBytes {
			return lines, nil
		}
		lines = append([]string{trimCR(string(lineBytes))}, lines...)
		end = i
	}

	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines, buffer[:end]
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

// sendError sends an error to the error channel without blocking. Errors
// are dropped only when the buffer is full or the watch is shutting down.
func sendError(ctx context.Context, errCh chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errCh <- err:
	case <-ctx.Done():
	default:
	}
}
