// Package tailer follows a growing file and delivers its new lines.
package tailer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nxadm/tail"
)

// ErrStopped is returned by Stop when the tailer was already stopped.
var ErrStopped = errors.New("tailer stopped")

// Config controls how a file is followed.
type Config struct {
	// FromStart reads the existing content before following.
	// When false, only lines appended after New are delivered.
	FromStart bool

	// Poll uses stat polling instead of filesystem notifications.
	// Needed on network shares and some container mounts.
	Poll bool

	// ReOpen keeps following the path when the file is truncated or
	// recreated by the viewer.
	ReOpen bool

	// MaxLineSize splits physical lines longer than this many bytes.
	// Zero means no limit.
	MaxLineSize int
}

// DefaultConfig returns the configuration used for chat.txt.
func DefaultConfig() Config {
	return Config{ReOpen: true, MaxLineSize: 1 << 20}
}

// Tailer delivers lines appended to a file.
type Tailer struct {
	t      *tail.Tail
	lines  chan string
	errs   chan error
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	stopped bool
}

// New starts following path. The returned Tailer stops when ctx is
// cancelled or Stop is called; both channels are closed afterwards.
func New(ctx context.Context, path string, cfg Config) (*Tailer, error) {
	whence := io.SeekEnd
	if cfg.FromStart {
		whence = io.SeekStart
	}
	t, err := tail.TailFile(path, tail.Config{
		Location:    &tail.SeekInfo{Offset: 0, Whence: whence},
		ReOpen:      cfg.ReOpen,
		MustExist:   true,
		Poll:        cfg.Poll,
		Follow:      true,
		MaxLineSize: cfg.MaxLineSize,
		Logger:      tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("tailing %s: %w", path, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	tl := &Tailer{
		t:      t,
		lines:  make(chan string),
		errs:   make(chan error, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go tl.run(ctx)
	return tl, nil
}

// Lines returns the channel of physical lines, without the line ending.
func (tl *Tailer) Lines() <-chan string { return tl.lines }

// Errors returns the channel of read errors.
func (tl *Tailer) Errors() <-chan error { return tl.errs }

// Stop stops following the file and waits for the reader goroutine.
func (tl *Tailer) Stop() error {
	tl.mu.Lock()
	if tl.stopped {
		tl.mu.Unlock()
		return ErrStopped
	}
	tl.stopped = true
	tl.mu.Unlock()

	tl.cancel()
	<-tl.done
	return nil
}

func (tl *Tailer) run(ctx context.Context) {
	defer close(tl.done)
	defer close(tl.lines)
	defer close(tl.errs)
	defer tl.t.Cleanup()
	defer func() { _ = tl.t.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-tl.t.Lines:
			if !ok {
				if err := tl.t.Err(); err != nil {
					tl.sendErr(ctx, err)
				}
				return
			}
			if line.Err != nil {
				tl.sendErr(ctx, line.Err)
				continue
			}
			select {
			case tl.lines <- strings.TrimSuffix(line.Text, "\r"):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (tl *Tailer) sendErr(ctx context.Context, err error) {
	select {
	case tl.errs <- err:
	case <-ctx.Done():
	default:
	}
}
