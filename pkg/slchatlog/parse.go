package slchatlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/slchatlog/slchatlog-go/internal/safefile"
	"github.com/slchatlog/slchatlog-go/internal/textenc"
)

// ParseReader parses a chat log stream, yielding one Entry per logical
// line that passes the filters.
//
// Malformed lines are yielded as a *ParseError and parsing continues,
// unless WithParseStopOnError is set. Read errors, invalid options and
// context cancellation are yielded once and end the sequence.
func ParseReader(ctx context.Context, r io.Reader, opts ...ParseOption) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		cfg := applyParseOptions(opts)
		if err := cfg.validate(); err != nil {
			yield(Entry{}, fmt.Errorf("invalid options: %w", err))
			return
		}
		parseStream(ctx, r, "", cfg, yield)
	}
}

// ParseFile parses the chat log at path. See ParseReader.
//
// Example:
//
//	for entry, err := range slchatlog.ParseFile(ctx, "chat.txt") {
//	    if err != nil {
//	        log.Printf("skipping: %v", err)
//	        continue
//	    }
//	    fmt.Println(entry.Line.Type())
//	}
func ParseFile(ctx context.Context, path string, opts ...ParseOption) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		cfg := applyParseOptions(opts)
		if err := cfg.validate(); err != nil {
			yield(Entry{}, fmt.Errorf("invalid options: %w", err))
			return
		}
		parseFile(ctx, path, cfg, yield)
	}
}

// ParseFiles parses several chat logs in order, as if concatenated.
func ParseFiles(ctx context.Context, paths []string, opts ...ParseOption) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		cfg := applyParseOptions(opts)
		if err := cfg.validate(); err != nil {
			yield(Entry{}, fmt.Errorf("invalid options: %w", err))
			return
		}
		for _, path := range paths {
			if !parseFile(ctx, path, cfg, yield) {
				return
			}
		}
	}
}

// ParseFileAll collects every entry of a file. Malformed lines are
// skipped, unless WithParseStopOnError is set, in which case the first one
// is returned as the error.
func ParseFileAll(ctx context.Context, path string, opts ...ParseOption) ([]Entry, error) {
	var entries []Entry
	cfg := applyParseOptions(opts)
	for entry, err := range ParseFile(ctx, path, opts...) {
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) && !cfg.stopOnError {
				continue
			}
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseFile reports whether the caller should continue with more input.
func parseFile(ctx context.Context, path string, cfg *parseConfig, yield func(Entry, error) bool) bool {
	f, _, err := safefile.OpenLimited(path, cfg.maxFileSize)
	if err != nil {
		yield(Entry{}, fmt.Errorf("opening %s: %w", path, err))
		return false
	}
	defer f.Close()
	return parseStream(ctx, f, path, cfg, yield)
}

func parseStream(ctx context.Context, r io.Reader, path string, cfg *parseConfig, yield func(Entry, error) bool) bool {
	enc, err := textenc.Lookup(cfg.encoding)
	if err != nil {
		yield(Entry{}, err)
		return false
	}
	decoded, err := textenc.NewReader(r, enc)
	if err != nil {
		yield(Entry{}, err)
		return false
	}

	lr := NewLineReader(decoded)
	for lr.Next() {
		if err := ctx.Err(); err != nil {
			yield(Entry{}, err)
			return false
		}

		raw := lr.Text()
		l, err := cfg.parser.ParseLine(raw)
		if err != nil {
			pe := &ParseError{Path: path, LineNumber: lr.LineNumber(), Line: raw, Err: err}
			if !yield(Entry{}, pe) || cfg.stopOnError {
				return false
			}
			continue
		}
		if !cfg.allows(l) {
			continue
		}
		if !yield(Entry{Line: l, Path: path, LineNumber: lr.LineNumber(), Raw: raw}, nil) {
			return false
		}
	}
	if err := lr.Err(); err != nil {
		if path != "" {
			err = fmt.Errorf("reading %s: %w", path, err)
		}
		yield(Entry{}, err)
		return false
	}
	return true
}
