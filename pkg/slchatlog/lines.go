package slchatlog

import (
	"bufio"
	"io"
	"strings"
)

// MaxLineBytes is the longest physical line LineReader accepts.
const MaxLineBytes = 1 << 20

// isContinuation reports whether a physical line belongs to the previous
// logical line. Viewers indent the second and later lines of a multi-line
// message with a space.
func isContinuation(line string) bool {
	return line == "" || line[0] == ' '
}

// joiner assembles physical lines into logical lines.
type joiner struct {
	buf   strings.Builder
	start int
	has   bool
}

// push adds a physical line numbered n. When the line starts a new logical
// line, the previous one is returned.
func (j *joiner) push(line string, n int) (text string, start int, ok bool) {
	if j.has && isContinuation(line) {
		j.buf.WriteByte('\n')
		j.buf.WriteString(line)
		return "", 0, false
	}
	text, start, ok = j.flush()
	j.buf.WriteString(line)
	j.start = n
	j.has = true
	return text, start, ok
}

// flush returns the pending logical line, if any.
func (j *joiner) flush() (text string, start int, ok bool) {
	if !j.has {
		return "", 0, false
	}
	text, start = j.buf.String(), j.start
	j.buf.Reset()
	j.has = false
	return text, start, true
}

// LineReader reads logical lines from a chat log. A physical line that is
// empty or starts with a space continues the previous logical line and is
// joined to it with "\n". A trailing "\r" is removed from every physical
// line.
type LineReader struct {
	sc    *bufio.Scanner
	j     joiner
	n     int
	text  string
	start int
	done  bool
}

// NewLineReader returns a LineReader reading from r.
func NewLineReader(r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	return &LineReader{sc: sc}
}

// Next advances to the next logical line. It returns false at the end of
// input or on a read error; see Err.
func (lr *LineReader) Next() bool {
	for !lr.done {
		if !lr.sc.Scan() {
			lr.done = true
			break
		}
		lr.n++
		line := strings.TrimSuffix(lr.sc.Text(), "\r")
		if text, start, ok := lr.j.push(line, lr.n); ok {
			lr.text, lr.start = text, start
			return true
		}
	}
	if lr.sc.Err() != nil {
		return false
	}
	if text, start, ok := lr.j.flush(); ok {
		lr.text, lr.start = text, start
		return true
	}
	return false
}

// Text returns the current logical line.
func (lr *LineReader) Text() string { return lr.text }

// LineNumber returns the 1-based physical line the current logical line
// starts on.
func (lr *LineReader) LineNumber() int { return lr.start }

// Err returns the first read error, such as bufio.ErrTooLong.
func (lr *LineReader) Err() error { return lr.sc.Err() }
