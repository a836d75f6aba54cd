package parser

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// timestampLayout is the layout the bracketed timestamp is normalized to
// before calendar validation.
const timestampLayout = "2006/01/02 15:04:05"

// legacyPlaceholder is the untranslated timestamp template that some
// viewer builds wrote instead of the actual time.
const legacyPlaceholder = "[[year,datetime,slt]/[mthnum,datetime,slt]/[day,datetime,slt] [hour,datetime,slt]:[min,datetime,slt]]"

// parseTimestamp frames a logical line. It accepts
//
//	[YYYY/MM/DD HH:MM]
//	[YYYY/MM/DD HH:MM:SS]
//
// or the legacy placeholder, followed by at least one whitespace character.
// It returns the timestamp (nil for the placeholder) and the line body.
func parseTimestamp(line string, loc *time.Location) (*time.Time, string, error) {
	if strings.HasPrefix(line, legacyPlaceholder) {
		body, err := requireSpace(line, len(legacyPlaceholder))
		if err != nil {
			return nil, "", err
		}
		return nil, body, nil
	}

	f := framer{line: line}
	f.char('[', "opening bracket")
	year := f.digits(4, "year")
	f.char('/', "date separator")
	month := f.digits(2, "month")
	f.char('/', "date separator")
	day := f.digits(2, "day")
	f.char(' ', "space between date and time")
	hour := f.digits(2, "hour")
	f.char(':', "time separator")
	minute := f.digits(2, "minute")
	second := "00"
	if f.err == nil && f.pos < len(line) && line[f.pos] == ':' {
		f.pos++
		second = f.digits(2, "second")
	}
	f.char(']', "closing bracket")
	if f.err != nil {
		return nil, "", f.err
	}

	value := year + "/" + month + "/" + day + " " + hour + ":" + minute + ":" + second
	ts, err := time.ParseInLocation(timestampLayout, value, loc)
	if err != nil {
		return nil, "", &FramingError{Line: line, Pos: 1, Reason: "invalid date or time", Err: err}
	}

	body, err := requireSpace(line, f.pos)
	if err != nil {
		return nil, "", err
	}
	return &ts, body, nil
}

// requireSpace consumes the mandatory whitespace run after the timestamp.
func requireSpace(line string, pos int) (string, error) {
	r, _ := utf8.DecodeRuneInString(line[pos:])
	if pos >= len(line) || !unicode.IsSpace(r) {
		return "", &FramingError{Line: line, Pos: pos, Reason: "missing whitespace after timestamp"}
	}
	return skipSpace(line[pos:]), nil
}

// framer walks the fixed width timestamp and records the first mismatch.
type framer struct {
	line string
	pos  int
	err  error
}

func (f *framer) fail(reason string) {
	f.err = &FramingError{Line: f.line, Pos: f.pos, Reason: "expected " + reason}
}

func (f *framer) char(c byte, what string) {
	if f.err != nil {
		return
	}
	if f.pos >= len(f.line) || f.line[f.pos] != c {
		f.fail(what)
		return
	}
	f.pos++
}

func (f *framer) digits(n int, what string) string {
	if f.err != nil {
		return ""
	}
	start := f.pos
	for i := 0; i < n; i++ {
		if f.pos >= len(f.line) || f.line[f.pos] < '0' || f.line[f.pos] > '9' {
			f.fail(what)
			return ""
		}
		f.pos++
	}
	return f.line[start:f.pos]
}
