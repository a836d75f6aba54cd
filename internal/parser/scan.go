package parser

import (
	"strings"
	"unicode"
)

// scanUntil looks for the leftmost occurrence of marker in s whose
// remainder is accepted by tail. It returns the text before that
// occurrence together with tail's result. tail receives the text after
// the marker.
func scanUntil[T any](s, marker string, tail func(rest string) (T, bool)) (string, T, bool) {
	var zero T
	from := 0
	for {
		i := strings.Index(s[from:], marker)
		if i < 0 {
			return "", zero, false
		}
		at := from + i
		if v, ok := tail(s[at+len(marker):]); ok {
			return s[:at], v, true
		}
		from = at + 1
	}
}

// scanAt is scanUntil without a fixed marker: tail is tried at every byte
// offset that starts a rune, leftmost first.
func scanAt[T any](s string, tail func(rest string) (T, bool)) (string, T, bool) {
	for i := range s {
		if v, ok := tail(s[i:]); ok {
			return s[:i], v, true
		}
	}
	var zero T
	return "", zero, false
}

// untilFinal splits s before a terminator that must end s, such as the
// closing period of a sentence. The head must be non-empty.
func untilFinal(s, terminator string) (string, bool) {
	head, ok := strings.CutSuffix(s, terminator)
	if !ok || head == "" {
		return "", false
	}
	return head, true
}

// skipSpace drops leading whitespace, including newlines.
func skipSpace(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// expect strips prefix from s.
func expect(s, prefix string) (string, bool) {
	return strings.CutPrefix(s, prefix)
}
